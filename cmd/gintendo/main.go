// Command gintendo runs an NES ROM: a CPU/PPU/mapper console driven by
// an ebiten window, with an optional interactive debugger in place of
// the normal game loop.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/gintendo/console"
	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/nesrom"
)

var (
	romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")
	scale   = flag.Int("scale", 2, "Window scale factor.")
	debug   = flag.Bool("debug", false, "Run the interactive debugger instead of the game loop.")
)

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("Couldn't Get() mapper: %v", err)
	}

	gintendo := console.New(m)
	gintendo.SetScale(*scale)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *debug {
		gintendo.Debug(ctx)
		os.Exit(0)
	}

	go gintendo.Run(ctx)

	if err := ebiten.RunGame(gintendo); err != nil {
		log.Fatal(err)
	}

	os.Exit(0)
}
