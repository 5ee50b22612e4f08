// Package console wires a CPU, a PPU, and a cartridge Mapper behind a
// single address-decoding Bus, and drives them with an ebiten game
// loop. The Bus is the single owner the rest of the system borrows
// through: it holds internal RAM directly, forwards PPU register
// traffic, and delegates cartridge accesses to the Mapper.
package console

import (
	"context"
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/mos6502"
	"github.com/bdwalton/gintendo/ppu"
)

const (
	internalRAMSize = 0x0800 // 2KiB

	maxInternalRAMMirror = 0x1FFF
	maxPPURegMirror      = 0x3FFF
	maxIORegion          = 0x4020
	maxAddress           = math.MaxUint16
)

// OAMDMA is the CPU-visible address that triggers a 256-byte transfer
// from CPU page (val<<8) into OAM.
const OAMDMA = 0x4014

const (
	screenWidth  = 256
	screenHeight = 240
)

// Bus implements ebiten.Game (the outer driver's Clock/PixelSink
// boundary per spec's Non-goals) and ppu.PixelSink, and is the only
// component that knows about both the CPU and the PPU.
type Bus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
	ctrl1  *controller
	ram    [internalRAMSize]uint8
	ticks  uint64

	frame *image.RGBA
}

// New constructs a fully wired Bus for m, ready to Run.
func New(m mappers.Mapper) *Bus {
	b := &Bus{mapper: m, ctrl1: &controller{}}
	b.frame = image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))

	b.cpu = mos6502.New(b)
	b.ppu = ppu.New(b, b, m.MirroringMode())

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return b
}

// CPU exposes the wired CPU for the interactive debugger.
func (b *Bus) CPU() *mos6502.CPU { return b.cpu }

// SetScale resizes the ebiten window to an integer multiple of the NES
// resolution. Layout always reports the native 256x240, so this only
// affects the window's physical pixel size.
func (b *Bus) SetScale(n int) {
	if n < 1 {
		n = 1
	}
	ebiten.SetWindowSize(screenWidth*n, screenHeight*n)
}

// ChrRead satisfies ppu.ChrMapper so the PPU can fetch pattern data
// through the cartridge without importing mappers itself.
func (b *Bus) ChrRead(addr uint16) (uint8, error) {
	return b.mapper.ChrRead(addr)
}

// ChrWrite satisfies ppu.ChrMapper.
func (b *Bus) ChrWrite(addr uint16, val uint8) error {
	return b.mapper.ChrWrite(addr, val)
}

// PutPixel satisfies ppu.PixelSink.
func (b *Bus) PutPixel(x, y int, r, g, bl uint8) {
	i := b.frame.PixOffset(x, y)
	b.frame.Pix[i+0] = r
	b.frame.Pix[i+1] = g
	b.frame.Pix[i+2] = bl
	b.frame.Pix[i+3] = 0xFF
}

// Present satisfies ppu.PixelSink; the frame buffer is already
// current, so there's nothing to flush -- Draw reads it directly on
// ebiten's next tick.
func (b *Bus) Present() {}

// Layout is part of ebiten.Game: the NES resolution never changes, so
// ebiten handles any window scaling itself.
func (b *Bus) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Draw is part of ebiten.Game.
func (b *Bus) Draw(screen *ebiten.Image) {
	screen.WritePixels(b.frame.Pix)
}

// Update is part of ebiten.Game. Emulation runs on its own goroutine
// via Run, driven by the master clock rather than ebiten's frame
// pacing, so there's nothing to do here.
func (b *Bus) Update() error {
	return nil
}

// TriggerNMI forwards an NMI request to the CPU. Run and the debugger
// do not go through it: they poll the PPU's NMIPending and call the
// CPU's TriggerNMI directly, so the PPU needs no CPU back-reference.
func (b *Bus) TriggerNMI() {
	b.cpu.TriggerNMI()
}

// Read services a CPU memory read. https://www.nesdev.org/wiki/CPU_memory_map
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= maxInternalRAMMirror:
		return b.ram[addr&0x07FF]
	case addr <= maxPPURegMirror:
		return b.ppu.ReadRegister(uint8(addr & 7))
	case addr == 0x4016:
		return b.ctrl1.read()
	case addr < maxIORegion:
		return 0 // APU/IO stub
	case addr <= maxAddress:
		v, err := b.mapper.PrgRead(addr)
		if err != nil {
			log.Fatalf("console: cpu read $%04X: %v", addr, err)
		}
		return v
	}
	panic("unreachable: addr is a uint16")
}

// Write services a CPU memory write, symmetric to Read.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= maxInternalRAMMirror:
		b.ram[addr&0x07FF] = val
	case addr <= maxPPURegMirror:
		b.ppu.WriteRegister(uint8(addr&7), val)
	case addr == OAMDMA:
		base := uint16(val) << 8
		for i := uint16(0); i < 256; i++ {
			b.ppu.DMAWrite(b.Read(base + i))
		}
		b.cpu.AddDMACycles()
	case addr == 0x4016:
		b.ctrl1.write(val)
	case addr < maxIORegion:
		// APU/IO stub: accept and discard.
	case addr <= maxAddress:
		if err := b.mapper.PrgWrite(addr, val); err != nil {
			log.Fatalf("console: cpu write $%04X: %v", addr, err)
		}
	}
}

// Run drives the master clock: the PPU advances one dot per tick, and
// the CPU executes one cycle every third tick. It blocks until ctx is
// canceled.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.ppu.Tick()
			if b.ppu.NMIPending() {
				b.cpu.TriggerNMI()
			}
			if b.ticks%3 == 0 {
				b.cpu.Tick()
			}
			b.ticks++
		}
	}
}
