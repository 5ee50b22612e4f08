package console

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
)

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Print(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// Debug runs an interactive, line-oriented BIOS-style debugger on
// stdin/stdout: breakpoints, single-stepping, memory and stack dumps,
// and running the master clock until a breakpoint is hit or Ctrl-C
// is pressed (runUntilBreak). It's gated behind the
// command line's -debug flag; nothing in the core depends on it.
func (b *Bus) Debug(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step the CPU one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show the top of the stack")
		fmt.Println("(I)nstruction - disassemble at PC")
		fmt.Println("(P)C - set the program counter")
		fmt.Println("(Q)uit - shut down")
		fmt.Print("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.SetPC(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			b.runUntilBreak(cctx, breaks)
		case 's', 'S':
			cycles := b.cpu.Step() * 3
			for i := 0; i < cycles; i++ {
				b.ppu.Tick()
				if b.ppu.NMIPending() {
					b.cpu.TriggerNMI()
				}
			}
		case 't', 'T':
			fmt.Println()
			for i := 0; i < 3; i++ {
				m := b.cpu.StackAddr() + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", m, b.Read(m))
				if m == 0x01ff {
					break
				}
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Printf("\n%s\n\n", b.cpu.Disassemble(b.cpu.PC()))
		case 'e', 'E':
			b.cpu.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			for i := low; ; i++ {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x++
			}
			fmt.Printf("\n\n")
		}
	}
}

// runUntilBreak is Run's master-clock loop with a breakpoint check at
// each CPU instruction boundary.
func (b *Bus) runUntilBreak(ctx context.Context, breaks map[uint16]struct{}) {
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
				if _, hit := breaks[b.cpu.PC()]; hit {
					return
				}
				b.cpu.Tick()
			}
			b.ticks++
		}
	}
}
