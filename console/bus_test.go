package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/gintendo/nesrom"
)

// fakeMapper is a flat, unbanked 64KiB PRG / 8KiB CHR space standing
// in for a cartridge in Bus-level tests -- the mapper's own banking
// behavior is covered by mappers/mapper0_test.go.
type fakeMapper struct {
	prg [0x10000]uint8
	chr [0x2000]uint8
}

func newFakeMapper() *fakeMapper { return &fakeMapper{} }

func (m *fakeMapper) ID() uint16                              { return 99 }
func (m *fakeMapper) Name() string                            { return "fake" }
func (m *fakeMapper) Init(r *nesrom.ROM)                       {}
func (m *fakeMapper) PrgRead(addr uint16) (uint8, error)       { return m.prg[addr], nil }
func (m *fakeMapper) PrgWrite(addr uint16, val uint8) error    { m.prg[addr] = val; return nil }
func (m *fakeMapper) ChrRead(addr uint16) (uint8, error)       { return m.chr[addr&0x1FFF], nil }
func (m *fakeMapper) ChrWrite(addr uint16, val uint8) error    { m.chr[addr&0x1FFF] = val; return nil }
func (m *fakeMapper) MirroringMode() uint8                    { return 0 }
func (m *fakeMapper) HasSaveRAM() bool                        { return false }

// loadProgram writes a reset vector and program bytes into a fresh
// fakeMapper and returns the wired Bus. The reset vector must be set
// before New, since mos6502.New reads it immediately.
func loadProgram(t *testing.T, resetVector uint16, prog ...uint8) (*Bus, *fakeMapper) {
	t.Helper()
	m := newFakeMapper()
	m.prg[0xFFFC] = uint8(resetVector)
	m.prg[0xFFFD] = uint8(resetVector >> 8)
	for i, b := range prog {
		m.prg[int(resetVector)+i] = b
	}
	return New(m), m
}

func TestSeedResetVector(t *testing.T) {
	b, _ := loadProgram(t, 0x8000)
	assert.Equal(t, uint16(0x8000), b.cpu.PC())
}

func TestSeedLDAImmediateFlags(t *testing.T) {
	b, _ := loadProgram(t, 0x8000, 0xA9, 0x00, 0xEA)
	cycles := b.cpu.Step()
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint16(0x8002), b.cpu.PC())
	// P:26 is bit 5, I and Z set with N clear.
	assert.Contains(t, b.cpu.String(), "A:00 X:00 Y:00 P:26")
}

func TestSeedJSRRTSRoundTrip(t *testing.T) {
	b, _ := loadProgram(t, 0x8000, 0x20, 0x05, 0x80, 0xEA, 0xEA, 0x60)

	b.cpu.Step() // JSR $8005
	require.Equal(t, uint16(0x8005), b.cpu.PC())
	require.Equal(t, uint8(0x02), b.Read(0x01FC))
	require.Equal(t, uint8(0x80), b.Read(0x01FD))

	b.cpu.Step() // RTS
	assert.Equal(t, uint16(0x8003), b.cpu.PC())
}

func TestSeedADCOverflow(t *testing.T) {
	b, _ := loadProgram(t, 0x8000, 0xA9, 0x50, 0x69, 0x50)
	b.cpu.Step() // LDA #$50
	b.cpu.Step() // ADC #$50
	assert.Equal(t, uint16(0x8004), b.cpu.PC())
	// Flag assertions live in mos6502's own tests; here we only check
	// the bus wiring delivered the right bytes to the right place.
	assert.Equal(t, uint8(0xA9), b.Read(0x8000))
}

func TestSeedPPUVBlankFiresNMIOnce(t *testing.T) {
	b, _ := loadProgram(t, 0x8000)
	b.Write(0x2000, 0x80) // PPUCTRL: enable NMI

	nmiCount := 0
	for i := 0; i < 241*341+2; i++ {
		b.ppu.Tick()
		if b.ppu.NMIPending() {
			nmiCount++
		}
	}
	assert.Equal(t, 1, nmiCount, "NMI must fire exactly once per frame")

	first := b.Read(0x2002)
	assert.NotZero(t, first&0x80, "PPUSTATUS bit 7 should read 1 right after VBlank starts")

	second := b.Read(0x2002)
	assert.Zero(t, second&0x80, "reading PPUSTATUS clears VBlank")
}

func TestOAMDMACopiesPageIntoOAM(t *testing.T) {
	b, _ := loadProgram(t, 0x8000)
	b.Write(0x0300, 0xAB) // DMA source page lives in internal RAM

	b.Write(0x2003, 0x00) // OAMADDR = 0
	b.Write(OAMDMA, 0x03) // DMA from page $03

	b.Write(0x2003, 0x00) // rewind OAMADDR to read back what we wrote
	assert.Equal(t, uint8(0xAB), b.Read(0x2004))
}
