package mappers

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/gintendo/nesrom"
)

func writeROM(t *testing.T, data []byte) *nesrom.ROM {
	t.Helper()
	path := t.TempDir() + "/test.nes"
	require.NoError(t, os.WriteFile(path, data, 0644))
	rom, err := nesrom.New(path)
	require.NoError(t, err)
	return rom
}

func nromHeader(prgBlocks, chrBlocks int, flags6 byte) []byte {
	return []byte{'N', 'E', 'S', 0x1A, byte(prgBlocks), byte(chrBlocks), flags6, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

func TestMapper0NROM128Mirrors(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(nromHeader(1, 1, 0))
	buf.Write(bytes.Repeat([]byte{0xAB}, 16384))
	buf.Write(bytes.Repeat([]byte{0x11}, 8192))
	rom := writeROM(t, buf.Bytes())

	m, err := Get(rom)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), m.ID())

	lo, err := m.PrgRead(0x8000)
	require.NoError(t, err)
	hi, err := m.PrgRead(0xC000)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), lo)
	assert.Equal(t, byte(0xAB), hi, "NROM-128 must mirror the 16KiB bank into $C000-$FFFF")
}

func TestMapper0NROM256NoMirror(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(nromHeader(2, 1, 0))
	buf.Write(bytes.Repeat([]byte{0x01}, 16384)) // first 16KiB bank
	buf.Write(bytes.Repeat([]byte{0x02}, 16384)) // second 16KiB bank
	buf.Write(bytes.Repeat([]byte{0}, 8192))
	rom := writeROM(t, buf.Bytes())

	m, err := Get(rom)
	require.NoError(t, err)

	first, err := m.PrgRead(0x8000)
	require.NoError(t, err)
	second, err := m.PrgRead(0xC000)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), first)
	assert.Equal(t, byte(0x02), second, "NROM-256 must not mirror -- $C000 reads the second bank")
}

func TestMapper0ChrReadWraps(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(nromHeader(1, 1, 0))
	buf.Write(bytes.Repeat([]byte{0}, 16384))
	buf.Write(bytes.Repeat([]byte{0x55}, 8192))
	rom := writeROM(t, buf.Bytes())

	m, err := Get(rom)
	require.NoError(t, err)

	v, err := m.ChrRead(0x0000)
	require.NoError(t, err)
	assert.Equal(t, byte(0x55), v)

	w, err := m.ChrRead(0x2000)
	require.NoError(t, err)
	assert.Equal(t, byte(0x55), w, "CHR addresses must wrap at 8KiB")
}

func TestMapper0WritesAreOpenBus(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(nromHeader(1, 1, 0))
	buf.Write(bytes.Repeat([]byte{0}, 16384+8192))
	rom := writeROM(t, buf.Bytes())

	m, err := Get(rom)
	require.NoError(t, err)

	assert.ErrorIs(t, m.PrgWrite(0x8000, 0x42), ErrOpenBus)
	assert.ErrorIs(t, m.ChrWrite(0x0000, 0x42), ErrOpenBus)
}

func TestGetUnsupportedMapper(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(nromHeader(1, 1, 0xF0))
	buf.Write(bytes.Repeat([]byte{0}, 16384+8192))
	rom := writeROM(t, buf.Bytes())

	_, err := Get(rom)
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}
