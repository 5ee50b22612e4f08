package nesrom

import (
	"fmt"
	"io"
	"os"
)

const (
	headerSize    = 16
	trainerSize   = 512
	prgBlockSize  = 16384
	chrBlockSize  = 8192
	pcInstRomSize = 8192
	pcPROMSize    = 32
)

// ROM holds the parsed contents of an iNES cartridge image: the
// header plus the PRG-ROM and CHR-ROM banks a Mapper will serve
// through.
type ROM struct {
	path string
	h    *header
	prg  []byte // prgSize * 16384 bytes
	chr  []byte // chrSize * 8192 bytes; empty if the board uses CHR RAM
}

// New reads and parses the iNES file at path.
func New(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open ROM file %q: %w", path, err)
	}
	defer f.Close()

	return load(path, f)
}

func load(path string, r io.Reader) (*ROM, error) {
	hbytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hbytes); err != nil {
		return nil, fmt.Errorf("couldn't read header: %w", err)
	}

	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, fmt.Errorf("error parsing header: %w", err)
	}

	rom := &ROM{path: path, h: h}

	if h.hasTrainer() {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, fmt.Errorf("error skipping trainer data: %w", err)
		}
	}

	s := prgBlockSize * int(h.prgSize)
	rom.prg = make([]byte, s)
	if _, err := io.ReadFull(r, rom.prg); err != nil {
		return nil, fmt.Errorf("error reading PRG ROM (wanted %d bytes): %w", s, err)
	}

	s = chrBlockSize * int(h.chrSize)
	rom.chr = make([]byte, s)
	if _, err := io.ReadFull(r, rom.chr); err != nil {
		return nil, fmt.Errorf("error reading CHR ROM (wanted %d bytes): %w", s, err)
	}

	if h.hasPlayChoice() {
		// PlayChoice-10 hint-screen data trails CHR-ROM; this core
		// never serves it, so just drop it on the floor.
		io.CopyN(io.Discard, r, pcInstRomSize+pcPROMSize)
	}

	return rom, nil
}

func (r *ROM) String() string {
	return r.h.String()
}

func (r *ROM) PrgSize() int {
	return len(r.prg)
}

func (r *ROM) ChrSize() int {
	return len(r.chr)
}

func (r *ROM) PrgRead(addr uint32) uint8 {
	return r.prg[addr]
}

func (r *ROM) ChrRead(addr uint32) uint8 {
	if int(addr) >= len(r.chr) {
		return 0
	}
	return r.chr[addr]
}

func (r *ROM) ChrWrite(addr uint32, val uint8) {
	if int(addr) < len(r.chr) {
		r.chr[addr] = val
	}
}

func (r *ROM) MapperNum() uint16 {
	return r.h.mapperNum()
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}
