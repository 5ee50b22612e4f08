// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"errors"
	"fmt"

	"github.com/bdwalton/gintendo/nesrom"
)

// ErrOpenBus is returned by a Mapper when an access falls outside
// what the cartridge can service. The reference behavior (spec §7) is
// fatal at the CPU read site; callers that want bring-up leniency can
// downgrade it to a logged zero-fill instead.
var ErrOpenBus = errors.New("open bus")

// ErrUnsupportedMapper is returned by Get when no Mapper is registered
// for the ROM's mapper number.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// A global registry of mapper constructors, keyed by mapper id.
var registry = map[uint16]func() Mapper{}

// RegisterMapper makes a mapper constructor available under id. It
// panics on a duplicate id, which can only happen from a programming
// error (two init() funcs registering the same number).
func RegisterMapper(id uint16, ctor func() Mapper) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = ctor
}

// Get constructs and initializes the Mapper named by rom's header.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	ctor, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, id)
	}

	m := ctor()
	m.Init(rom)
	return m, nil
}

// Mapper is the cartridge-side translation of CPU and PPU addresses
// into PRG/CHR banks. It owns no CPU-visible RAM and no PPU nametable
// storage; those belong to the Bus and the PPU respectively (spec §9
// -- a single owner, not a cyclic graph of components).
type Mapper interface {
	ID() uint16
	Name() string
	Init(*nesrom.ROM)
	PrgRead(addr uint16) (uint8, error)
	PrgWrite(addr uint16, val uint8) error
	ChrRead(addr uint16) (uint8, error)
	ChrWrite(addr uint16, val uint8) error
	MirroringMode() uint8
	HasSaveRAM() bool
}

// baseMapper factors out the bookkeeping every Mapper implementation
// needs: its id, display name, and passthrough to the ROM's header
// for mirroring/save-RAM queries.
type baseMapper struct {
	id   uint16
	name string
	rom  *nesrom.ROM
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) String() string {
	return bm.name
}

func (bm *baseMapper) Init(r *nesrom.ROM) {
	bm.rom = r
}

func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}
