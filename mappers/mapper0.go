package mappers

import "github.com/bdwalton/gintendo/nesrom"

func init() {
	RegisterMapper(0, func() Mapper { return &mapper0{baseMapper: &baseMapper{id: 0, name: "NROM"}} })
}

// mapper0 implements Mapper for NROM (mapper 0): bank-fixed PRG-ROM
// (16KiB, mirrored into the upper bank, or a full 32KiB), 8KiB
// CHR-ROM with no banking. See spec §4.4.
type mapper0 struct {
	*baseMapper
	prgMask uint16
}

func (m *mapper0) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)
	if r.PrgSize() <= 16384 {
		m.prgMask = 0x3FFF // NROM-128: 16KiB mirrored across $8000-$FFFF
	} else {
		m.prgMask = 0x7FFF // NROM-256: 32KiB window, no mirroring
	}
}

// PrgRead services CPU reads in $8000-$FFFF.
func (m *mapper0) PrgRead(addr uint16) (uint8, error) {
	return m.rom.PrgRead(uint32(addr & m.prgMask)), nil
}

// PrgWrite is undefined hardware behavior on NROM -- there's no PRG
// RAM or bank-select register to write to.
func (m *mapper0) PrgWrite(addr uint16, val uint8) error {
	return ErrOpenBus
}

// ChrRead services PPU reads in $0000-$1FFF.
func (m *mapper0) ChrRead(addr uint16) (uint8, error) {
	return m.rom.ChrRead(uint32(addr & 0x1FFF)), nil
}

// ChrWrite is rejected: this core doesn't model CHR-RAM boards, and
// CHR-ROM is read-only hardware.
func (m *mapper0) ChrWrite(addr uint16, val uint8) error {
	return ErrOpenBus
}
