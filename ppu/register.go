package ppu

// PPUCTRL ($2000) bits. https://www.nesdev.org/wiki/PPU_registers
const (
	ctrlNametableMask = 0x03
	ctrlIncrement32   = 1 << 2
	ctrlSpritePattern = 1 << 3
	ctrlBgPattern     = 1 << 4
	ctrlSpriteSize    = 1 << 5
	ctrlMasterSlave   = 1 << 6
	ctrlNMI           = 1 << 7
)

// PPUMASK ($2001) bits.
const (
	maskGreyscale      = 1 << 0
	maskShowBgLeft     = 1 << 1
	maskShowSpriteLeft = 1 << 2
	maskShowBg         = 1 << 3
	maskShowSprites    = 1 << 4
)

// PPUSTATUS ($2002) bits. Only VBlank is modeled; sprite overflow and
// sprite-0 hit are sprite-rendering concerns out of this core's scope.
const statusVBlank = 1 << 7

// CPU-visible register indices ($2000-$2007, mirrored every 8 bytes).
const (
	regCtrl    = 0
	regMask    = 1
	regStatus  = 2
	regOAMAddr = 3
	regOAMData = 4
	regScroll  = 5
	regAddr    = 6
	regData    = 7
)

// ReadRegister services a CPU read of one of the eight PPU registers,
// reg already reduced modulo 8 by the Bus.
func (p *PPU) ReadRegister(reg uint8) uint8 {
	switch reg {
	case regStatus:
		v := p.status
		p.status &^= statusVBlank
		p.w = false
		return v
	case regOAMData:
		return p.oam[p.oamAddr]
	case regData:
		return p.readData()
	default:
		// PPUCTRL/PPUMASK/OAMADDR/PPUSCROLL/PPUADDR are write-only;
		// real hardware returns open-bus decay here. This core has
		// no open-bus model (spec's Non-goals), so it reads as 0.
		return 0
	}
}

// WriteRegister services a CPU write to one of the eight PPU registers.
func (p *PPU) WriteRegister(reg uint8, val uint8) {
	switch reg {
	case regCtrl:
		p.ctrl = val
		p.t.setNametable(uint16(val) & ctrlNametableMask)
	case regMask:
		p.mask = val
	case regOAMAddr:
		p.oamAddr = val
	case regOAMData:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case regScroll:
		if !p.w {
			p.fineX = val & 0x07
			p.t.setCoarseX(uint16(val) >> 3)
			p.w = true
		} else {
			p.t.setFineY(uint16(val) & 0x07)
			p.t.setCoarseY(uint16(val) >> 3)
			p.w = false
		}
	case regAddr:
		if !p.w {
			p.t.data = (p.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
			p.w = true
		} else {
			p.t.data = (p.t.data & 0xFF00) | uint16(val)
			p.v = p.t
			p.w = false
		}
	case regData:
		p.writeData(val)
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBg|maskShowSprites) != 0
}

func (p *PPU) incrementV() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v.data += 32
	} else {
		p.v.data++
	}
	p.v.data &= 0x7FFF
}

// readData implements PPUDATA's read-buffering: everything except
// the palette range is returned one read late, with the fresh byte
// landing in the buffer for next time. Palette reads bypass the
// buffer but still refill it from the nametable mirror 0x1000 below.
func (p *PPU) readData() uint8 {
	addr := p.v.data & 0x3FFF
	var result uint8
	if addr >= 0x3F00 {
		result = p.busRead(addr)
		p.readBuffer = p.busRead(addr - 0x1000)
	} else {
		result = p.readBuffer
		p.readBuffer = p.busRead(addr)
	}
	p.incrementV()
	return result
}

func (p *PPU) writeData(val uint8) {
	p.busWrite(p.v.data&0x3FFF, val)
	p.incrementV()
}
