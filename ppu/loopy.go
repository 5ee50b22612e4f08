package ppu

// loopy models one of the PPU's two 15-bit VRAM address registers (v
// and t), bit layout 0 yyy NN YYYYY XXXXX:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
// https://www.nesdev.org/wiki/PPU_scrolling
type loopy struct {
	data uint16 // only 15 bits used; bit 15 always zero
}

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data & 0xFFE0) | (n & 0x001F)
}

// incrementCoarseX implements the PPU's horizontal VRAM increment: on
// overflow past 31, coarse X wraps to 0 and nametable X toggles
// instead of carrying into coarse Y.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
	} else {
		l.data++
	}
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | ((n & 0x001F) << 5)
}

// incrementY implements the combined fine-Y/coarse-Y vertical
// increment: fine Y advances every dot-256 tick, and only carries
// into coarse Y (with its own 29/31 wrap quirks) when it overflows
// past 7.
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.data += 0x1000
		return
	}
	l.data &^= 0x7000
	switch y := l.coarseY(); y {
	case 29:
		l.setCoarseY(0)
		l.data ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(y + 1)
	}
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

// setNametable sets both nametable select bits from the low 2 bits of n.
func (l *loopy) setNametable(n uint16) {
	l.data = (l.data &^ 0x0C00) | ((n & 0x03) << 10)
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data &^ 0x7000) | ((n & 0x07) << 12)
}
