package console

import "github.com/hajimehoshi/ebiten/v2"

// keys maps controller bit position to an ebiten key, in standard NES
// button order: A, B, Select, Start, Up, Down, Left, Right.
var keys = []ebiten.Key{
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

// controller is the standard NES joypad as seen through $4016/$4017:
// a shift register that latches the button state on a strobe write
// and shifts one bit out per subsequent read.
type controller struct {
	strobe  bool
	buttons uint8
	idx     uint8
}

func (c *controller) write(val uint8) {
	switch val & 0x01 {
	case 1:
		c.strobe = true
		c.idx = 0
	case 0:
		if c.strobe {
			c.poll()
		}
		c.strobe = false
	}
}

func (c *controller) read() uint8 {
	if c.strobe {
		c.poll()
	}
	if c.idx > 7 {
		return 1
	}
	ret := (c.buttons >> c.idx) & 0x01
	c.idx++
	return ret
}

func (c *controller) poll() {
	c.buttons = 0
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			c.buttons |= 1 << i
		}
	}
}
