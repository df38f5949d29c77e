package memory

// JoypadKey is a bitmask of Game Boy buttons. Action buttons occupy the low
// nibble, directions the high nibble, in the order the P1 register reports them.
type JoypadKey uint8

const (
	JoypadA JoypadKey = 1 << iota
	JoypadB
	JoypadSelect
	JoypadStart
	JoypadRight
	JoypadLeft
	JoypadUp
	JoypadDown
)

const (
	selectButtons    = 0x20
	selectDirections = 0x10
)

// Joypad represents the Gameboy joypad
type Joypad struct {
	p1    uint8
	state uint8 // set bits are pressed buttons
}

// NewJoypad creates a new Joypad instance
func NewJoypad() *Joypad {
	return &Joypad{p1: 0xCF}
}

// Read returns P1. Selected groups pull their pressed lines low.
func (j *Joypad) Read() uint8 {
	if j.p1&(selectButtons|selectDirections) == selectButtons|selectDirections {
		return j.p1 | 0xCF
	}
	value := j.p1
	if j.p1&selectButtons == 0 {
		value &^= j.state & 0x0F
	}
	if j.p1&selectDirections == 0 {
		value &^= j.state >> 4
	}
	return value | 0xC0
}

// Write sets the joypad lines to be read, only bits 4 and 5 are writable.
func (j *Joypad) Write(value uint8) {
	j.p1 = j.p1&0xCF | value&0x30
}

// Press marks keys as held down. It reports whether any of them was
// previously released, which is what raises the joypad interrupt.
func (j *Joypad) Press(keys JoypadKey) bool {
	newlyPressed := uint8(keys) &^ j.state
	j.state |= uint8(keys)
	return newlyPressed != 0
}

// Release marks keys as no longer held.
func (j *Joypad) Release(keys JoypadKey) {
	j.state &^= uint8(keys)
}

// Pressed returns the current button state.
func (j *Joypad) Pressed() JoypadKey {
	return JoypadKey(j.state)
}
