package memory

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// tacLookup maps TAC input clock select (bits 1–0) to the bit position
// of the 16‑bit internal counter used as the timer's clock source. TIMA
// increments on falling edges of this bit while TAC bit 2 is set.
//
//	00 -> bit 9  (every 1024 clocks)
//	01 -> bit 3  (every 16 clocks)
//	10 -> bit 5  (every 64 clocks)
//	11 -> bit 7  (every 256 clocks)
var tacLookup = [4]uint8{9, 3, 5, 7}

// PostBootDivider is the internal counter value left behind by the DMG boot ROM.
const PostBootDivider uint16 = 0xABCC

// Timer encapsulates the Game Boy timer/DIV/TIMA/TMA/TAC behavior.
//
// The internal counter advances by 4 clocks per M-cycle; DIV is its upper
// byte. When TIMA overflows it reads 0x00 for one M-cycle, after which it is
// reloaded from TMA and the timer interrupt is requested.
type Timer struct {
	counter  uint16
	overflow bool

	tima byte
	tma  byte
	tac  byte
}

// SetSeed initializes the internal divider counter.
func (t *Timer) SetSeed(seed uint16) {
	t.counter = seed
	t.overflow = false
}

// Tick advances the timer by the given number of M-cycles.
func (t *Timer) Tick(cycles int, irq interrupt.Requester) {
	for rep := 0; rep < cycles; rep++ {
		if t.overflow {
			t.overflow = false
			t.tima = t.tma
			irq.Request(addr.TimerInterrupt)
		}

		before := t.input()
		t.counter += 4
		if before && !t.input() {
			t.incrementTIMA()
		}
	}
}

// input is the timer clock line: the selected counter bit ANDed with the enable bit.
func (t *Timer) input() bool {
	return bit.IsSet(2, t.tac) && bit.IsSet16(tacLookup[t.tac&0x03], t.counter)
}

func (t *Timer) incrementTIMA() {
	t.tima++
	if t.tima == 0 {
		t.overflow = true
	}
}

func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return bit.High(t.counter)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8
	}
	return 0xFF
}

func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		// resetting the counter can produce a falling edge on the selected bit
		if t.input() {
			t.incrementTIMA()
		}
		t.counter = 0
	case addr.TIMA:
		if !t.overflow {
			t.tima = value
		}
	case addr.TMA:
		t.tma = value
		if t.overflow {
			t.tima = value
		}
	case addr.TAC:
		before := t.input()
		t.tac = value & 0x07
		if before && !t.input() {
			t.incrementTIMA()
		}
	}
}
