// Package interrupt implements the IF/IE register pair and fixed priority
// resolution shared by the CPU and every interrupt source.
package interrupt

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
)

const mask = 0x1F

// Requester is what interrupt sources (timer, PPU, serial) need.
type Requester interface {
	Request(i addr.Interrupt)
}

// Controller holds the pending (IF) and enabled (IE) masks.
type Controller struct {
	flags  uint8
	enable uint8
}

// Request marks the interrupt as pending.
func (c *Controller) Request(i addr.Interrupt) {
	c.flags |= uint8(i) & mask
}

// Has reports whether any enabled interrupt is pending.
func (c *Controller) Has() bool {
	return c.flags&c.enable&mask != 0
}

// Service acknowledges the highest priority pending and enabled interrupt.
// Only the serviced IF bit is cleared. It returns the handler vector, and false
// when nothing was pending.
func (c *Controller) Service() (uint16, bool) {
	pending := c.flags & c.enable
	for _, i := range addr.Interrupts {
		if pending&uint8(i) != 0 {
			c.flags &^= uint8(i)
			return i.Vector(), true
		}
	}
	return 0, false
}

// Read returns IF or IE. Unused IF bits read as 1.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case addr.IF:
		return c.flags | 0xE0
	case addr.IE:
		return c.enable
	}
	return 0xFF
}

func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case addr.IF:
		c.flags = value & mask
	case addr.IE:
		c.enable = value
	}
}
