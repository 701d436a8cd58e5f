// Package input implements the NES standard controller shift-register
// protocol, with a side-effect-free Peek path added to support the CPU
// bus's Peek/Read distinction (spec §4.2).
package input

// Button is a single NES controller button bit.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller models one standard NES controller's strobe latch and
// 8-bit serial shift register.
type Controller struct {
	buttons uint8

	strobe        bool
	shiftRegister uint8
}

// New creates a released (no buttons held) controller.
func New() *Controller {
	return &Controller{}
}

// SetButtons replaces the full button state from an 8-bit mask (bit order
// matches the Button constants).
func (c *Controller) SetButtons(buttons uint8) {
	c.buttons = buttons
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// IsPressed reports whether button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to $4016 (strobe). While strobe is high the shift
// register continuously reloads from the live button state; the falling
// edge latches the last sampled state for serial shift-out.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// Read performs an active read: while strobe is high it returns bit 0 of
// the live state every time (the register never advances); otherwise it
// returns the next serial bit and shifts, with a standard-controller open
// bus read returning 1 past the eighth bit.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	bit := c.shiftRegister & 1
	c.shiftRegister = c.shiftRegister>>1 | 0x80
	return bit
}

// Peek returns what the next Read would return without advancing the
// shift register, for the CPU bus's side-effect-free Peek path.
func (c *Controller) Peek() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	return c.shiftRegister & 1
}

// InputState owns both controller ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a fresh two-port input state.
func NewInputState() *InputState {
	return &InputState{Controller1: New(), Controller2: New()}
}

// Read dispatches to the addressed port. Controller 2's port always has
// bit 6 forced set on real hardware (the expansion-port open bus line
// floats high), regardless of which controller is plugged in.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Peek is the non-mutating counterpart of Read.
func (is *InputState) Peek(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Peek()
	case 0x4017:
		return is.Controller2.Peek() | 0x40
	default:
		return 0
	}
}

// Write strobes both controller ports simultaneously, matching the real
// NES wiring of $4016's strobe line to both shift registers.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
