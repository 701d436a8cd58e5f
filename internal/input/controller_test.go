package input

import "testing"

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButtons(uint8(ButtonA | ButtonStart))
	c.Write(1) // strobe high
	if got := c.Read(); got != 1 {
		t.Errorf("Read() = %d, want 1 (A pressed)", got)
	}
	if got := c.Read(); got != 1 {
		t.Errorf("repeated Read() during strobe = %d, want 1 every time", got)
	}
}

func TestShiftRegisterReadOrder(t *testing.T) {
	c := New()
	// Button order: A, B, Select, Start, Up, Down, Left, Right
	c.SetButtons(uint8(ButtonA | ButtonSelect))
	c.Write(1)
	c.Write(0) // latch on strobe falling edge

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadPastEighthBitReturnsOnesFromOpenBus(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if got := c.Read(); got != 1 {
		t.Errorf("9th Read() = %d, want 1 (open bus shifts in ones)", got)
	}
}

func TestPeekDoesNotAdvanceShiftRegister(t *testing.T) {
	c := New()
	c.SetButtons(uint8(ButtonA))
	c.Write(1)
	c.Write(0)
	for i := 0; i < 3; i++ {
		if got := c.Peek(); got != 1 {
			t.Errorf("Peek() call %d = %d, want stable 1", i, got)
		}
	}
	if got := c.Read(); got != 1 {
		t.Errorf("Read() after Peeks = %d, want 1 (A is first bit)", got)
	}
}

func TestController2Port6AlwaysSet(t *testing.T) {
	is := NewInputState()
	if got := is.Read(0x4017); got&0x40 == 0 {
		t.Errorf("$4017 read = %#02x, want bit 6 set", got)
	}
	if got := is.Peek(0x4017); got&0x40 == 0 {
		t.Errorf("$4017 peek = %#02x, want bit 6 set", got)
	}
}

func TestStrobeWritesBothControllers(t *testing.T) {
	is := NewInputState()
	is.Controller1.SetButtons(uint8(ButtonA))
	is.Controller2.SetButtons(uint8(ButtonB))
	is.Write(0x4016, 1)
	is.Write(0x4016, 0)

	if got := is.Read(0x4016); got != 1 {
		t.Errorf("controller1 first bit = %d, want 1 (A)", got)
	}
	is.Read(0x4017) // first bit: A, not held on controller 2
	if got := is.Read(0x4017) & 1; got != 1 {
		t.Errorf("controller2 second bit = %d, want 1 (B)", got)
	}
}
