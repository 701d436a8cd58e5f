// Package core wires the CPU, PPU, APU, memory bus, and controller ports
// into the single host-facing coordinator described in spec §6. Rather
// than CPU and PPU holding back-references into each other, one structure
// owns every component and drives them in lock-step: one CPU tick for
// every three PPU dots.
package core

import (
	"fmt"

	"github.com/benjaminmordaunt/fancy-nes/internal/apu"
	"github.com/benjaminmordaunt/fancy-nes/internal/cartridge"
	"github.com/benjaminmordaunt/fancy-nes/internal/cpu"
	"github.com/benjaminmordaunt/fancy-nes/internal/input"
	"github.com/benjaminmordaunt/fancy-nes/internal/memory"
	"github.com/benjaminmordaunt/fancy-nes/internal/ppu"
)

// Core is the NES system: CPU, PPU, APU stub, memory bus, and controller
// ports, ticked in a fixed 1:3 ratio by the host.
type Core struct {
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	APU   *apu.APU
	Bus   *memory.Bus
	Input *input.InputState

	cart *cartridge.Cartridge

	mapperID  uint8
	mirroring cartridge.MirrorMode

	cycle uint64
}

// New constructs a Core with no cartridge bound. mapperID and mirroring
// are recorded for diagnostics (e.g. save-state headers, -debug output)
// but the mapper actually exercised comes from the cartridge passed to
// LoadCartridge.
func New(mapperID uint8, mirroring cartridge.MirrorMode) *Core {
	c := &Core{
		PPU:       ppu.New(),
		APU:       apu.New(),
		Input:     input.NewInputState(),
		mapperID:  mapperID,
		mirroring: mirroring,
	}
	c.Bus = memory.New(c.PPU, c.APU, nil)
	c.Bus.SetInput(c.Input)
	c.CPU = cpu.New()
	return c
}

// LoadCartridge binds a parsed cartridge's mapper to both the CPU bus
// (PRG) and the PPU (CHR/nametable), then resets the machine so PC loads
// from the new cartridge's reset vector.
func (c *Core) LoadCartridge(cart *cartridge.Cartridge) error {
	if cart == nil {
		return fmt.Errorf("core: LoadCartridge: cartridge is nil")
	}
	mapper := cart.Mapper()
	if mapper == nil {
		return fmt.Errorf("core: LoadCartridge: cartridge has no bound mapper")
	}

	c.cart = cart
	c.mapperID = cart.MapperID
	c.mirroring = cart.Mirror

	c.Bus = memory.New(c.PPU, c.APU, mapper)
	c.Bus.SetInput(c.Input)
	c.PPU.SetMapper(mapper)

	c.Reset()
	return nil
}

// Reset returns every component to its post-power-on state and reloads
// PC from the cartridge's reset vector.
func (c *Core) Reset() {
	c.PPU.Reset()
	c.CPU.Reset(c.Bus)
	c.cycle = 0
}

// StepTick advances the machine by one CPU tick and three PPU dots (the
// fixed NTSC 1:3 ratio), propagating any pending NMI from the PPU to the
// CPU at each dot boundary per spec §5.
func (c *Core) StepTick() error {
	if err := c.CPU.Tick(c.Bus); err != nil {
		return fmt.Errorf("core: CPU tick failed at cycle %d: %w", c.cycle, err)
	}
	for i := 0; i < 3; i++ {
		c.PPU.Tick()
		if c.PPU.TakeNMI() {
			c.CPU.AssertNMI()
		}
	}
	c.cycle++
	return nil
}

// TakeFrame returns the most recently completed frame as 256*240 palette
// indices, clearing the ready flag. ok is false if no new frame is ready.
func (c *Core) TakeFrame() ([]byte, bool) {
	return c.PPU.TakeFrame()
}

// SetController1 latches the 8-button bitmap for controller 1 (bit 0 = A,
// per spec §6's wire order).
func (c *Core) SetController1(buttons uint8) {
	c.Input.Controller1.SetButtons(buttons)
}

// SetController2 latches the 8-button bitmap for controller 2.
func (c *Core) SetController2(buttons uint8) {
	c.Input.Controller2.SetButtons(buttons)
}

// Cycle returns the total number of CPU ticks executed since the last
// Reset, used by save states and debug tooling.
func (c *Core) Cycle() uint64 {
	return c.cycle
}

// MapperID and Mirroring report the cartridge metadata recorded at
// construction/LoadCartridge time, used by save-state headers.
func (c *Core) MapperID() uint8                { return c.mapperID }
func (c *Core) Mirroring() cartridge.MirrorMode { return c.mirroring }
