package emu

import (
	"github.com/quartzgb/quartz/internal/apu"
	"github.com/quartzgb/quartz/internal/bus"
	"github.com/quartzgb/quartz/internal/cart"
	"github.com/quartzgb/quartz/internal/cpu"
	"github.com/quartzgb/quartz/internal/joypad"
)

// cyclesPerFrame is the T-cycle budget of one frame at normal speed.
const cyclesPerFrame = 70224

// Screen dimensions of the emulated LCD.
const (
	ScreenWidth  = 160
	ScreenHeight = 144
)

// Machine couples the SM83 core with the bus and exposes the engine surface
// the host drives: frames in, framebuffer and audio out.
type Machine struct {
	cpu *cpu.CPU
	bus *bus.Bus
}

// New constructs a machine from a raw ROM image. DMG or CGB mode is chosen
// from the cartridge header; in CGB mode the boot ROM is skipped outright.
// An optional prior SRAM image seeds battery-backed cartridge RAM.
func New(rom []byte, callback apu.Callback, saveFile []byte) (*Machine, error) {
	b, err := bus.New(rom, callback, saveFile)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cpu: cpu.New(b.IsCGB()),
		bus: b,
	}

	if b.IsCGB() {
		m.cpu.SkipBootROM(true)
		m.bus.SkipBootROM()
	}

	return m, nil
}

// ExecuteFrame runs the CPU until one frame's worth of T-cycles has elapsed.
func (m *Machine) ExecuteFrame() {
	cycles := 0
	for cycles <= cyclesPerFrame {
		cycles += m.cpu.ExecuteNext(m.bus)
	}
}

// Framebuffer returns the front buffer: 160x144 RGB24, row-major.
func (m *Machine) Framebuffer() []byte {
	return m.bus.PPU().FrontBuffer()
}

// SkipBootROM seeds CPU and IO registers with post-boot values. It is a
// no-op on CGB, where construction already skipped the boot ROM.
func (m *Machine) SkipBootROM() {
	if m.bus.IsCGB() {
		return
	}
	m.cpu.SkipBootROM(false)
	m.bus.SkipBootROM()
}

// KeyDown records a pressed key.
func (m *Machine) KeyDown(key joypad.Key) {
	m.bus.Joypad().KeyDown(key)
}

// KeyUp records a released key.
func (m *Machine) KeyUp(key joypad.Key) {
	m.bus.Joypad().KeyUp(key)
}

// RAMDump returns a copy of battery-backed SRAM for persistence, or nil for
// cartridge types without a battery.
func (m *Machine) RAMDump() []byte {
	if !cart.HasBattery(m.bus.Header().CartType) {
		return nil
	}
	return m.bus.Cart().SRAM()
}

// Header exposes the parsed cartridge header for the host's logging.
func (m *Machine) Header() *cart.Header {
	return m.bus.Header()
}

// IsCGB reports whether the machine runs in CGB mode.
func (m *Machine) IsCGB() bool {
	return m.bus.IsCGB()
}
