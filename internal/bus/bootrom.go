package bus

// Freely-redistributable replacement boot ROMs. They set up the stack,
// LCDC and the DMG palettes, then jump to the tail sequence that unmaps the
// overlay via 0xFF50 so the next fetch lands on the cartridge entry point at
// 0x0100. No logo check, no scroll animation.
var (
	dmgBootROM = buildBootROM(0x0100, 0x01)
	cgbBootROM = buildBootROM(0x0900, 0x11)
)

// buildBootROM assembles the replacement image. The accumulator value left
// behind is what games use to tell DMG (0x01) from CGB (0x11) hardware.
func buildBootROM(size int, aSeed byte) []byte {
	rom := make([]byte, size)

	program := []byte{
		0x31, 0xFE, 0xFF, // LD SP,0xFFFE
		0x3E, 0x91, 0xE0, 0x40, // LD A,0x91 ; LDH (0x40),A  LCD on
		0x3E, 0xFC, 0xE0, 0x47, // LD A,0xFC ; LDH (0x47),A  BGP
		0x3E, 0xFF, 0xE0, 0x48, // LD A,0xFF ; LDH (0x48),A  OBP0
		0x3E, 0xFF, 0xE0, 0x49, // LD A,0xFF ; LDH (0x49),A  OBP1
		0xC3, 0xFC, 0x00, // JP 0x00FC
	}
	copy(rom, program)

	// Tail at 0x00FC: load the hardware revision marker and unmap the
	// overlay. The write to 0xFF50 takes effect before the next fetch, so
	// execution falls through to cartridge address 0x0100.
	rom[0x00FC] = 0x3E // LD A,aSeed
	rom[0x00FD] = aSeed
	rom[0x00FE] = 0xE0 // LDH (0x50),A
	rom[0x00FF] = 0x50

	return rom
}
