package cart

import "fmt"

// Cartridge is the interface the Bus needs for ROM/RAM banking.
// Implementations are ROM-only or MBC variants. Addresses are CPU addresses.
type Cartridge interface {
	// Read returns a byte for ROM (0x0000–0x7FFF) and external RAM (0xA000–0xBFFF).
	Read(addr uint16) byte
	// Write handles MBC control writes (0x0000–0x7FFF) and external RAM writes (0xA000–0xBFFF).
	Write(addr uint16, value byte)
	// SRAM returns a copy of external RAM, or nil if the cartridge has none.
	SRAM() []byte
}

// ramSizes maps header byte 0x0149 to external RAM size in bytes.
var ramSizes = [6]int{0, 0, 0x2000, 0x8000, 0x20000, 0x10000}

// batteryTypes lists the cartridge type codes with battery-backed RAM.
var batteryTypes = map[byte]bool{
	0x03: true, 0x0F: true, 0x10: true, 0x13: true, 0x1B: true, 0x1E: true,
}

// New selects a mapper implementation based on the ROM header and loads an
// optional prior SRAM image into it.
func New(rom []byte, saveFile []byte) (Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if len(rom) < h.ROMBanks*0x4000 {
		return nil, fmt.Errorf("%w: %d bytes for %d declared banks", ErrMalformedROM, len(rom), h.ROMBanks)
	}
	switch h.CartType {
	case 0x00:
		return NewROMOnly(rom)
	case 0x01, 0x02, 0x03:
		return NewMBC1(rom, h, saveFile), nil
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return NewMBC3(rom, h, saveFile), nil
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return NewMBC5(rom, h, saveFile), nil
	default:
		return nil, fmt.Errorf("%w: type %#02x", ErrUnsupportedCartridge, h.CartType)
	}
}

// HasBattery reports whether the cartridge type code declares battery-backed RAM.
func HasBattery(cartType byte) bool { return batteryTypes[cartType] }

// newRAM allocates external RAM per the header and seeds it from a save file
// when the sizes agree.
func newRAM(h *Header, saveFile []byte) []byte {
	if h.RAMSizeBytes == 0 {
		return nil
	}
	ram := make([]byte, h.RAMSizeBytes)
	if len(saveFile) == len(ram) {
		copy(ram, saveFile)
	}
	return ram
}

func copyRAM(ram []byte) []byte {
	if len(ram) == 0 {
		return nil
	}
	out := make([]byte, len(ram))
	copy(out, ram)
	return out
}
