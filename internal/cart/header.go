package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x014F
)

// Construction-time failures. Emulation itself never errors.
var (
	// ErrUnsupportedCartridge reports a cartridge type code outside the
	// supported set {0x00, 0x01..0x03, 0x0F..0x13, 0x19..0x1E}.
	ErrUnsupportedCartridge = errors.New("unsupported cartridge")

	// ErrMalformedROM reports a ROM image too small for its declared layout.
	ErrMalformedROM = errors.New("malformed ROM")
)

// Header is the decoded cartridge header at 0x0100–0x014F.
type Header struct {
	Title          string // 0x0134–0x0143, trimmed ASCII
	CGBFlag        byte   // 0x0143
	CartType       byte   // 0x0147
	ROMSizeCode    byte   // 0x0148
	RAMSizeCode    byte   // 0x0149
	HeaderChecksum byte   // 0x014D
	GlobalChecksum uint16 // 0x014E–0x014F

	// Decoded helpers
	ROMBanks     int
	RAMSizeBytes int
	CartTypeStr  string
}

// CGBSupport reports whether the game declares CGB compatibility (bit 7 of
// the CGB flag).
func (h *Header) CGBSupport() bool { return h.CGBFlag&0x80 != 0 }

func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, fmt.Errorf("%w: %d bytes, no header", ErrMalformedROM, len(rom))
	}

	rawTitle := rom[0x0134:0x0144]
	title := strings.TrimRight(string(rawTitle), "\x00")

	h := &Header{
		Title:          title,
		CGBFlag:        rom[0x0143],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}

	// ROM bank count = 2 * 2^code; RAM size table indexed by 0x0149.
	if h.ROMSizeCode > 0x08 {
		return nil, fmt.Errorf("%w: ROM size code %#02x", ErrMalformedROM, h.ROMSizeCode)
	}
	h.ROMBanks = 2 << h.ROMSizeCode
	if int(h.RAMSizeCode) < len(ramSizes) {
		h.RAMSizeBytes = ramSizes[h.RAMSizeCode]
	}
	h.CartTypeStr = cartTypeString(h.CartType)

	return h, nil
}

// HeaderChecksumOK recomputes the header checksum over 0x0134–0x014C.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	default:
		return "unknown"
	}
}
