package bus

// transferType distinguishes the two CGB VRAM copy modes selected through
// HDMA5 bit 7.
type transferType int

const (
	transferNone transferType = iota
	transferGDMA              // copy the full length immediately
	transferHDMA              // copy 16 bytes on each HBlank entry
)

// dmaController holds the CGB HDMA/GDMA register file at 0xFF51–0xFF55.
type dmaController struct {
	control  byte
	src, dst uint16
	length   uint16
	transfer transferType
}

func (d *dmaController) read(addr uint16) byte {
	switch addr {
	case 0xFF55:
		return d.control
	default:
		// HDMA1..4 are write-only.
		return 0xFF
	}
}

func (d *dmaController) write(addr uint16, value byte) {
	switch addr {
	case 0xFF51:
		d.src = d.src&0x00FF | uint16(value)<<8
	case 0xFF52:
		// Sources are 16-byte aligned.
		d.src = d.src&0xFF00 | uint16(value)&0xF0
	case 0xFF53:
		d.dst = d.dst&0x00FF | uint16(value)<<8
	case 0xFF54:
		d.dst = d.dst&0xFF00 | uint16(value)&0xF0
	case 0xFF55:
		d.control = value
		d.length = (uint16(value&0x7F) + 1) << 4

		if value&0x80 != 0 {
			d.transfer = transferHDMA
		} else if d.transfer == transferHDMA {
			// Writing with bit 7 clear cancels an active HDMA.
			d.control = 0xFF
			d.transfer = transferNone
		} else {
			d.transfer = transferGDMA
		}
	}
}

// tickCGBDMA advances the controller: a GDMA runs to completion, an HDMA
// moves one 16-byte block when the PPU just entered HBlank. Destinations are
// constrained to VRAM.
func (b *Bus) tickCGBDMA(hblank bool) {
	d := &b.cgbDMA

	switch d.transfer {
	case transferHDMA:
		if !hblank {
			return
		}
		for offset := uint16(0); offset < 0x10; offset++ {
			value := b.readByte(d.src + offset)
			b.ppu.Write((d.dst+offset)&0x1FFF+0x8000, value)
		}

		d.length -= 0x10
		d.src += 0x10
		d.dst += 0x10
		d.control--

		if d.length == 0 {
			d.control = 0xFF
			d.transfer = transferNone
		}

	case transferGDMA:
		for offset := uint16(0); offset < d.length; offset++ {
			value := b.readByte(d.src + offset)
			b.ppu.Write((d.dst+offset)&0x1FFF+0x8000, value)
		}

		d.control = 0xFF
		d.transfer = transferNone
	}
}
