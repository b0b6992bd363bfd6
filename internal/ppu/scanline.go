package ppu

import "sort"

// dmgPalette holds the RGB values backing the four DMG shades, indexed by
// the two-bit colour extracted through BGP/OBP0/OBP1.
var dmgPalette = [4]uint32{0xFED018, 0xD35600, 0x5E1210, 0x0D0405}

// sprite is one decoded OAM entry. x and y are already offset to screen
// coordinates (OAM stores them +8/+16).
type sprite struct {
	oamIndex   int
	y, x       byte
	tileNumber byte
	flags      byte
}

// renderScanline draws line LY into the back framebuffer: background/window
// first, sprites blended on top.
func (p *PPU) renderScanline() {
	p.renderBackground()
	p.renderSprites()
}

func (p *PPU) setPixel(x, y byte, colour uint32) {
	offset := (int(y)*ScreenWidth + int(x)) * 3
	p.backFramebuffer[offset] = byte(colour >> 16)
	p.backFramebuffer[offset+1] = byte(colour >> 8)
	p.backFramebuffer[offset+2] = byte(colour)
}

// scaleRGB converts a 15-bit little-endian CGB colour to RGB24 using Near's
// colour correction matrix.
func scaleRGB(cgbColour uint16) uint32 {
	red := uint32(cgbColour) & 0x1F
	green := uint32(cgbColour>>5) & 0x1F
	blue := uint32(cgbColour>>10) & 0x1F

	newRed := red*26 + green*4 + blue*2
	newGreen := green*24 + blue*8
	newBlue := red*6 + green*4 + blue*22

	newRed = min(newRed, 960) >> 2
	newGreen = min(newGreen, 960) >> 2
	newBlue = min(newBlue, 960) >> 2

	return newRed<<16 | newGreen<<8 | newBlue
}

func (p *PPU) renderBackground() {
	// On DMG, LCDC bit 0 disables the background and window outright. The
	// line still contributes colour index 0 so sprite blending behaves.
	if p.lcdc&0x01 == 0 && !p.cgbMode {
		for x := byte(0); x < ScreenWidth; x++ {
			p.linePriorities[x] = linePixel{}
			p.setPixel(x, p.ly, dmgPalette[p.bgp&0x03])
		}
		return
	}

	winMap := uint16(0x1800)
	if p.lcdc&(1<<6) != 0 {
		winMap = 0x1C00
	}
	bgdMap := uint16(0x1800)
	if p.lcdc&(1<<3) != 0 {
		bgdMap = 0x1C00
	}
	tileData := uint16(0x1000)
	if p.lcdc&(1<<4) != 0 {
		tileData = 0x0000
	}

	incrementWindowCounter := false

	for x := byte(0); x < ScreenWidth; x++ {
		var mapX, mapY byte
		var tileMap uint16

		if p.lcdc&(1<<5) != 0 && p.wy <= p.ly && p.wx <= x+7 {
			mapX = x + 7 - p.wx
			mapY = p.windowLineCounter
			tileMap = winMap
			incrementWindowCounter = true
		} else {
			mapX = x + p.scx
			mapY = p.ly + p.scy
			tileMap = bgdMap
		}

		tileX := mapX & 0x07
		tileY := mapY & 0x07

		// 32x32 tile map, one byte per tile.
		tileNumberIndex := tileMap + ((uint16(mapY)>>3)<<5)&0x3FF + (uint16(mapX)>>3)&0x1F
		tileNumber := p.vram[tileNumberIndex]

		var bgAttributes byte
		if p.cgbMode {
			bgAttributes = p.vram[int(tileNumberIndex)+0x2000]
			if bgAttributes&(1<<6) != 0 {
				tileY = 7 - tileY
			}
		}

		// 0x8000 addressing uses the tile number as unsigned, 0x8800
		// addressing as signed relative to 0x9000.
		var address uint16
		if tileData == 0x0000 {
			address = uint16(tileNumber)<<4 + uint16(tileY)<<1
		} else {
			address = tileData + uint16(int16(int8(tileNumber)))<<4 + uint16(tileY)<<1
		}

		if !p.cgbMode {
			lsb := p.vram[address]
			msb := p.vram[address+1]

			tileColour := (msb>>(7-tileX)&0x01)<<1 | (lsb >> (7 - tileX) & 0x01)

			p.linePriorities[x] = linePixel{colorIndex: tileColour}
			p.setPixel(x, p.ly, dmgPalette[(p.bgp>>(tileColour<<1))&0x03])
		} else {
			palette := int(bgAttributes & 0x07)

			var bankOffset uint16
			if bgAttributes&(1<<3) != 0 {
				bankOffset = 0x2000
			}

			if bgAttributes&(1<<5) == 0 {
				tileX = 7 - tileX
			}

			priority := bgAttributes&(1<<7) != 0

			lsb := p.vram[address+bankOffset]
			msb := p.vram[address+bankOffset+1]

			tileColour := (msb>>tileX&0x01)<<1 | (lsb >> tileX & 0x01)

			p.linePriorities[x] = linePixel{colorIndex: tileColour, priority: priority}

			paletteOffset := palette*8 + int(tileColour)*2
			cgbColour := uint16(p.bgdPalettes[paletteOffset+1])<<8 | uint16(p.bgdPalettes[paletteOffset])

			p.setPixel(x, p.ly, scaleRGB(cgbColour))
		}
	}

	if incrementWindowCounter {
		p.windowLineCounter++
	}
}

func (p *PPU) renderSprites() {
	if p.lcdc&(1<<1) == 0 {
		return
	}

	spriteSize := byte(8)
	if p.lcdc&(1<<2) != 0 {
		spriteSize = 16
	}

	// OAM search: collect the first ten sprites covering this line.
	sprites := make([]sprite, 0, 10)
	for i := 0; i < len(p.oam) && len(sprites) < 10; i += 4 {
		y := p.oam[i] - 16
		x := p.oam[i+1] - 8
		tileNumber := p.oam[i+2]
		flags := p.oam[i+3]

		// In 8x16 mode the tile number's low bit is ignored.
		if spriteSize == 16 {
			tileNumber &= 0xFE
		}

		if y <= p.ly && p.ly < y+spriteSize {
			sprites = append(sprites, sprite{
				oamIndex:   i / 4,
				y:          y,
				x:          x,
				tileNumber: tileNumber,
				flags:      flags,
			})
		}
	}

	// Draw order is back to front, so the winning sprite is drawn last.
	// DMG: lowest X wins, OAM order breaks ties. CGB: OAM order wins.
	if !p.cgbMode {
		sort.Slice(sprites, func(i, j int) bool {
			if sprites[i].x != sprites[j].x {
				return sprites[i].x > sprites[j].x
			}
			return sprites[i].oamIndex > sprites[j].oamIndex
		})
	} else {
		for i, j := 0, len(sprites)-1; i < j; i, j = i+1, j-1 {
			sprites[i], sprites[j] = sprites[j], sprites[i]
		}
	}

	for _, s := range sprites {
		yFlip := s.flags&(1<<6) != 0
		xFlip := s.flags&(1<<5) != 0

		dmgPaletteReg := p.obp0
		if s.flags&(1<<4) != 0 {
			dmgPaletteReg = p.obp1
		}

		colourPalette := int(s.flags & 0x07)

		var vramOffset uint16
		if s.flags&(1<<3) != 0 && p.cgbMode {
			vramOffset = 0x2000
		}

		// When clear, the sprite draws over the background; when set it
		// hides behind non-zero background colours.
		spriteOverBg := s.flags&(1<<7) == 0

		tileY := p.ly - s.y
		if yFlip {
			tileY = spriteSize - (p.ly - s.y + 1)
		}

		address := uint16(s.tileNumber)<<4 + uint16(tileY)<<1

		lsb := p.vram[address+vramOffset]
		msb := p.vram[address+vramOffset+1]

		for x := byte(0); x < 8; x++ {
			actualX := s.x + x
			if actualX >= ScreenWidth {
				continue
			}

			var colourIndex byte
			if xFlip {
				colourIndex = (msb>>x&0x01)<<1 | (lsb >> x & 0x01)
			} else {
				colourIndex = (msb>>(7-x)&0x01)<<1 | (lsb >> (7 - x) & 0x01)
			}

			// Colour 0 is transparent for sprites.
			if colourIndex == 0 {
				continue
			}

			var colour uint32
			if p.cgbMode {
				paletteOffset := colourPalette*8 + int(colourIndex)*2
				cgbColour := uint16(p.objPalettes[paletteOffset+1])<<8 | uint16(p.objPalettes[paletteOffset])
				colour = scaleRGB(cgbColour)
			} else {
				colour = dmgPalette[(dmgPaletteReg>>(colourIndex<<1))&0x03]
			}

			bg := p.linePriorities[actualX]
			if p.cgbMode {
				if p.lcdc&0x01 == 0 || bg.colorIndex == 0 || (!bg.priority && spriteOverBg) {
					p.setPixel(actualX, p.ly, colour)
				}
			} else if spriteOverBg || bg.colorIndex == 0 {
				p.setPixel(actualX, p.ly, colour)
			}
		}
	}
}
