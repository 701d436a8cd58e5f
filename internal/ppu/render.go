package ppu

// Tick advances the PPU by exactly one dot (one pixel-clock cycle). The
// coordinator calls this three times per CPU cycle (spec §5).
func (p *PPU) Tick() {
	if p.scanline == 0 && p.dot == 0 {
		// Grounded on fancy-nes-core/src/ppu.rs: the idle dot at the start
		// of the visible frame is skipped unconditionally, not only on odd
		// frames as real hardware does (SPEC_FULL.md §9).
		p.dot = 1
	}

	if p.scanline == 261 && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0 | statusOverflow
	}

	visible := p.scanline >= 0 && p.scanline <= 239
	preRender := p.scanline == 261

	if visible || preRender {
		p.backgroundDot()
		if p.dot == 257 {
			next := p.scanline + 1
			if next == 262 {
				next = 0
			}
			if next >= 0 && next <= 239 {
				p.evaluateSpritesForScanline(next)
			}
		}
	}

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiPending = true
		}
		p.frameReady = true
	}

	p.advance()
}

func (p *PPU) advance() {
	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
		}
	}
}

func (p *PPU) backgroundDot() {
	renderingEnabled := p.renderingEnabled()
	fetchWindow := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)

	if (p.dot >= 2 && p.dot <= 257) || (p.dot >= 322 && p.dot <= 337) {
		if renderingEnabled {
			p.bgShiftPatternLo <<= 1
			p.bgShiftPatternHi <<= 1
			p.bgShiftAttribLo <<= 1
			p.bgShiftAttribHi <<= 1
		}
	}

	if fetchWindow {
		switch (p.dot - 1) % 8 {
		case 0:
			p.loadBackgroundShifters()
			p.bgNextTile = p.ppuRead(0x2000 | (p.v & 0x0FFF))
		case 2:
			attrAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			attr := p.ppuRead(attrAddr)
			if p.v&0x40 != 0 {
				attr >>= 4
			}
			if p.v&0x02 != 0 {
				attr >>= 2
			}
			p.bgNextAttrib = attr & 0x03
		case 4:
			p.bgNextPatternLo = p.ppuRead(p.backgroundPatternAddr())
		case 6:
			p.bgNextPatternHi = p.ppuRead(p.backgroundPatternAddr() + 8)
		case 7:
			if renderingEnabled {
				p.incrementCoarseX()
			}
		}
	}

	if p.dot == 256 && renderingEnabled {
		p.incrementFineY()
	}
	if p.dot == 257 {
		p.loadBackgroundShifters()
		if renderingEnabled {
			p.copyHorizontalBits()
		}
	}
	if p.scanline == 261 && p.dot >= 280 && p.dot <= 304 && renderingEnabled {
		p.copyVerticalBits()
	}
}

func (p *PPU) backgroundPatternAddr() uint16 {
	fineY := (p.v >> 12) & 0x07
	var base uint16
	if p.ctrl&ctrlBGPatternTable != 0 {
		base = 0x1000
	}
	return base + uint16(p.bgNextTile)*16 + fineY
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShiftPatternLo = (p.bgShiftPatternLo & 0xFF00) | uint16(p.bgNextPatternLo)
	p.bgShiftPatternHi = (p.bgShiftPatternHi & 0xFF00) | uint16(p.bgNextPatternHi)

	var lo, hi uint16
	if p.bgNextAttrib&0x01 != 0 {
		lo = 0x00FF
	}
	if p.bgNextAttrib&0x02 != 0 {
		hi = 0x00FF
	}
	p.bgShiftAttribLo = (p.bgShiftAttribLo & 0xFF00) | lo
	p.bgShiftAttribHi = (p.bgShiftAttribHi & 0xFF00) | hi
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontalBits() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalBits() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// evaluateSpritesForScanline runs the stage 1-4 secondary-OAM evaluation
// walk (§4.4 step 3) for the given scanline, then fetches pattern data for
// whatever ended up in secondary OAM. The stage machine is driven to
// completion in one call rather than spread across real PPU dots, but it
// performs the exact same sequence of reads/writes/stage transitions a
// dot-by-dot walk would, including the documented hardware bug: when a
// sprite in stage 3 is found out of range, both the sprite index and the
// byte index advance (instead of only the sprite index), so overflow
// sometimes fails to trigger the same way it does on real hardware.
// Grounded on fancy-nes-core/src/ppu.rs's sprite_evaluation_substage walk.
func (p *PPU) evaluateSpritesForScanline(line int) {
	spriteHeight := 8
	if p.ctrl&ctrlSpriteHeight != 0 {
		spriteHeight = 16
	}

	inRange := func(y uint8) bool {
		row := line - (int(y) + 1)
		return row >= 0 && row < spriteHeight
	}

	var soam [32]uint8
	for i := range soam {
		soam[i] = 0xFF
	}
	var soamSource [8]int

	stage := 1
	n, m := 0, 0
	slot := 0
	writeRest := false
	var data uint8

	for stage != 4 {
		switch stage {
		case 1:
			data = p.oam[n*4+m]
		case 3:
			data = p.oam[n*4+m]
			if inRange(data) {
				p.status |= statusOverflow
				m++
				if m >= 4 {
					n++
					m = 0
					if n >= 64 {
						stage = 4
					}
				}
			} else {
				// Documented hardware bug: the byte index advances
				// alongside the sprite index instead of resetting.
				m++
				if m >= 4 {
					m = 0
				}
				n++
				if n >= 64 {
					stage = 4
				}
			}
			continue
		}

		switch stage {
		case 1:
			if writeRest {
				soam[slot*4+m] = data
				m++
				if m >= 4 {
					writeRest = false
					m = 0
					soamSource[slot] = n
					slot++
					stage = 2
				}
			} else {
				if slot <= 7 {
					soam[slot*4+m] = data
				}
				if inRange(data) {
					m++
					writeRest = true
				} else {
					m = 0
					stage = 2
				}
			}
		case 2:
			n++
			if n >= 64 {
				n = 0
				stage = 4
			} else if slot <= 7 {
				stage = 1
			} else if slot == 8 {
				stage = 3
			}
		}
	}

	count := uint8(slot)
	for i := 0; i < slot; i++ {
		y := soam[i*4]
		tile := soam[i*4+1]
		attr := soam[i*4+2]
		x := soam[i*4+3]

		row := line - (int(y) + 1)
		if attr&0x80 != 0 {
			row = spriteHeight - 1 - row
		}

		var patternAddr uint16
		if spriteHeight == 16 {
			table := uint16(tile&0x01) * 0x1000
			tileIndex := uint16(tile &^ 0x01)
			if row >= 8 {
				tileIndex++
				row -= 8
			}
			patternAddr = table + tileIndex*16 + uint16(row)
		} else {
			var table uint16
			if p.ctrl&ctrlSpritePattern != 0 {
				table = 0x1000
			}
			patternAddr = table + uint16(tile)*16 + uint16(row)
		}

		lo := p.ppuRead(patternAddr)
		hi := p.ppuRead(patternAddr + 8)
		if attr&0x40 != 0 {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteAttrib[i] = attr
		p.spriteX[i] = x
		p.spriteIsZero[i] = soamSource[i] == 0
	}
	p.spriteCount = count
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

func (p *PPU) renderPixel() {
	x := p.dot - 1

	var bgPixel, bgPalette uint8
	if p.mask&maskShowBackground != 0 && (x >= 8 || p.mask&maskBGLeftCol != 0) {
		bit := uint16(0x8000) >> p.x
		var p0, p1 uint8
		if p.bgShiftPatternLo&bit != 0 {
			p0 = 1
		}
		if p.bgShiftPatternHi&bit != 0 {
			p1 = 1
		}
		bgPixel = p1<<1 | p0

		var a0, a1 uint8
		if p.bgShiftAttribLo&bit != 0 {
			a0 = 1
		}
		if p.bgShiftAttribHi&bit != 0 {
			a1 = 1
		}
		bgPalette = a1<<1 | a0
	}

	var spPixel, spPalette uint8
	var spPriority, spIsZero bool
	if p.mask&maskShowSprites != 0 && (x >= 8 || p.mask&maskSpriteLeftCol != 0) {
		for i := uint8(0); i < p.spriteCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			bitPos := uint(7 - offset)
			pixel := (p.spritePatternHi[i]>>bitPos)&1<<1 | (p.spritePatternLo[i]>>bitPos)&1
			if pixel == 0 {
				continue
			}
			spPixel = pixel
			spPalette = (p.spriteAttrib[i] & 0x03) + 4
			spPriority = p.spriteAttrib[i]&0x20 != 0
			spIsZero = p.spriteIsZero[i]
			break
		}
	}

	var finalPalette, finalPixel uint8
	switch {
	case bgPixel == 0 && spPixel == 0:
		finalPalette, finalPixel = 0, 0
	case bgPixel == 0:
		finalPalette, finalPixel = spPalette, spPixel
	case spPixel == 0:
		finalPalette, finalPixel = bgPalette, bgPixel
	default:
		if spIsZero && x != 255 && p.mask&(maskShowBackground|maskShowSprites) == maskShowBackground|maskShowSprites {
			p.status |= statusSprite0
		}
		if spPriority {
			finalPalette, finalPixel = bgPalette, bgPixel
		} else {
			finalPalette, finalPixel = spPalette, spPixel
		}
	}

	var colorIndex uint8
	if finalPixel == 0 {
		colorIndex = p.readPalette(0x3F00)
	} else {
		colorIndex = p.readPalette(0x3F00 + uint16(finalPalette)*4 + uint16(finalPixel))
	}
	p.frame[p.scanline*256+x] = colorIndex & 0x3F
}
