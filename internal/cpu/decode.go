package cpu

import (
	"github.com/quartzgb/quartz/internal/bus"
)

// decodeAndExecute dispatches one fetched opcode. The table follows the SM83
// layout: r8/r16/condition subfields are decoded by shifting the opcode.
// Invalid opcodes execute as NOPs.
func (c *CPU) decodeAndExecute(b *bus.Bus, instruction byte) {
	switch {
	case instruction == 0x00: // NOP

	case instruction == 0x08:
		c.ldU16SP(b)

	case instruction == 0x10:
		c.stop(b)

	case instruction == 0x18:
		c.unconditionalJR(b)

	case instruction == 0x20 || instruction == 0x28 || instruction == 0x30 || instruction == 0x38:
		c.conditionalJR(b, instruction>>3&0x03)

	case instruction == 0x01 || instruction == 0x11 || instruction == 0x21 || instruction == 0x31:
		c.ldR16U16(b, instruction>>4&0x03)

	case instruction == 0x09 || instruction == 0x19 || instruction == 0x29 || instruction == 0x39:
		c.addHLR16(b, instruction>>4&0x03)

	case instruction == 0x02 || instruction == 0x12 || instruction == 0x22 || instruction == 0x32:
		c.ldR16A(b, instruction>>4&0x03)

	case instruction == 0x0A || instruction == 0x1A || instruction == 0x2A || instruction == 0x3A:
		c.ldAR16(b, instruction>>4&0x03)

	case instruction == 0x03 || instruction == 0x13 || instruction == 0x23 || instruction == 0x33:
		c.incR16(b, instruction>>4&0x03)

	case instruction == 0x0B || instruction == 0x1B || instruction == 0x2B || instruction == 0x3B:
		c.decR16(b, instruction>>4&0x03)

	case instruction&0xC7 == 0x04: // INC r8
		c.incR8(b, instruction>>3&0x07)

	case instruction&0xC7 == 0x05: // DEC r8
		c.decR8(b, instruction>>3&0x07)

	case instruction&0xC7 == 0x06: // LD r8,u8
		c.ldR8U8(b, instruction>>3&0x07)

	case instruction&0xC7 == 0x07: // accumulator/flag operation family
		switch instruction >> 3 & 0x07 {
		case 0:
			c.rlca()
		case 1:
			c.rrca()
		case 2:
			c.rla()
		case 3:
			c.rra()
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.scf()
		case 7:
			c.ccf()
		}

	case instruction == 0x76:
		c.halt()

	case instruction >= 0x40 && instruction <= 0x7F:
		c.ldR8R8(b, instruction&0x07, instruction>>3&0x07)

	case instruction >= 0x80 && instruction <= 0xBF:
		c.aluR8(b, instruction>>3&0x07, c.readR8(b, instruction&0x07))

	case instruction == 0xC0 || instruction == 0xC8 || instruction == 0xD0 || instruction == 0xD8:
		c.conditionalRET(b, instruction>>3&0x03)

	case instruction == 0xE0:
		c.ldIOU8A(b)

	case instruction == 0xE8:
		c.addSPI8(b)

	case instruction == 0xF0:
		c.ldAIOU8(b)

	case instruction == 0xF8:
		c.ldHLSPI8(b)

	case instruction == 0xC1 || instruction == 0xD1 || instruction == 0xE1 || instruction == 0xF1:
		c.popR16(b, instruction>>4&0x03)

	case instruction == 0xC9:
		c.unconditionalRET(b)

	case instruction == 0xD9:
		c.reti(b)

	case instruction == 0xE9:
		c.jpHL()

	case instruction == 0xF9:
		c.ldSPHL(b)

	case instruction == 0xC2 || instruction == 0xD2 || instruction == 0xCA || instruction == 0xDA:
		c.conditionalJP(b, instruction>>3&0x03)

	case instruction == 0xE2:
		c.ldIOCA(b)

	case instruction == 0xEA:
		c.ldU16A(b)

	case instruction == 0xF2:
		c.ldAIOC(b)

	case instruction == 0xFA:
		c.ldAU16(b)

	case instruction == 0xC3:
		c.unconditionalJP(b)

	case instruction == 0xCB:
		c.decodeCB(b, c.immByte(b))

	case instruction == 0xF3:
		c.di()

	case instruction == 0xFB:
		c.ei()

	case instruction == 0xC4 || instruction == 0xCC || instruction == 0xD4 || instruction == 0xDC:
		c.conditionalCALL(b, instruction>>3&0x03)

	case instruction == 0xC5 || instruction == 0xD5 || instruction == 0xE5 || instruction == 0xF5:
		c.pushR16(b, instruction>>4&0x03)

	case instruction == 0xCD:
		c.unconditionalCALL(b)

	case instruction&0xC7 == 0xC6: // ALU A,u8
		c.aluR8(b, instruction>>3&0x07, c.immByte(b))

	case instruction&0xC7 == 0xC7: // RST
		c.rst(b, uint16(instruction&0x38))
	}
}

// aluR8 runs the three-bit ALU operation selector shared by the register,
// (HL) and immediate forms.
func (c *CPU) aluR8(b *bus.Bus, operation, value byte) {
	switch operation {
	case 0:
		c.addR8(value)
	case 1:
		c.adcR8(value)
	case 2:
		c.subR8(value)
	case 3:
		c.sbcR8(value)
	case 4:
		c.andR8(value)
	case 5:
		c.xorR8(value)
	case 6:
		c.orR8(value)
	case 7:
		c.cpR8(value)
	}
}

// decodeCB dispatches the CB-prefixed opcode space: rotates and shifts,
// then BIT/RES/SET.
func (c *CPU) decodeCB(b *bus.Bus, opcode byte) {
	r8 := opcode & 0x07
	y := opcode >> 3 & 0x07

	switch opcode >> 6 & 0x03 {
	case 0:
		switch y {
		case 0:
			c.rlcR8(b, r8)
		case 1:
			c.rrcR8(b, r8)
		case 2:
			c.rlR8(b, r8)
		case 3:
			c.rrR8(b, r8)
		case 4:
			c.slaR8(b, r8)
		case 5:
			c.sraR8(b, r8)
		case 6:
			c.swapR8(b, r8)
		case 7:
			c.srlR8(b, r8)
		}
	case 1:
		c.bitR8(b, r8, y)
	case 2:
		c.resR8(b, r8, y)
	case 3:
		c.setR8(b, r8, y)
	}
}
