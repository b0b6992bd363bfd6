package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, rom []byte, save []byte) Cartridge {
	t.Helper()
	c, err := New(rom, save)
	require.NoError(t, err)
	return c
}

func TestMBC1_Banking(t *testing.T) {
	c := mustNew(t, testROM(0x01, 0x04, 0x03), nil) // 32 banks, 32 KiB RAM

	// Default switchable bank is 1.
	assert.Equal(t, byte(1), c.Read(0x4000))

	c.Write(0x2000, 0x07)
	assert.Equal(t, byte(7), c.Read(0x4000))
	assert.Equal(t, byte(7), c.Read(0x7FFF))

	// Zero in the lower register selects bank 1.
	c.Write(0x2000, 0x00)
	assert.Equal(t, byte(1), c.Read(0x4000))

	// Fixed area stays bank 0 in mode 0.
	assert.Equal(t, byte(0), c.Read(0x0000))
}

func TestMBC1_ROMMirroring(t *testing.T) {
	// 4-bank cartridge: bank numbers wrap modulo the bank count.
	c := mustNew(t, testROM(0x01, 0x01, 0x00), nil)

	c.Write(0x2000, 0x05)
	assert.Equal(t, byte(5%4), c.Read(0x4000))
	assert.Equal(t, byte(1), c.Read(0x7FFF))
}

func TestMBC1_RAMEnableAndBanking(t *testing.T) {
	c := mustNew(t, testROM(0x03, 0x04, 0x03), nil)

	// Disabled RAM reads as 0xFF and drops writes.
	c.Write(0xA000, 0x12)
	assert.Equal(t, byte(0xFF), c.Read(0xA000))

	c.Write(0x0000, 0x0A) // enable
	c.Write(0xA000, 0x12)
	assert.Equal(t, byte(0x12), c.Read(0xA000))

	// RAM banking requires mode 1.
	c.Write(0x6000, 0x01)
	c.Write(0x4000, 0x02) // RAM bank 2
	c.Write(0xA000, 0x34)
	assert.Equal(t, byte(0x34), c.Read(0xA000))
	c.Write(0x4000, 0x00)
	assert.Equal(t, byte(0x12), c.Read(0xA000))

	c.Write(0x0000, 0x00) // disable again
	assert.Equal(t, byte(0xFF), c.Read(0xA000))
}

func TestMBC3_Banking(t *testing.T) {
	c := mustNew(t, testROM(0x13, 0x05, 0x03), nil) // 64 banks

	assert.Equal(t, byte(0), c.Read(0x0000))
	assert.Equal(t, byte(1), c.Read(0x4000))

	c.Write(0x2000, 0x3F)
	assert.Equal(t, byte(0x3F), c.Read(0x4000))

	c.Write(0x2000, 0x00)
	assert.Equal(t, byte(1), c.Read(0x4000))

	// RTC register selects fall back to RAM bank 0.
	c.Write(0x0000, 0x0A)
	c.Write(0x4000, 0x01)
	c.Write(0xA000, 0xAB)
	c.Write(0x4000, 0x08) // RTC seconds select: switches to RAM bank 0
	c.Write(0x4000, 0x01)
	assert.Equal(t, byte(0xAB), c.Read(0xA000))
}

func TestMBC5_NineBitBank(t *testing.T) {
	c := mustNew(t, testROM(0x1B, 0x07, 0x04), nil) // 256 banks, 128 KiB RAM

	c.Write(0x2000, 0x34)
	assert.Equal(t, byte(0x34), c.Read(0x4000))

	// Bit 8 wraps modulo the bank count on a 256-bank image.
	c.Write(0x3000, 0x01)
	assert.Equal(t, byte(0x34), c.Read(0x4000))

	// MBC5 allows mapping bank 0 into the switchable area.
	c.Write(0x3000, 0x00)
	c.Write(0x2000, 0x00)
	assert.Equal(t, byte(0), c.Read(0x4000))
}

func TestMBC5_RAMBanks(t *testing.T) {
	c := mustNew(t, testROM(0x1B, 0x02, 0x04), nil)

	c.Write(0x0000, 0x0A)
	for bank := byte(0); bank < 4; bank++ {
		c.Write(0x4000, bank)
		c.Write(0xA000, 0x40+bank)
	}
	for bank := byte(0); bank < 4; bank++ {
		c.Write(0x4000, bank)
		assert.Equal(t, 0x40+bank, c.Read(0xA000))
	}
}

func TestSRAM_RoundTrip(t *testing.T) {
	rom := testROM(0x03, 0x02, 0x02) // MBC1+RAM+BATTERY, 8 KiB
	c := mustNew(t, rom, nil)

	c.Write(0x0000, 0x0A)
	c.Write(0xA000, 0xDE)
	c.Write(0xBFFF, 0xAD)

	dump := c.SRAM()
	require.Len(t, dump, 0x2000)
	assert.Equal(t, byte(0xDE), dump[0])
	assert.Equal(t, byte(0xAD), dump[0x1FFF])

	// A fresh cartridge constructed with the dump sees the same bytes.
	c2 := mustNew(t, rom, dump)
	c2.Write(0x0000, 0x0A)
	assert.Equal(t, byte(0xDE), c2.Read(0xA000))
	assert.Equal(t, byte(0xAD), c2.Read(0xBFFF))
}

func TestROMOnly_IgnoresWrites(t *testing.T) {
	c := mustNew(t, testROM(0x00, 0x00, 0x00), nil)
	before := c.Read(0x2000)
	c.Write(0x2000, 0x55)
	assert.Equal(t, before, c.Read(0x2000))
	assert.Equal(t, byte(0xFF), c.Read(0xA000))
	assert.Nil(t, c.SRAM())
}
