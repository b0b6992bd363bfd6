package joypad

import "testing"

func TestReadInvertsState(t *testing.T) {
	j := New()

	// Both rows selected by default; nothing pressed.
	if got := j.Read(0xFF00); got&0x3F != 0x0F {
		t.Fatalf("idle JOYP got %02x want lower nibble F, rows selected", got)
	}

	j.KeyDown(Right)
	j.KeyDown(Up)
	j.Write(0xFF00, 0x20) // select d-pad only (bit 4 = 0)
	if got := j.Read(0xFF00); got&0x0F != 0x0A {
		t.Fatalf("d-pad JOYP got %02x want lower nibble A", got&0x0F)
	}

	j.KeyUp(Right)
	j.KeyUp(Up)
	j.KeyDown(A)
	j.KeyDown(Start)
	j.Write(0xFF00, 0x10) // select buttons only (bit 5 = 0)
	if got := j.Read(0xFF00); got&0x0F != 0x06 {
		t.Fatalf("buttons JOYP got %02x want lower nibble 6", got&0x0F)
	}
}

func TestSelectionBitsReadBack(t *testing.T) {
	j := New()
	j.Write(0xFF00, 0x30) // neither row selected
	if got := j.Read(0xFF00); got&0x30 != 0x30 {
		t.Fatalf("selection bits got %02x want 0x30 set", got&0x30)
	}
	j.KeyDown(A)
	if got := j.Read(0xFF00); got&0x0F != 0x0F {
		t.Fatalf("unselected rows should read high, got %02x", got&0x0F)
	}
}

func TestInterruptOnPress(t *testing.T) {
	j := New()
	var ifReg byte

	j.UpdateInterruptState(&ifReg)
	if ifReg != 0 {
		t.Fatalf("no press should raise no interrupt, IF=%02x", ifReg)
	}

	j.KeyDown(B)
	j.UpdateInterruptState(&ifReg)
	if ifReg&0x10 == 0 {
		t.Fatalf("key press should set IF bit 4, IF=%02x", ifReg)
	}

	// The pending flag is consumed.
	ifReg = 0
	j.UpdateInterruptState(&ifReg)
	if ifReg != 0 {
		t.Fatalf("interrupt flag should be one-shot, IF=%02x", ifReg)
	}

	// Releases do not request interrupts.
	j.KeyUp(B)
	j.UpdateInterruptState(&ifReg)
	if ifReg != 0 {
		t.Fatalf("key release should not set IF, IF=%02x", ifReg)
	}
}
