package epd

import (
	"testing"

	"periph.io/x/devices/v3/epd/image1bit"
)

func TestFastUpdateInitLoadsFastWaveform(t *testing.T) {
	drv := newMockDriver(false)
	d := NewFastUpdate(&mockTx{}, drv, 16, 8)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	want := []string{"wakeup", "setshape 16x8", "fastwave"}
	if !equalStrings(*drv.calls, want) {
		t.Fatalf("calls = %v, want %v", *drv.calls, want)
	}
}

func TestFastUpdateFlushUsesRegisterWaveform(t *testing.T) {
	drv := newMockDriver(false)
	d := NewFastUpdate(&mockTx{}, drv, 16, 8)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	d.SetPixel(0, 0, image1bit.Off)
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []string{"wakeup", "setshape 16x8", "fastwave", "update", "turnonwave"}
	if !equalStrings(*drv.calls, want) {
		t.Fatalf("calls = %v, want %v", *drv.calls, want)
	}
}

func TestFastUpdateFlushFull(t *testing.T) {
	// A full-quality flush restores the normal waveform for one refresh,
	// then reloads the fast table so subsequent flushes stay quick.
	drv := newMockDriver(false)
	d := NewFastUpdate(&mockTx{}, drv, 16, 8)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.FlushFull(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"wakeup", "setshape 16x8", "fastwave",
		"restorewave", "update", "turnonwave", "fastwave",
	}
	if !equalStrings(*drv.calls, want) {
		t.Fatalf("calls = %v, want %v", *drv.calls, want)
	}
}

func TestFastUpdateSleepGuard(t *testing.T) {
	d := NewFastUpdate(&mockTx{}, newMockDriver(false), 16, 8)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(); err != errAsleep {
		t.Fatalf("Flush after Sleep = %v, want errAsleep", err)
	}
	if err := d.FlushFull(); err != errAsleep {
		t.Fatalf("FlushFull after Sleep = %v, want errAsleep", err)
	}
}

func TestFastUpdatePolarity(t *testing.T) {
	d := NewFastUpdate(&mockTx{}, newMockDriver(true), 16, 8)
	for i, b := range d.fb.Bytes() {
		if b != 0x00 {
			t.Errorf("inverted plane byte %d = %#02x, want 0x00", i, b)
		}
	}
}
