package epd

import (
	"errors"
	"testing"

	"periph.io/x/devices/v3/epd/image1bit"
)

func TestNewGrayRejectsDepth(t *testing.T) {
	// The mock driver declares 2 and 4 bit waveforms.
	if _, err := NewGray(&mockTx{}, newMockDriver(false), 8, 1, 3); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("NewGray(3bpp) = %v, want ErrInvalidFormat", err)
	}
	if _, err := NewGray(&mockTx{}, newMockDriver(false), 8, 1, 4); err != nil {
		t.Fatalf("NewGray(4bpp) = %v", err)
	}
}

func TestGrayFlushPassCount(t *testing.T) {
	// A depth of b costs exactly 2^b exposure passes, from the maximum level
	// down to the settle pass at level 0.
	for _, tt := range []struct {
		bits   int
		passes int
	}{
		{2, 4},
		{4, 16},
	} {
		drv := newMockDriver(false)
		d, err := NewGray(&mockTx{}, drv, 8, 1, tt.bits)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.Init(); err != nil {
			t.Fatal(err)
		}
		if err := d.Flush(); err != nil {
			t.Fatal(err)
		}
		var updates, activations int
		for _, c := range *drv.calls {
			switch c {
			case "update":
				updates++
			case "turnonwave":
				activations++
			}
		}
		if updates != tt.passes || activations != tt.passes {
			t.Errorf("%dbpp: %d updates, %d activations, want %d each", tt.bits, updates, activations, tt.passes)
		}
	}
}

func TestGrayFlushExposures(t *testing.T) {
	// 4 pixels wide, 2bpp, levels 0..3 across the row. Each pass marks a
	// pixel dark when its level is strictly below the pass level, so the
	// exposure sequence is a staircase and the level-0 pass marks nothing.
	drv := newMockDriver(false)
	d, err := NewGray(&mockTx{}, drv, 4, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		d.SetPixel(x, 0, uint8(x))
	}
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}

	if got := (*drv.calls)[2]; got != "graywave 2" {
		t.Fatalf("call after init = %q, want waveform setup", got)
	}

	// Pixels x0..x3 occupy bits 7..4 of the single row byte.
	wantFrames := []byte{
		0x1F, // level 3: x0..x2 dark
		0x3F, // level 2: x0, x1 dark
		0x7F, // level 1: x0 dark
		0xFF, // level 0: settle, nothing dark
	}
	if len(*drv.frames) != len(wantFrames) {
		t.Fatalf("%d frames, want %d", len(*drv.frames), len(wantFrames))
	}
	for i, want := range wantFrames {
		if got := (*drv.frames)[i][0]; got != want {
			t.Errorf("pass %d frame = %#02x, want %#02x", i, got, want)
		}
	}
}

func TestGraySetPixelSaturates(t *testing.T) {
	d, err := NewGray(&mockTx{}, newMockDriver(false), 4, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	d.SetPixel(0, 0, 200)
	if got := d.fb.Level(0, 0); got != 3 {
		t.Errorf("Level(0, 0) = %d, want 3", got)
	}
	if d.MaxLevel() != 3 {
		t.Errorf("MaxLevel = %d, want 3", d.MaxLevel())
	}
}

func TestGrayClear(t *testing.T) {
	drv := newMockDriver(false)
	d, err := NewGray(&mockTx{}, drv, 8, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Clear(image1bit.Off); err != nil {
		t.Fatal(err)
	}

	// A flat clear bypasses the multi-pass sequence: restore the normal
	// waveform, one transfer, one activation.
	want := []string{"wakeup", "setshape 8x1", "restorewave", "update", "turnon"}
	if !equalStrings(*drv.calls, want) {
		t.Fatalf("calls = %v, want %v", *drv.calls, want)
	}
	if got := (*drv.frames)[0][0]; got != 0x00 {
		t.Errorf("frame byte = %#02x, want 0x00", got)
	}
	if got := d.fb.Level(0, 0); got != 0 {
		t.Errorf("Level(0, 0) = %d, want 0", got)
	}
}

func TestGraySleepGuard(t *testing.T) {
	d, err := NewGray(&mockTx{}, newMockDriver(false), 8, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(); err != errAsleep {
		t.Fatalf("Flush after Sleep = %v, want errAsleep", err)
	}
	if err := d.Clear(image1bit.On); err != errAsleep {
		t.Fatalf("Clear after Sleep = %v, want errAsleep", err)
	}
}
