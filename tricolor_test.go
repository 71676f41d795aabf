package epd

import (
	"image/color"
	"testing"

	"periph.io/x/devices/v3/epd/image1bit"
)

func TestChannelBits(t *testing.T) {
	tests := []struct {
		c          TriColor
		bw, accent image1bit.Bit
	}{
		{White, image1bit.On, image1bit.Off},
		{Black, image1bit.Off, image1bit.Off},
		{Red, image1bit.On, image1bit.On},
	}
	for _, tt := range tests {
		bw, accent := channelBits(tt.c)
		if bw != tt.bw || accent != tt.accent {
			t.Errorf("channelBits(%v) = (%v, %v), want (%v, %v)", tt.c, bw, accent, tt.bw, tt.accent)
		}
	}
}

func TestTriColorModel(t *testing.T) {
	tests := []struct {
		c    color.Color
		want TriColor
	}{
		{color.White, White},
		{color.Black, Black},
		{color.RGBA{0xFF, 0x00, 0x00, 0xFF}, Red},
		{color.RGBA{0xC0, 0x10, 0x10, 0xFF}, Red},
		// Orange has too much green to count as the accent color.
		{color.RGBA{0xFF, 0xA0, 0x00, 0xFF}, White},
		{Red, Red},
	}
	for _, tt := range tests {
		if got := TriColorModel.Convert(tt.c).(TriColor); got != tt.want {
			t.Errorf("Convert(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestTriColorInitialPlanes(t *testing.T) {
	d := NewTriColor(&mockTx{}, newMockDriver(false), 16, 8)
	for i, b := range d.bw.Bytes() {
		if b != 0xFF {
			t.Errorf("bw[%d] = %#02x, want 0xff", i, b)
		}
	}
	for i, b := range d.accent.Bytes() {
		if b != 0x00 {
			t.Errorf("accent[%d] = %#02x, want 0x00", i, b)
		}
	}
}

func TestTriColorSetPixel(t *testing.T) {
	d := NewTriColor(&mockTx{}, newMockDriver(false), 16, 8)

	d.SetPixel(0, 0, Black)
	if d.bw.Bytes()[0] != 0x7F {
		t.Errorf("bw[0] = %#02x, want 0x7f", d.bw.Bytes()[0])
	}
	if d.accent.Bytes()[0] != 0x00 {
		t.Errorf("accent[0] = %#02x, want 0x00", d.accent.Bytes()[0])
	}

	d.SetPixel(0, 0, Red)
	if d.bw.Bytes()[0] != 0xFF {
		t.Errorf("bw[0] = %#02x, want 0xff", d.bw.Bytes()[0])
	}
	if d.accent.Bytes()[0] != 0x80 {
		t.Errorf("accent[0] = %#02x, want 0x80", d.accent.Bytes()[0])
	}

	d.SetPixel(0, 0, White)
	if d.bw.Bytes()[0] != 0xFF {
		t.Errorf("bw[0] = %#02x, want 0xff", d.bw.Bytes()[0])
	}
	if d.accent.Bytes()[0] != 0x00 {
		t.Errorf("accent[0] = %#02x, want 0x00", d.accent.Bytes()[0])
	}
}

func TestTriColorFlushOrder(t *testing.T) {
	drv := newMockDriver(false)
	d := NewTriColor(&mockTx{}, drv, 16, 8)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	d.SetPixel(3, 0, Red)
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}

	want := []string{"wakeup", "setshape 16x8", "channel 0", "channel 1", "turnon"}
	if !equalStrings(*drv.calls, want) {
		t.Fatalf("calls = %v, want %v", *drv.calls, want)
	}

	bw, accent := (*drv.frames)[0], (*drv.frames)[1]
	if bw[0] != 0xFF {
		t.Errorf("bw frame[0] = %#02x, want 0xff", bw[0])
	}
	if accent[0] != 0x10 {
		t.Errorf("accent frame[0] = %#02x, want 0x10", accent[0])
	}
}

func TestTriColorClear(t *testing.T) {
	d := NewTriColor(&mockTx{}, newMockDriver(false), 16, 8)
	d.Clear(Red)
	for i := range d.bw.Bytes() {
		if d.bw.Bytes()[i] != 0xFF || d.accent.Bytes()[i] != 0xFF {
			t.Fatalf("byte %d = (%#02x, %#02x), want (0xff, 0xff)", i, d.bw.Bytes()[i], d.accent.Bytes()[i])
		}
	}
	d.Clear(Black)
	for i := range d.bw.Bytes() {
		if d.bw.Bytes()[i] != 0x00 || d.accent.Bytes()[i] != 0x00 {
			t.Fatalf("byte %d = (%#02x, %#02x), want (0x00, 0x00)", i, d.bw.Bytes()[i], d.accent.Bytes()[i])
		}
	}
}

func TestTriColorSleepGuard(t *testing.T) {
	d := NewTriColor(&mockTx{}, newMockDriver(false), 16, 8)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(); err != errAsleep {
		t.Fatalf("Flush after Sleep = %v, want errAsleep", err)
	}
}
