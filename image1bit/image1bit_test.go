package image1bit

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"periph.io/x/devices/v3/epd/geometry"
)

func TestNewFilledLight(t *testing.T) {
	p := New(16, 2)
	if p.BytesPerRow != 2 {
		t.Fatalf("BytesPerRow = %d, want 2", p.BytesPerRow)
	}
	if len(p.Pix) != 4 {
		t.Fatalf("len(Pix) = %d, want 4", len(p.Pix))
	}
	for i, b := range p.Pix {
		if b != 0xFF {
			t.Errorf("Pix[%d] = %#02x, want 0xff", i, b)
		}
	}
}

func TestNewInvertedFilledLight(t *testing.T) {
	// Same logical content, opposite stored polarity.
	p := NewInverted(16, 2)
	for i, b := range p.Pix {
		if b != 0x00 {
			t.Errorf("Pix[%d] = %#02x, want 0x00", i, b)
		}
	}
	if got := p.BitAt(3, 1); got != On {
		t.Errorf("BitAt(3, 1) = %v, want On", got)
	}
}

func TestSetBitPacking(t *testing.T) {
	tests := []struct {
		x, y       int
		wantOffset int
		wantMask   byte
	}{
		{0, 0, 0, 0x80},
		{7, 0, 0, 0x01},
		{8, 0, 1, 0x80},
		{0, 1, 2, 0x80},
		{12, 1, 3, 0x08},
	}
	for _, tt := range tests {
		p := New(16, 2)
		p.SetBit(tt.x, tt.y, Off)
		for i, b := range p.Pix {
			want := byte(0xFF)
			if i == tt.wantOffset {
				want = 0xFF &^ tt.wantMask
			}
			if b != want {
				t.Errorf("SetBit(%d, %d): Pix[%d] = %#02x, want %#02x", tt.x, tt.y, i, b, want)
			}
		}
	}
}

func TestSetBitInverted(t *testing.T) {
	p := NewInverted(8, 1)
	p.SetBit(0, 0, Off)
	if p.Pix[0] != 0x80 {
		t.Fatalf("Pix[0] = %#02x, want 0x80", p.Pix[0])
	}
	p.SetBit(0, 0, On)
	if p.Pix[0] != 0x00 {
		t.Fatalf("Pix[0] = %#02x, want 0x00", p.Pix[0])
	}
}

func TestRoundTrip(t *testing.T) {
	for r := geometry.Rotate0; r <= geometry.Rotate270; r++ {
		for m := geometry.MirrorNone; m <= geometry.MirrorOrigin; m++ {
			t.Run(fmt.Sprintf("%v/%v", r, m), func(t *testing.T) {
				p := New(10, 6)
				p.SetRotation(r)
				p.SetMirroring(m)
				bounds := p.Bounds()
				for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
					for x := bounds.Min.X; x < bounds.Max.X; x++ {
						want := Bit((x+y)%3 == 0)
						p.SetBit(x, y, want)
						if got := p.BitAt(x, y); got != want {
							t.Fatalf("BitAt(%d, %d) = %v, want %v", x, y, got, want)
						}
					}
				}
			})
		}
	}
}

func TestRotation270Packing(t *testing.T) {
	// 128×296 plane rotated 270° clockwise: the logical origin maps to the
	// physical bottom-left corner, i.e. the MSB of the last row's first byte.
	p := New(128, 296)
	p.SetRotation(geometry.Rotate270)

	if got, want := p.Bounds(), image.Rect(0, 0, 296, 128); got != want {
		t.Fatalf("Bounds = %v, want %v", got, want)
	}

	p.SetBit(0, 0, Off)
	wantOffset := 295 * 16
	if p.Pix[wantOffset] != 0x7F {
		t.Errorf("Pix[%d] = %#02x, want 0x7f", wantOffset, p.Pix[wantOffset])
	}
	for i, b := range p.Pix {
		if i != wantOffset && b != 0xFF {
			t.Errorf("Pix[%d] = %#02x, want 0xff", i, b)
		}
	}
}

func TestOutOfRangeDropped(t *testing.T) {
	p := New(8, 2)
	var logged int
	p.Logger = func(format string, args ...interface{}) {
		logged++
	}

	p.SetBit(8, 0, Off)
	p.SetBit(0, 2, Off)
	p.SetBit(-1, 0, Off)

	if logged != 3 {
		t.Errorf("logged %d drops, want 3", logged)
	}
	for i, b := range p.Pix {
		if b != 0xFF {
			t.Errorf("Pix[%d] = %#02x, want 0xff (write not dropped)", i, b)
		}
	}
	if got := p.BitAt(8, 0); got != Off {
		t.Errorf("BitAt(8, 0) = %v, want Off", got)
	}
}

func TestFill(t *testing.T) {
	p := New(8, 2)
	p.Fill(Off)
	for i, b := range p.Pix {
		if b != 0x00 {
			t.Errorf("Pix[%d] = %#02x, want 0x00", i, b)
		}
	}
	p.Fill(On)
	for i, b := range p.Pix {
		if b != 0xFF {
			t.Errorf("Pix[%d] = %#02x, want 0xff", i, b)
		}
	}
}

func TestBitModel(t *testing.T) {
	tests := []struct {
		c    color.Color
		want Bit
	}{
		{color.White, On},
		{color.Black, Off},
		{color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, On},
		{color.RGBA{0x20, 0x20, 0x20, 0xFF}, Off},
		{On, On},
		{Off, Off},
	}
	for _, tt := range tests {
		if got := BitModel.Convert(tt.c).(Bit); got != tt.want {
			t.Errorf("Convert(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestSetThroughColor(t *testing.T) {
	p := New(8, 1)
	p.Set(0, 0, color.Black)
	if got := p.BitAt(0, 0); got != Off {
		t.Errorf("BitAt(0, 0) = %v, want Off", got)
	}
	p.Set(0, 0, color.White)
	if got := p.BitAt(0, 0); got != On {
		t.Errorf("BitAt(0, 0) = %v, want On", got)
	}
}
