package geometry

import (
	"fmt"
	"testing"
)

func TestLogicalSize(t *testing.T) {
	tests := []struct {
		r            Rotation
		wantW, wantH int
	}{
		{Rotate0, 128, 296},
		{Rotate90, 296, 128},
		{Rotate180, 128, 296},
		{Rotate270, 296, 128},
	}
	for _, tt := range tests {
		w, h := LogicalSize(128, 296, tt.r)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("LogicalSize(128, 296, %v) = %dx%d, want %dx%d", tt.r, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestTransformRotation(t *testing.T) {
	// 4x3 physical plane.
	const w, h = 4, 3
	tests := []struct {
		r      Rotation
		x, y   int
		px, py int
	}{
		{Rotate0, 0, 0, 0, 0},
		{Rotate0, 3, 2, 3, 2},

		// 90° CW: logical origin lands in the physical top-right corner.
		{Rotate90, 0, 0, 3, 0},
		{Rotate90, 2, 0, 3, 2},
		{Rotate90, 0, 3, 0, 0},

		{Rotate180, 0, 0, 3, 2},
		{Rotate180, 3, 2, 0, 0},

		// 270° CW: logical origin lands in the physical bottom-left corner.
		{Rotate270, 0, 0, 0, 2},
		{Rotate270, 2, 0, 0, 0},
		{Rotate270, 0, 3, 3, 2},
	}
	for _, tt := range tests {
		px, py, ok := Transform(tt.x, tt.y, w, h, tt.r, MirrorNone)
		if !ok {
			t.Errorf("Transform(%d, %d, %v) not ok", tt.x, tt.y, tt.r)
			continue
		}
		if px != tt.px || py != tt.py {
			t.Errorf("Transform(%d, %d, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, tt.r, px, py, tt.px, tt.py)
		}
	}
}

func TestTransformMirror(t *testing.T) {
	// Mirroring is applied after rotation, in the physical plane's own axes.
	const w, h = 4, 3
	tests := []struct {
		m      Mirror
		x, y   int
		px, py int
	}{
		{MirrorNone, 1, 2, 1, 2},
		{MirrorHorizontal, 1, 2, 2, 2},
		{MirrorVertical, 1, 2, 1, 0},
		{MirrorOrigin, 1, 2, 2, 0},
	}
	for _, tt := range tests {
		px, py, ok := Transform(tt.x, tt.y, w, h, Rotate0, tt.m)
		if !ok {
			t.Errorf("Transform(%d, %d, %v) not ok", tt.x, tt.y, tt.m)
			continue
		}
		if px != tt.px || py != tt.py {
			t.Errorf("Transform(%d, %d, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, tt.m, px, py, tt.px, tt.py)
		}
	}
}

func TestTransformBijective(t *testing.T) {
	// Every rotation and mirroring combination must map the logical plane
	// one-to-one onto the physical plane.
	const w, h = 5, 7
	for r := Rotate0; r <= Rotate270; r++ {
		for m := MirrorNone; m <= MirrorOrigin; m++ {
			t.Run(fmt.Sprintf("%v/%v", r, m), func(t *testing.T) {
				lw, lh := LogicalSize(w, h, r)
				seen := make(map[[2]int][2]int)
				for y := 0; y < lh; y++ {
					for x := 0; x < lw; x++ {
						px, py, ok := Transform(x, y, w, h, r, m)
						if !ok {
							t.Fatalf("Transform(%d, %d) not ok", x, y)
						}
						if px < 0 || py < 0 || px >= w || py >= h {
							t.Fatalf("Transform(%d, %d) = (%d, %d) outside %dx%d", x, y, px, py, w, h)
						}
						if prev, dup := seen[[2]int{px, py}]; dup {
							t.Fatalf("(%d, %d) and %v both map to (%d, %d)", x, y, prev, px, py)
						}
						seen[[2]int{px, py}] = [2]int{x, y}
					}
				}
				if len(seen) != w*h {
					t.Fatalf("mapped %d pixels, want %d", len(seen), w*h)
				}
			})
		}
	}
}

func TestTransformOutOfRange(t *testing.T) {
	tests := []struct {
		x, y int
		r    Rotation
	}{
		{-1, 0, Rotate0},
		{0, -1, Rotate0},
		{4, 0, Rotate0},
		{0, 3, Rotate0},
		// 90° swaps the bounds: x now spans the physical height.
		{3, 0, Rotate90},
		{0, 4, Rotate90},
	}
	for _, tt := range tests {
		if _, _, ok := Transform(tt.x, tt.y, 4, 3, tt.r, MirrorNone); ok {
			t.Errorf("Transform(%d, %d, %v) = ok, want dropped", tt.x, tt.y, tt.r)
		}
	}
}

func TestBytesPerRow(t *testing.T) {
	tests := []struct {
		width, bits, want int
	}{
		{128, 1, 16},
		{122, 1, 16}, // rounds up to byte boundary
		{8, 2, 2},
		{5, 3, 2},
		{400, 1, 50},
		{240, 4, 120},
		{3, 8, 3},
	}
	for _, tt := range tests {
		if got := BytesPerRow(tt.width, tt.bits); got != tt.want {
			t.Errorf("BytesPerRow(%d, %d) = %d, want %d", tt.width, tt.bits, got, tt.want)
		}
	}
}

func TestBitOffset(t *testing.T) {
	tests := []struct {
		x, y, width, bits int
		wantOffset        int
		wantBit           uint
	}{
		// 1bpp: pixel 0 is the MSB of byte 0.
		{0, 0, 128, 1, 0, 7},
		{7, 0, 128, 1, 0, 0},
		{8, 0, 128, 1, 1, 7},
		{0, 1, 128, 1, 16, 7},
		{127, 295, 128, 1, 295*16 + 15, 0},

		// 2bpp: four pixels per byte.
		{0, 0, 8, 2, 0, 7},
		{3, 0, 8, 2, 0, 1},
		{4, 0, 8, 2, 1, 7},

		// 3bpp: pixel 2 starts at bit index 6 and straddles into byte 1.
		{2, 0, 5, 3, 0, 1},

		// 4bpp.
		{1, 0, 240, 4, 0, 3},
		{2, 0, 240, 4, 1, 7},
	}
	for _, tt := range tests {
		offset, bit := BitOffset(tt.x, tt.y, tt.width, tt.bits)
		if offset != tt.wantOffset || bit != tt.wantBit {
			t.Errorf("BitOffset(%d, %d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.x, tt.y, tt.width, tt.bits, offset, bit, tt.wantOffset, tt.wantBit)
		}
	}
}
