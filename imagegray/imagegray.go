// Package imagegray implements the multi-level frame plane used by grayscale
// e-paper drivers.
//
// A plane stores 2, 3, 4 or 8 bits per pixel, packed contiguously most
// significant bit first. Unlike a displayable image the plane is a staging
// buffer: writes go through the rotation and mirroring map, but readback via
// Level walks the raw physical layout, because the bit-plane stacking
// renderer always scans the plane in controller RAM order.
//
// The 3-bit depth is the reason this package does not implement image.Image:
// pixels straddle byte boundaries and no stdlib color type round-trips
// through it losslessly.
package imagegray

import (
	"fmt"

	"periph.io/x/devices/v3/epd/geometry"
)

// Depths supported by the plane. Level values occupy the low bits; 0 is
// black and the maximum level is white.
var validDepths = map[int]bool{2: true, 3: true, 4: true, 8: true}

// Plane is a fixed-size packed grayscale plane.
type Plane struct {
	// Pix holds the packed pixels. Length is BytesPerRow·H.
	Pix []byte
	// BytesPerRow is the packed row stride.
	BytesPerRow int
	// BitsPerPixel is the depth b; levels span [0, 2^b-1].
	BitsPerPixel int
	// W and H are the physical plane dimensions in pixels.
	W, H int
	// Logger, when non nil, receives a line for every dropped out-of-range
	// write.
	Logger func(format string, args ...interface{})

	rotation  geometry.Rotation
	mirroring geometry.Mirror
}

// New returns a plane of the given depth filled with the maximum (white)
// level. Depths other than 2, 3, 4 and 8 bits per pixel are rejected.
func New(w, h, bitsPerPixel int) (*Plane, error) {
	if !validDepths[bitsPerPixel] {
		return nil, fmt.Errorf("imagegray: unsupported depth %d bits per pixel", bitsPerPixel)
	}
	p := &Plane{
		BytesPerRow:  geometry.BytesPerRow(w, bitsPerPixel),
		BitsPerPixel: bitsPerPixel,
		W:            w,
		H:            h,
	}
	p.Pix = make([]byte, p.BytesPerRow*h)
	p.Fill(p.MaxLevel())
	return p, nil
}

// MaxLevel returns the highest representable level, 2^b-1.
func (p *Plane) MaxLevel() uint8 {
	return uint8(1<<p.BitsPerPixel - 1)
}

// Clamp saturates an arbitrary level to the representable range. Values
// above the maximum are not an error; they read back as the maximum.
func (p *Plane) Clamp(level uint8) uint8 {
	if m := p.MaxLevel(); level > m {
		return m
	}
	return level
}

// SetRotation sets the clockwise rotation applied to subsequent writes.
func (p *Plane) SetRotation(r geometry.Rotation) {
	p.rotation = r
}

// SetMirroring sets the mirroring applied after rotation on subsequent
// writes.
func (p *Plane) SetMirroring(m geometry.Mirror) {
	p.mirroring = m
}

// Width and Height report the logical drawable size under the current
// rotation.
func (p *Plane) Width() int {
	w, _ := geometry.LogicalSize(p.W, p.H, p.rotation)
	return w
}

// Height is the logical drawable height.
func (p *Plane) Height() int {
	_, h := geometry.LogicalSize(p.W, p.H, p.rotation)
	return h
}

// Set writes one pixel at the logical coordinate (x, y). The level saturates
// to the plane's maximum; writes outside the rotated bounds are dropped.
func (p *Plane) Set(x, y int, level uint8) {
	px, py, ok := geometry.Transform(x, y, p.W, p.H, p.rotation, p.mirroring)
	if !ok {
		if p.Logger != nil {
			p.Logger("imagegray: dropped write at (%d,%d) outside %dx%d", x, y, p.Width(), p.Height())
		}
		return
	}
	p.store(px, py, p.Clamp(level))
}

// Level reads the stored level at the raw physical coordinate (x, y),
// bypassing rotation and mirroring. The renderer uses it to walk the plane
// in RAM order. Out-of-range coordinates read as 0.
func (p *Plane) Level(x, y int) uint8 {
	if x < 0 || y < 0 || x >= p.W || y >= p.H {
		return 0
	}
	var v uint8
	for i := 0; i < p.BitsPerPixel; i++ {
		bitIndex := x*p.BitsPerPixel + i
		offset := y*p.BytesPerRow + bitIndex/8
		bit := uint(7 - bitIndex%8)
		v <<= 1
		if p.Pix[offset]&(1<<bit) != 0 {
			v |= 1
		}
	}
	return v
}

// store packs level at a physical coordinate. A pixel may straddle a byte
// boundary at 3 bits per pixel, so bits are written individually.
func (p *Plane) store(x, y int, level uint8) {
	for i := 0; i < p.BitsPerPixel; i++ {
		bitIndex := x*p.BitsPerPixel + i
		offset := y*p.BytesPerRow + bitIndex/8
		bit := uint(7 - bitIndex%8)
		if level&(1<<uint(p.BitsPerPixel-1-i)) != 0 {
			p.Pix[offset] |= 1 << bit
		} else {
			p.Pix[offset] &^= 1 << bit
		}
	}
}

// Fill overwrites every pixel with the given level.
func (p *Plane) Fill(level uint8) {
	level = p.Clamp(level)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			p.store(x, y, level)
		}
	}
}

// Bytes returns the packed plane in controller RAM order. The slice aliases
// the plane's storage.
func (p *Plane) Bytes() []byte {
	return p.Pix
}
