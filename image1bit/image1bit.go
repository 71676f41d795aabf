// Package image1bit implements the one bit per pixel frame plane used by
// monochrome and two-plane e-paper drivers.
//
// Pixels are packed eight per byte, most significant bit first, rows byte
// aligned. This matches the RAM layout of every supported controller family.
// The plane applies the session's rotation and mirroring on each write, so
// the stored buffer is always in the controller's native orientation.
package image1bit

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/epd/geometry"
)

// Bit is a binary pixel value.
//
// On is the "light" color (the medium's resting white); Off is dark. How a
// bit value maps to a stored 0 or 1 depends on the plane's Inverted flag,
// which exists because the two polarities both occur across chip families.
type Bit bool

const (
	On  Bit = true
	Off Bit = false
)

// RGBA implements color.Color.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// String implements fmt.Stringer.
func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// BitModel converts any color to Bit by luminance threshold.
var BitModel = color.ModelFunc(convertBit)

func convertBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Splits the grayscale range in two.
	y := (299*r + 587*g + 114*b) / 1000
	return Bit(y >= 0x8000)
}

// HorizontalMSB is a fixed-size packed binary plane.
//
// The buffer is allocated once and never resized. All drawing goes through
// Set/SetBit, which apply the current rotation and mirroring; Bytes exposes
// the raw plane for a frame transfer.
type HorizontalMSB struct {
	// Pix holds the packed pixels. Length is BytesPerRow·H.
	Pix []byte
	// BytesPerRow is the packed row stride.
	BytesPerRow int
	// W and H are the physical plane dimensions in pixels.
	W, H int
	// Inverted flips the stored polarity: when set, a stored 0 is light.
	Inverted bool
	// Logger, when non nil, receives a line for every dropped out-of-range
	// write. Diagnostics only; the write itself is always a silent no-op.
	Logger func(format string, args ...interface{})

	rotation  geometry.Rotation
	mirroring geometry.Mirror
}

// New returns a plane filled with the light color.
func New(w, h int) *HorizontalMSB {
	p := &HorizontalMSB{
		BytesPerRow: geometry.BytesPerRow(w, 1),
		W:           w,
		H:           h,
	}
	p.Pix = make([]byte, p.BytesPerRow*h)
	p.Fill(On)
	return p
}

// NewInverted returns a plane with inverted bit polarity (stored 1 is dark),
// filled with the light color.
func NewInverted(w, h int) *HorizontalMSB {
	p := &HorizontalMSB{
		BytesPerRow: geometry.BytesPerRow(w, 1),
		W:           w,
		H:           h,
		Inverted:    true,
	}
	p.Pix = make([]byte, p.BytesPerRow*h)
	p.Fill(On)
	return p
}

// SetRotation sets the clockwise rotation applied to subsequent writes.
func (p *HorizontalMSB) SetRotation(r geometry.Rotation) {
	p.rotation = r
}

// SetMirroring sets the mirroring applied after rotation on subsequent
// writes.
func (p *HorizontalMSB) SetMirroring(m geometry.Mirror) {
	p.mirroring = m
}

// Bounds returns the logical drawable rectangle, reflecting the current
// rotation.
func (p *HorizontalMSB) Bounds() image.Rectangle {
	w, h := geometry.LogicalSize(p.W, p.H, p.rotation)
	return image.Rect(0, 0, w, h)
}

// ColorModel implements image.Image.
func (p *HorizontalMSB) ColorModel() color.Model {
	return BitModel
}

// At returns the pixel at the logical coordinate (x, y), reading back
// through the same rotation and mirroring map used by Set. Out-of-range
// coordinates read as Off.
func (p *HorizontalMSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt is At without the color.Color boxing.
func (p *HorizontalMSB) BitAt(x, y int) Bit {
	px, py, ok := geometry.Transform(x, y, p.W, p.H, p.rotation, p.mirroring)
	if !ok {
		return Off
	}
	offset, bit := geometry.BitOffset(px, py, p.W, 1)
	set := p.Pix[offset]&(1<<bit) != 0
	if p.Inverted {
		return Bit(!set)
	}
	return Bit(set)
}

// Set implements draw.Image. The color is converted through BitModel.
func (p *HorizontalMSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit writes one pixel at the logical coordinate (x, y). Writes outside
// the rotated bounds are dropped.
func (p *HorizontalMSB) SetBit(x, y int, b Bit) {
	px, py, ok := geometry.Transform(x, y, p.W, p.H, p.rotation, p.mirroring)
	if !ok {
		if p.Logger != nil {
			p.Logger("image1bit: dropped write at (%d,%d) outside %v", x, y, p.Bounds())
		}
		return
	}
	offset, bit := geometry.BitOffset(px, py, p.W, 1)
	if bool(b) != p.Inverted {
		p.Pix[offset] |= 1 << bit
	} else {
		p.Pix[offset] &^= 1 << bit
	}
}

// Fill overwrites every pixel with b, including row padding bits.
func (p *HorizontalMSB) Fill(b Bit) {
	v := byte(0x00)
	if bool(b) != p.Inverted {
		v = 0xFF
	}
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// Bytes returns the packed plane in controller RAM order. The slice aliases
// the plane's storage; it is valid until the next write.
func (p *HorizontalMSB) Bytes() []byte {
	return p.Pix
}

var _ image.Image = &HorizontalMSB{}
