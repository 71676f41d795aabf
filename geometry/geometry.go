// Package geometry maps logical pixel coordinates onto the physical packed
// layout of an e-paper frame plane.
//
// A plane keeps its physical dimensions for its whole lifetime; rotation and
// mirroring only change the logical-to-physical coordinate map applied on
// every pixel write. The map is rotation first, then mirroring, with the
// mirror flip expressed in the un-rotated plane's own width and height.
package geometry

// Rotation is a clockwise rotation of the logical drawing surface.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// String implements fmt.Stringer.
func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	}
	return "invalid"
}

// Mirror flips the rotated coordinate within the physical plane.
type Mirror uint8

const (
	MirrorNone Mirror = iota
	MirrorHorizontal
	MirrorVertical
	// MirrorOrigin flips both axes.
	MirrorOrigin
)

// String implements fmt.Stringer.
func (m Mirror) String() string {
	switch m {
	case MirrorNone:
		return "none"
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorOrigin:
		return "origin"
	}
	return "invalid"
}

// LogicalSize returns the drawable width and height as seen by a caller,
// which is the physical size with the axes swapped for 90° and 270°.
func LogicalSize(w, h int, r Rotation) (int, int) {
	if r == Rotate90 || r == Rotate270 {
		return h, w
	}
	return w, h
}

// Transform maps a logical coordinate to a physical one in a w×h plane.
// ok is false when the logical coordinate is outside the rotated bounds or
// the mapped coordinate falls outside the plane; such writes are dropped by
// the caller.
func Transform(x, y, w, h int, r Rotation, m Mirror) (px, py int, ok bool) {
	lw, lh := LogicalSize(w, h, r)
	if x < 0 || y < 0 || x >= lw || y >= lh {
		return 0, 0, false
	}

	switch r {
	case Rotate90:
		px, py = w-1-y, x
	case Rotate180:
		px, py = w-1-x, h-1-y
	case Rotate270:
		px, py = y, h-1-x
	default:
		px, py = x, y
	}

	switch m {
	case MirrorHorizontal:
		px = w - 1 - px
	case MirrorVertical:
		py = h - 1 - py
	case MirrorOrigin:
		px = w - 1 - px
		py = h - 1 - py
	}

	if px < 0 || py < 0 || px >= w || py >= h {
		return 0, 0, false
	}
	return px, py, true
}

// BytesPerRow returns the packed row stride for a plane of the given width
// and bit depth. Rows are byte aligned; trailing pad bits are unused.
func BytesPerRow(width, bitsPerPixel int) int {
	return (width*bitsPerPixel + 7) / 8
}

// BitOffset returns the byte offset and the position of the most significant
// bit of the pixel at the physical coordinate (x, y). Packing is MSB first:
// bit index x·b+i lands in byte bitIndex/8 at bit 7−bitIndex%8.
func BitOffset(x, y, width, bitsPerPixel int) (byteOffset int, bitInByte uint) {
	bitIndex := x * bitsPerPixel
	byteOffset = y*BytesPerRow(width, bitsPerPixel) + bitIndex/8
	bitInByte = uint(7 - bitIndex%8)
	return
}
