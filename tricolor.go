package epd

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/epd/geometry"
	"periph.io/x/devices/v3/epd/image1bit"
)

// TriColor is a logical color on black/white/accent panels. The accent is
// red on most panels, yellow on some; the driver layer does not care.
type TriColor uint8

const (
	White TriColor = iota
	Black
	Red
)

// RGBA implements color.Color.
func (c TriColor) RGBA() (uint32, uint32, uint32, uint32) {
	switch c {
	case Black:
		return 0, 0, 0, 0xFFFF
	case Red:
		return 0xFFFF, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

// String implements fmt.Stringer.
func (c TriColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	}
	return "White"
}

// TriColorModel maps arbitrary colors onto the three panel colors: anything
// reddish becomes the accent color, the rest splits by luminance.
var TriColorModel = color.ModelFunc(convertTriColor)

func convertTriColor(c color.Color) color.Color {
	if t, ok := c.(TriColor); ok {
		return t
	}
	r, g, b, _ := c.RGBA()
	if r >= 0x8000 && g < 0x4000 && b < 0x4000 {
		return Red
	}
	y := (299*r + 587*g + 114*b) / 1000
	if y >= 0x8000 {
		return White
	}
	return Black
}

// channelBits is the two-plane decomposition of a TriColor. This table is
// the whole compositing algorithm: channel 0 is the black/white plane,
// channel 1 the accent plane.
//
//	White → (On,  Off)
//	Black → (Off, Off)
//	Red   → (On,  On)
func channelBits(c TriColor) (bw, accent image1bit.Bit) {
	switch c {
	case Black:
		return image1bit.Off, image1bit.Off
	case Red:
		return image1bit.On, image1bit.On
	}
	return image1bit.On, image1bit.Off
}

// TriColorDisplay is a session for black/white/accent panels. Each pixel
// write lands in two binary planes; a flush transfers channel 0, then
// channel 1, then activates once.
type TriColorDisplay struct {
	tx     Interface
	drv    MultiColorDriver
	bw     *image1bit.HorizontalMSB
	accent *image1bit.HorizontalMSB
	asleep bool
}

// NewTriColor returns a session for a w×h panel. The black/white plane
// starts all light, the accent plane all inactive.
func NewTriColor(tx Interface, drv MultiColorDriver, w, h int) *TriColorDisplay {
	accent := image1bit.New(w, h)
	accent.Fill(image1bit.Off)
	return &TriColorDisplay{
		tx:     tx,
		drv:    drv,
		bw:     image1bit.New(w, h),
		accent: accent,
	}
}

// Init wakes the controller and programs the RAM window.
func (d *TriColorDisplay) Init() error {
	if err := d.drv.WakeUp(d.tx); err != nil {
		return err
	}
	if err := d.drv.SetShape(d.tx, d.bw.W, d.bw.H); err != nil {
		return err
	}
	d.asleep = false
	return nil
}

// SetRotation sets the clockwise rotation applied to subsequent pixel
// writes on both planes.
func (d *TriColorDisplay) SetRotation(r geometry.Rotation) {
	d.bw.SetRotation(r)
	d.accent.SetRotation(r)
}

// SetMirroring sets the mirroring applied after rotation on both planes.
func (d *TriColorDisplay) SetMirroring(m geometry.Mirror) {
	d.bw.SetMirroring(m)
	d.accent.SetMirroring(m)
}

// SetPixel writes one logical color as two binary plane writes at the same
// coordinate.
func (d *TriColorDisplay) SetPixel(x, y int, c TriColor) {
	bw, accent := channelBits(c)
	d.bw.SetBit(x, y, bw)
	d.accent.SetBit(x, y, accent)
}

// Clear fills both planes with the given color.
func (d *TriColorDisplay) Clear(c TriColor) {
	bw, accent := channelBits(c)
	d.bw.Fill(bw)
	d.accent.Fill(accent)
}

// Flush transfers both channel planes in order and activates the display
// once.
func (d *TriColorDisplay) Flush() error {
	if d.asleep {
		return errAsleep
	}
	if _, err := d.drv.UpdateChannelFrame(d.tx, 0, d.bw.Bytes()); err != nil {
		return err
	}
	if _, err := d.drv.UpdateChannelFrame(d.tx, 1, d.accent.Bytes()); err != nil {
		return err
	}
	return d.drv.TurnOnDisplay(d.tx)
}

// Sleep puts the controller in a low-power state.
func (d *TriColorDisplay) Sleep() error {
	if err := d.drv.Sleep(d.tx); err != nil {
		return err
	}
	d.asleep = true
	return nil
}

// WakeUp re-runs the wake-up sequence after Sleep.
func (d *TriColorDisplay) WakeUp() error {
	return d.Init()
}

// ColorModel implements display.Drawer.
func (d *TriColorDisplay) ColorModel() color.Model {
	return TriColorModel
}

// Bounds returns the drawable rectangle under the current rotation.
func (d *TriColorDisplay) Bounds() image.Rectangle {
	return d.bw.Bounds()
}

// Draw rasterizes src through TriColorModel into both planes and flushes.
func (d *TriColorDisplay) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	dstRect = dstRect.Intersect(d.Bounds())
	for y := dstRect.Min.Y; y < dstRect.Max.Y; y++ {
		for x := dstRect.Min.X; x < dstRect.Max.X; x++ {
			c := TriColorModel.Convert(src.At(sp.X+x-dstRect.Min.X, sp.Y+y-dstRect.Min.Y)).(TriColor)
			d.SetPixel(x, y, c)
		}
	}
	return d.Flush()
}

// Halt implements conn.Resource; it puts the controller to sleep.
func (d *TriColorDisplay) Halt() error {
	return d.Sleep()
}

// String implements conn.Resource.
func (d *TriColorDisplay) String() string {
	return fmt.Sprintf("epd.TriColorDisplay{%dx%d}", d.bw.W, d.bw.H)
}

var _ display.Drawer = &TriColorDisplay{}
