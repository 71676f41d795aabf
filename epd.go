package epd

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/epd/geometry"
	"periph.io/x/devices/v3/epd/image1bit"
)

// errAsleep is returned by operations that need an awake controller.
var errAsleep = errors.New("epd: display is asleep")

// Display is a monochrome display session: one transport, one binary frame
// plane, one chip driver. It owns the init → draw → flush → sleep lifecycle.
//
// A session is single-threaded by contract. Nothing here locks; concurrent
// use is a caller error.
type Display struct {
	tx     Interface
	drv    Driver
	fb     *image1bit.HorizontalMSB
	asleep bool
}

// New returns a session for a w×h panel. The frame plane's polarity follows
// the driver's declared bit convention and starts filled with the light
// color. Call Init before drawing.
func New(tx Interface, drv Driver, w, h int) *Display {
	var fb *image1bit.HorizontalMSB
	if drv.BlackBit() {
		fb = image1bit.NewInverted(w, h)
	} else {
		fb = image1bit.New(w, h)
	}
	return &Display{tx: tx, drv: drv, fb: fb}
}

// Init wakes the controller and programs the RAM window. A failure leaves
// the controller partially initialized; the session is unusable until a
// successful Init or WakeUp.
func (d *Display) Init() error {
	if err := d.drv.WakeUp(d.tx); err != nil {
		return err
	}
	if err := d.drv.SetShape(d.tx, d.fb.W, d.fb.H); err != nil {
		return err
	}
	d.asleep = false
	return nil
}

// SetRotation sets the clockwise rotation applied to subsequent pixel
// writes.
func (d *Display) SetRotation(r geometry.Rotation) {
	d.fb.SetRotation(r)
}

// SetMirroring sets the mirroring applied after rotation.
func (d *Display) SetMirroring(m geometry.Mirror) {
	d.fb.SetMirroring(m)
}

// SetPixel writes one pixel in the frame plane. Out-of-range coordinates
// are dropped. The change is not visible until Flush.
func (d *Display) SetPixel(x, y int, b image1bit.Bit) {
	d.fb.SetBit(x, y, b)
}

// Clear fills the frame plane. The change is not visible until Flush.
func (d *Display) Clear(b image1bit.Bit) {
	d.fb.Fill(b)
}

// Flush transfers the frame plane and activates the display, blocking until
// the refresh completes.
func (d *Display) Flush() error {
	if d.asleep {
		return errAsleep
	}
	if _, err := d.drv.UpdateFrame(d.tx, d.fb.Bytes()); err != nil {
		return err
	}
	return d.drv.TurnOnDisplay(d.tx)
}

// Sleep puts the controller in a low-power state. Use WakeUp to recover.
func (d *Display) Sleep() error {
	if err := d.drv.Sleep(d.tx); err != nil {
		return err
	}
	d.asleep = true
	return nil
}

// WakeUp re-runs the wake-up and window sequence after Sleep.
func (d *Display) WakeUp() error {
	return d.Init()
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the drawable rectangle under the current rotation.
func (d *Display) Bounds() image.Rectangle {
	return d.fb.Bounds()
}

// Draw rasterizes src into the frame plane and flushes. It implements
// display.Drawer for use with an external rasterizer; colors are converted
// through BitModel.
func (d *Display) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	drawSrc(d.fb, dstRect, src, sp)
	return d.Flush()
}

// Halt implements conn.Resource; it puts the controller to sleep.
func (d *Display) Halt() error {
	return d.Sleep()
}

// String implements conn.Resource.
func (d *Display) String() string {
	return fmt.Sprintf("epd.Display{%dx%d}", d.fb.W, d.fb.H)
}

// drawSrc copies src pixel by pixel through a plane's Set, clipped to the
// plane's logical bounds. Every write goes through the geometry map, so
// rotation and mirroring apply uniformly to images and single pixels.
func drawSrc(dst interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}, dstRect image.Rectangle, src image.Image, sp image.Point) {
	dstRect = dstRect.Intersect(dst.Bounds())
	for y := dstRect.Min.Y; y < dstRect.Max.Y; y++ {
		for x := dstRect.Min.X; x < dstRect.Max.X; x++ {
			d := image.Pt(x-dstRect.Min.X, y-dstRect.Min.Y)
			dst.Set(x, y, src.At(sp.X+d.X, sp.Y+d.Y))
		}
	}
}

var _ display.Drawer = &Display{}
