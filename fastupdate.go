package epd

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/epd/geometry"
	"periph.io/x/devices/v3/epd/image1bit"
)

// FastUpdateDisplay is a monochrome session that keeps the chip's quick
// low-quality waveform loaded for interactive refresh.
//
// Fast refreshes accumulate ghosting. The session does not impose a cadence;
// callers decide when to pay for a FlushFull, which runs one full-quality
// refresh and reloads the fast waveform.
type FastUpdateDisplay struct {
	tx     Interface
	drv    FastUpdateDriver
	fb     *image1bit.HorizontalMSB
	asleep bool
}

// NewFastUpdate returns a fast-update session for a w×h panel.
func NewFastUpdate(tx Interface, drv FastUpdateDriver, w, h int) *FastUpdateDisplay {
	var fb *image1bit.HorizontalMSB
	if drv.BlackBit() {
		fb = image1bit.NewInverted(w, h)
	} else {
		fb = image1bit.New(w, h)
	}
	return &FastUpdateDisplay{tx: tx, drv: drv, fb: fb}
}

// Init wakes the controller, programs the RAM window and loads the fast
// waveform.
func (d *FastUpdateDisplay) Init() error {
	if err := d.drv.WakeUp(d.tx); err != nil {
		return err
	}
	if err := d.drv.SetShape(d.tx, d.fb.W, d.fb.H); err != nil {
		return err
	}
	if err := d.drv.SetupFastWaveform(d.tx); err != nil {
		return err
	}
	d.asleep = false
	return nil
}

// SetRotation sets the clockwise rotation applied to subsequent pixel
// writes.
func (d *FastUpdateDisplay) SetRotation(r geometry.Rotation) {
	d.fb.SetRotation(r)
}

// SetMirroring sets the mirroring applied after rotation.
func (d *FastUpdateDisplay) SetMirroring(m geometry.Mirror) {
	d.fb.SetMirroring(m)
}

// SetPixel writes one pixel in the frame plane.
func (d *FastUpdateDisplay) SetPixel(x, y int, b image1bit.Bit) {
	d.fb.SetBit(x, y, b)
}

// Clear fills the frame plane.
func (d *FastUpdateDisplay) Clear(b image1bit.Bit) {
	d.fb.Fill(b)
}

// Flush transfers the frame and refreshes with the fast waveform.
func (d *FastUpdateDisplay) Flush() error {
	if d.asleep {
		return errAsleep
	}
	if _, err := d.drv.UpdateFrame(d.tx, d.fb.Bytes()); err != nil {
		return err
	}
	return d.drv.TurnOnWaveform(d.tx)
}

// FlushFull runs one full-quality refresh to clear accumulated ghosting,
// then reloads the fast waveform.
func (d *FastUpdateDisplay) FlushFull() error {
	if d.asleep {
		return errAsleep
	}
	if err := d.drv.RestoreNormalWaveform(d.tx); err != nil {
		return err
	}
	if _, err := d.drv.UpdateFrame(d.tx, d.fb.Bytes()); err != nil {
		return err
	}
	if err := d.drv.TurnOnWaveform(d.tx); err != nil {
		return err
	}
	return d.drv.SetupFastWaveform(d.tx)
}

// Sleep puts the controller in a low-power state.
func (d *FastUpdateDisplay) Sleep() error {
	if err := d.drv.Sleep(d.tx); err != nil {
		return err
	}
	d.asleep = true
	return nil
}

// WakeUp re-runs the wake-up sequence after Sleep.
func (d *FastUpdateDisplay) WakeUp() error {
	return d.Init()
}

// ColorModel implements display.Drawer.
func (d *FastUpdateDisplay) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the drawable rectangle under the current rotation.
func (d *FastUpdateDisplay) Bounds() image.Rectangle {
	return d.fb.Bounds()
}

// Draw rasterizes src into the frame plane and does a fast flush.
func (d *FastUpdateDisplay) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	drawSrc(d.fb, dstRect, src, sp)
	return d.Flush()
}

// Halt implements conn.Resource; it puts the controller to sleep.
func (d *FastUpdateDisplay) Halt() error {
	return d.Sleep()
}

// String implements conn.Resource.
func (d *FastUpdateDisplay) String() string {
	return fmt.Sprintf("epd.FastUpdateDisplay{%dx%d}", d.fb.W, d.fb.H)
}

var _ display.Drawer = &FastUpdateDisplay{}
