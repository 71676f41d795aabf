package epd

import (
	"fmt"
	"slices"

	"periph.io/x/devices/v3/epd/geometry"
	"periph.io/x/devices/v3/epd/image1bit"
	"periph.io/x/devices/v3/epd/imagegray"
)

// GrayDisplay renders a multi-level plane on hardware that only commits
// binary frames, by bit-plane stacking: 2^b sequential binary exposures
// under a short-pulse waveform, so each pixel's final shade is set by how
// many passes rendered it dark.
type GrayDisplay struct {
	tx     Interface
	drv    GrayScaleDriver
	fb     *imagegray.Plane
	asleep bool

	// scratch is the reusable 1 bit per pixel exposure buffer. Allocated
	// once; the render loop must not allocate.
	scratch []byte
}

// NewGray returns a grayscale session for a w×h panel at the given depth
// (bits per pixel). The depth must be one the driver declares support for.
func NewGray(tx Interface, drv GrayScaleDriver, w, h, bits int) (*GrayDisplay, error) {
	if !slices.Contains(drv.GrayBits(), bits) {
		return nil, fmt.Errorf("%w: %d bits per pixel not supported by %T", ErrInvalidFormat, bits, drv)
	}
	fb, err := imagegray.New(w, h, bits)
	if err != nil {
		return nil, err
	}
	return &GrayDisplay{
		tx:      tx,
		drv:     drv,
		fb:      fb,
		scratch: make([]byte, geometry.BytesPerRow(w, 1)*h),
	}, nil
}

// Init wakes the controller and programs the RAM window.
func (d *GrayDisplay) Init() error {
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
func (d *GrayDisplay) SetRotation(r geometry.Rotation) {
	d.fb.SetRotation(r)
}

// SetMirroring sets the mirroring applied after rotation.
func (d *GrayDisplay) SetMirroring(m geometry.Mirror) {
	d.fb.SetMirroring(m)
}

// SetPixel writes one pixel. Levels above the maximum saturate; 0 is black,
// MaxLevel is white.
func (d *GrayDisplay) SetPixel(x, y int, level uint8) {
	d.fb.Set(x, y, level)
}

// MaxLevel returns the highest level for the session's depth.
func (d *GrayDisplay) MaxLevel() uint8 {
	return d.fb.MaxLevel()
}

// Width and Height report the drawable size under the current rotation.
func (d *GrayDisplay) Width() int {
	return d.fb.Width()
}

// Height is the logical drawable height.
func (d *GrayDisplay) Height() int {
	return d.fb.Height()
}

// Flush renders the plane with the bit-plane stacking sequence.
//
// It loads the incremental waveform, then issues one binary exposure per
// level from MaxLevel down to 0 inclusive. Descending order is a
// correctness requirement: it matches the accumulation direction of the
// incremental waveform. A pass marks a pixel dark when its stored level is
// strictly below the pass level, so a pixel at exactly the pass level stays
// light until the lower passes — a staircase approximation, not rounding.
// The level-0 pass marks nothing dark and acts as the terminal settle pass.
//
// Cost is exactly 2^b full refresh cycles; a plane stuck at the maximum
// level produces 2^b dark frames, the worst case a caller must budget for.
func (d *GrayDisplay) Flush() error {
	if d.asleep {
		return errAsleep
	}
	if err := d.drv.SetupGrayScaleWaveform(d.tx, d.fb.BitsPerPixel); err != nil {
		return err
	}
	for level := int(d.fb.MaxLevel()); level >= 0; level-- {
		d.exposure(uint8(level))
		if _, err := d.drv.UpdateFrame(d.tx, d.scratch); err != nil {
			return err
		}
		if err := d.drv.TurnOnWaveform(d.tx); err != nil {
			return err
		}
	}
	return nil
}

// exposure builds the binary frame for one pass: dark wherever the stored
// level is strictly below the pass level. The plane is walked in raw
// physical order; rotation was already applied at write time.
func (d *GrayDisplay) exposure(level uint8) {
	for i := range d.scratch {
		d.scratch[i] = 0xFF
	}
	for y := 0; y < d.fb.H; y++ {
		for x := 0; x < d.fb.W; x++ {
			if d.fb.Level(x, y) < level {
				offset, bit := geometry.BitOffset(x, y, d.fb.W, 1)
				d.scratch[offset] &^= 1 << bit
			}
		}
	}
}

// Clear restores the full-quality waveform, fills the plane with a flat
// shade and refreshes once, bypassing the multi-pass sequence since every
// pixel is identical.
func (d *GrayDisplay) Clear(b image1bit.Bit) error {
	if d.asleep {
		return errAsleep
	}
	if err := d.drv.RestoreNormalWaveform(d.tx); err != nil {
		return err
	}
	level := uint8(0)
	fill := byte(0x00)
	if b == image1bit.On {
		level = d.fb.MaxLevel()
		fill = 0xFF
	}
	d.fb.Fill(level)
	for i := range d.scratch {
		d.scratch[i] = fill
	}
	if _, err := d.drv.UpdateFrame(d.tx, d.scratch); err != nil {
		return err
	}
	return d.drv.TurnOnDisplay(d.tx)
}

// Sleep puts the controller in a low-power state.
func (d *GrayDisplay) Sleep() error {
	if err := d.drv.Sleep(d.tx); err != nil {
		return err
	}
	d.asleep = true
	return nil
}

// WakeUp re-runs the wake-up sequence after Sleep.
func (d *GrayDisplay) WakeUp() error {
	return d.Init()
}

// String implements fmt.Stringer.
func (d *GrayDisplay) String() string {
	return fmt.Sprintf("epd.GrayDisplay{%dx%d, %dbpp}", d.fb.W, d.fb.H, d.fb.BitsPerPixel)
}
