package drivers

import (
	"time"

	"periph.io/x/devices/v3/epd"
)

// PervasiveDisplays drives the small Pervasive Displays iTC panels (up to
// 160×296, including the 4.2" and 4.37" sizes) built on a UC-family
// controller. The chip has no usable OTP waveform, so wake-up loads the
// full register LUT set: one table per source transition plus VCOM.
type PervasiveDisplays struct{}

var (
	pervasiveLUTVcom = epd.LUT{
		0x00, 0x00, 0x00, 0x0A, 0x00, 0x00,
		0x00, 0x01, 0x60, 0x14, 0x14, 0x00,
		0x00, 0x01, 0x00, 0x14, 0x00, 0x00,
		0x00, 0x01, 0x00, 0x13, 0x0A, 0x01,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}

	pervasiveLUTWW = epd.LUT{
		0x40, 0x0A, 0x00, 0x00, 0x00, 0x01,
		0x90, 0x14, 0x14, 0x00, 0x00, 0x01,
		0x10, 0x14, 0x0A, 0x00, 0x00, 0x01,
		0xA0, 0x13, 0x01, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	pervasiveLUTBW = epd.LUT{
		0x40, 0x0A, 0x00, 0x00, 0x00, 0x01,
		0x90, 0x14, 0x14, 0x00, 0x00, 0x01,
		0x00, 0x14, 0x0A, 0x00, 0x00, 0x01,
		0x99, 0x0C, 0x01, 0x03, 0x04, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	pervasiveLUTWB = epd.LUT{
		0x40, 0x0A, 0x00, 0x00, 0x00, 0x01,
		0x90, 0x14, 0x14, 0x00, 0x00, 0x01,
		0x00, 0x14, 0x0A, 0x00, 0x00, 0x01,
		0x99, 0x0B, 0x04, 0x04, 0x01, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	pervasiveLUTBB = epd.LUT{
		0x80, 0x0A, 0x00, 0x00, 0x00, 0x01,
		0x90, 0x14, 0x14, 0x00, 0x00, 0x01,
		0x20, 0x14, 0x0A, 0x00, 0x00, 0x01,
		0x50, 0x13, 0x01, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
)

// BlackBit implements epd.Driver.
func (PervasiveDisplays) BlackBit() bool { return true }

// BusyWait implements epd.Driver; busy is active low.
func (PervasiveDisplays) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdleInverted(tx)
	return nil
}

// WakeUp implements epd.Driver.
func (d PervasiveDisplays) WakeUp(tx epd.Interface) error {
	if err := tx.Reset(10*time.Millisecond, 10*time.Millisecond); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	// Soft reset via panel setting: LUT from register, scan up.
	if err := tx.SendCommandData(panelSetting, []byte{0xBF}); err != nil {
		return err
	}
	time.Sleep(5 * time.Millisecond)

	// 0x19 is 25°C; the waveform timings below assume room temperature.
	if err := tx.SendCommandData(inputTemperature, []byte{0x19}); err != nil {
		return err
	}
	if err := tx.SendCommandData(activeTemperature, []byte{0x02}); err != nil {
		return err
	}

	for _, t := range []struct {
		cmd byte
		lut epd.LUT
	}{
		{lutVcom, pervasiveLUTVcom},
		{lutWhiteToWhite, pervasiveLUTWW},
		{lutBlackToWhite, pervasiveLUTBW},
		{lutWhiteToBlack, pervasiveLUTWB},
		{lutBlackToBlack, pervasiveLUTBB},
		{lutBorder, pervasiveLUTWW},
	} {
		if err := tx.SendCommandData(t.cmd, t.lut); err != nil {
			return err
		}
	}
	return nil
}

// SetShape implements epd.Driver.
func (PervasiveDisplays) SetShape(tx epd.Interface, w, h int) error {
	return tx.SendCommandData(resolutionSetting, []byte{
		byte(w >> 8), byte(w), byte(h >> 8), byte(h),
	})
}

// UpdateFrame implements epd.Driver. The red channel is zeroed alongside.
func (PervasiveDisplays) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	if err := tx.SendCommandData(dataStartTransmission1, buf); err != nil {
		return 0, err
	}
	if err := tx.SendCommand(dataStartTransmission2); err != nil {
		return 0, err
	}
	if _, err := tx.SendDataStream(epd.Repeat(0x00, len(buf))); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// TurnOnDisplay implements epd.Driver.
func (d PervasiveDisplays) TurnOnDisplay(tx epd.Interface) error {
	if err := tx.SendCommandData(powerOn, []byte{0x00}); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}
	if err := tx.SendCommandData(displayRefresh, []byte{0x00}); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Sleep implements epd.Driver.
func (d PervasiveDisplays) Sleep(tx epd.Interface) error {
	if err := tx.SendCommandData(powerOff, []byte{0x00}); err != nil {
		return err
	}
	time.Sleep(5 * time.Millisecond)
	return d.BusyWait(tx)
}

// Channels implements epd.MultiColorDriver.
func (PervasiveDisplays) Channels() int { return 2 }

// UpdateChannelFrame implements epd.MultiColorDriver.
func (PervasiveDisplays) UpdateChannelFrame(tx epd.Interface, channel int, buf []byte) (int, error) {
	switch channel {
	case 0:
		return len(buf), tx.SendCommandData(dataStartTransmission1, buf)
	case 1:
		return len(buf), tx.SendCommandData(dataStartTransmission2, buf)
	}
	return 0, epd.ErrInvalidChannel
}

var _ epd.MultiColorDriver = PervasiveDisplays{}
