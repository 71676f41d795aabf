package drivers

import (
	"time"

	"periph.io/x/devices/v3/epd"
)

// UC8179 drives large panels up to 800×600, such as the Waveshare 7.5" V2.
// Same conventions as the UC8176, except that the busy state is only
// refreshed after a status read, so BusyWait issues one before polling.
type UC8179 struct{}

// BlackBit implements epd.Driver.
func (UC8179) BlackBit() bool { return true }

// BusyWait implements epd.Driver.
func (UC8179) BusyWait(tx epd.Interface) error {
	if err := tx.SendCommand(getStatus); err != nil {
		return err
	}
	epd.WaitUntilIdleInverted(tx)
	return nil
}

// WakeUp implements epd.Driver.
func (d UC8179) WakeUp(tx epd.Interface) error {
	if err := tx.Reset(10*time.Millisecond, 10*time.Millisecond); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	// VGH=20V, VGL=-20V, VDH=15V, VDL=-15V.
	if err := tx.SendCommandData(powerSetting, []byte{0x07, 0x07, 0x3F, 0x3F}); err != nil {
		return err
	}
	if err := tx.SendCommand(powerOn); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	// KWR mode, LUT from OTP.
	if err := tx.SendCommandData(panelSetting, []byte{0x0F}); err != nil {
		return err
	}
	if err := tx.SendCommandData(dualSPIMode, []byte{0x00}); err != nil {
		return err
	}
	if err := tx.SendCommandData(vcomDataInterval, []byte{0x11, 0x07}); err != nil {
		return err
	}
	return tx.SendCommandData(tconSetting, []byte{0x22})
}

// SetShape implements epd.Driver.
func (UC8179) SetShape(tx epd.Interface, w, h int) error {
	return tx.SendCommandData(resolutionSetting, []byte{
		byte(w >> 8), byte(w), byte(h >> 8), byte(h),
	})
}

// UpdateFrame implements epd.Driver.
func (UC8179) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	return len(buf), tx.SendCommandData(dataStartTransmission1, buf)
}

// TurnOnDisplay implements epd.Driver.
func (d UC8179) TurnOnDisplay(tx epd.Interface) error {
	if err := tx.SendCommand(powerOn); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}
	if err := tx.SendCommand(displayRefresh); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Sleep implements epd.Driver.
func (d UC8179) Sleep(tx epd.Interface) error {
	if err := tx.SendCommandData(powerOff, []byte{0x00}); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Channels implements epd.MultiColorDriver.
func (UC8179) Channels() int { return 2 }

// UpdateChannelFrame implements epd.MultiColorDriver.
func (UC8179) UpdateChannelFrame(tx epd.Interface, channel int, buf []byte) (int, error) {
	switch channel {
	case 0:
		return len(buf), tx.SendCommandData(dataStartTransmission1, buf)
	case 1:
		return len(buf), tx.SendCommandData(dataStartTransmission2, buf)
	}
	return 0, epd.ErrInvalidChannel
}

var _ epd.MultiColorDriver = UC8179{}
