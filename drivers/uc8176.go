package drivers

import (
	"time"

	"periph.io/x/devices/v3/epd"
)

// UC8176 drives 400×300 black/white/red panels such as the Waveshare 4.2"
// B module. UltraChip controllers invert both conventions the SSD family
// uses: a set bit renders dark and the busy pin idles high.
type UC8176 struct{}

const uc8176PlaneBytes = 400 * 300 / 8

// BlackBit implements epd.Driver; a set bit renders dark.
func (UC8176) BlackBit() bool { return true }

// BusyWait implements epd.Driver; busy is active low.
func (UC8176) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdleInverted(tx)
	return nil
}

// WakeUp implements epd.Driver. The red channel is zeroed at the end so the
// accent plane starts blank.
func (d UC8176) WakeUp(tx epd.Interface) error {
	if err := tx.Reset(10*time.Millisecond, 10*time.Millisecond); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	// VDS_EN, VDG_EN internal; VGHL +16V/-16V.
	if err := tx.SendCommandData(powerSetting, []byte{0x03, 0x00, 0x2B, 0x2B, 0x13}); err != nil {
		return err
	}
	if err := tx.SendCommandData(boosterSoftStart, []byte{0x17, 0x17, 0x17}); err != nil {
		return err
	}
	if err := tx.SendCommand(powerOn); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	if err := tx.SendCommandData(pllControl, []byte{0x3C}); err != nil {
		return err
	}
	if err := tx.SendCommandData(vcmDCSetting, []byte{0x12}); err != nil {
		return err
	}
	if err := tx.SendCommandData(vcomDataInterval, []byte{0x97}); err != nil {
		return err
	}

	if err := tx.SendCommand(dataStartTransmission2); err != nil {
		return err
	}
	_, err := tx.SendDataStream(epd.Repeat(0x00, uc8176PlaneBytes))
	return err
}

// SetShape implements epd.Driver. Resolution is set in pixels, not the
// SSD-style byte-addressed window.
func (UC8176) SetShape(tx epd.Interface, w, h int) error {
	return tx.SendCommandData(resolutionSetting, []byte{
		byte(w >> 8), byte(w), byte(h >> 8), byte(h),
	})
}

// UpdateFrame implements epd.Driver.
func (UC8176) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	return len(buf), tx.SendCommandData(dataStartTransmission1, buf)
}

// TurnOnDisplay implements epd.Driver.
func (d UC8176) TurnOnDisplay(tx epd.Interface) error {
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

// Sleep implements epd.Driver; turns off the dc/dc converter.
func (d UC8176) Sleep(tx epd.Interface) error {
	if err := tx.SendCommandData(powerOff, []byte{0x00}); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Channels implements epd.MultiColorDriver.
func (UC8176) Channels() int { return 2 }

// UpdateChannelFrame implements epd.MultiColorDriver. Channel 0 is the
// black/white plane (transmission 1), channel 1 the red plane
// (transmission 2).
func (UC8176) UpdateChannelFrame(tx epd.Interface, channel int, buf []byte) (int, error) {
	switch channel {
	case 0:
		return len(buf), tx.SendCommandData(dataStartTransmission1, buf)
	case 1:
		return len(buf), tx.SendCommandData(dataStartTransmission2, buf)
	}
	return 0, epd.ErrInvalidChannel
}

var _ epd.MultiColorDriver = UC8176{}
