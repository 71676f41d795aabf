package drivers

import (
	"time"

	"periph.io/x/devices/v3/epd"
)

// IL3895 drives small B/W panels such as the 2.13" 122×250 modules. It
// looks like a cut-down SSD1608: 30-byte waveform tables in a different
// layout, single-byte Y address payloads, and a mandatory LUT load before
// the first refresh.
type IL3895 struct{}

var (
	il3895LUTFull = epd.LUT{
		0x22, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x11, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x1E, 0x1E,
		0x1E, 0x1E,
		0x1E, 0x1E,
		0x1E, 0x1E,
		0x01, 0x00,

		0x00, 0x00, 0x00,
		0x00,
	}

	il3895LUTFast = epd.LUT{
		0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x0F, 0x01,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,

		0x00, 0x00, 0x00,
		0x00,
	}
)

// BlackBit implements epd.Driver.
func (IL3895) BlackBit() bool { return false }

// BusyWait implements epd.Driver.
func (IL3895) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdle(tx)
	return nil
}

// WakeUp implements epd.Driver.
func (d IL3895) WakeUp(tx epd.Interface) error {
	if err := tx.Reset(200*time.Millisecond, 200*time.Millisecond); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	if err := tx.SendCommandData(writeVcomRegister, []byte{0xA8}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setDummyLinePeriod, []byte{0x1A}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setGateLineWidth, []byte{0x08}); err != nil {
		return err
	}
	if err := tx.SendCommandData(borderWaveformControl, []byte{0x63}); err != nil {
		return err
	}
	if err := tx.SendCommandData(dataEntryModeSetting, []byte{0x03}); err != nil {
		return err
	}
	// The chip has no usable OTP waveform; a table load is mandatory.
	return tx.SendCommandData(writeLutRegister, il3895LUTFull)
}

// SetShape implements epd.Driver. Y addresses fit in one byte on this chip.
func (IL3895) SetShape(tx epd.Interface, w, h int) error {
	if err := tx.SendCommandData(driverOutputControl, []byte{byte((h - 1) & 0xFF), 0x00}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setRAMXAddressStartEndPosition, []byte{0x00, byte((w - 1) >> 3)}); err != nil {
		return err
	}
	return tx.SendCommandData(setRAMYAddressStartEndPosition, []byte{0x00, byte((h - 1) & 0xFF)})
}

// UpdateFrame implements epd.Driver.
func (IL3895) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	if err := tx.SendCommandData(setRAMXAddressCounter, []byte{0x00}); err != nil {
		return 0, err
	}
	if err := tx.SendCommandData(setRAMYAddressCounter, []byte{0x00}); err != nil {
		return 0, err
	}
	if err := tx.SendCommandData(writeRAMBW, buf); err != nil {
		return 0, err
	}
	return len(buf), tx.SendCommand(terminateFrameReadWrite)
}

// TurnOnDisplay implements epd.Driver.
func (d IL3895) TurnOnDisplay(tx epd.Interface) error {
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xC4}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	if err := tx.SendCommand(terminateFrameReadWrite); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Sleep implements epd.Driver.
func (IL3895) Sleep(tx epd.Interface) error {
	return tx.SendCommandData(deepSleepMode, []byte{0x01})
}

// UpdateWaveform implements epd.WaveformDriver.
func (IL3895) UpdateWaveform(tx epd.Interface, lut epd.LUT) error {
	return tx.SendCommandData(writeLutRegister, lut)
}

// TurnOnWaveform implements epd.WaveformDriver.
func (d IL3895) TurnOnWaveform(tx epd.Interface) error {
	return d.TurnOnDisplay(tx)
}

// SetupFastWaveform implements epd.FastUpdateDriver.
func (d IL3895) SetupFastWaveform(tx epd.Interface) error {
	return d.UpdateWaveform(tx, il3895LUTFast)
}

// RestoreNormalWaveform implements epd.FastUpdateDriver.
func (d IL3895) RestoreNormalWaveform(tx epd.Interface) error {
	return d.UpdateWaveform(tx, il3895LUTFull)
}

var _ epd.FastUpdateDriver = IL3895{}
