package drivers

import (
	"fmt"
	"time"

	"periph.io/x/devices/v3/epd"
)

// SSD1619A drives 400×300 black/white or black/white/red panels. The chip
// takes 70-byte waveform tables and exposes both RAM planes, so it covers
// the tri-color, fast-update and 4-bit grayscale modes.
type SSD1619A struct{}

// 70-byte tables: five 7-byte VS rows, seven 5-byte TP/RP groups.
var (
	// Incremental short pulse for bit-plane stacking at 4 bpp.
	ssd1619aLUTGrayDiv16 = epd.LUT{
		0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x01, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}

	// Single-pulse quick refresh.
	ssd1619aLUTFast = epd.LUT{
		0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x60, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x1F, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}

	// Full-quality table restored after fast-update sessions.
	ssd1619aLUTFull = epd.LUT{
		0xAA, 0x55, 0x40, 0x00, 0x00, 0x00, 0x00,
		0xAA, 0x55, 0x80, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x0F, 0x00, 0x00, 0x00, 0x00,
		0x0F, 0x00, 0x00, 0x00, 0x00,
		0x1F, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}
)

// BlackBit implements epd.Driver.
func (SSD1619A) BlackBit() bool { return false }

// BusyWait implements epd.Driver.
func (SSD1619A) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdle(tx)
	return nil
}

// WakeUp implements epd.Driver.
func (d SSD1619A) WakeUp(tx epd.Interface) error {
	if err := tx.Reset(200*time.Millisecond, 200*time.Millisecond); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	if err := tx.SendCommand(swReset); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	if err := tx.SendCommandData(setAnalogBlockControl, []byte{0x54}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setDigitalBlockControl, []byte{0x3B}); err != nil {
		return err
	}
	// Reduce glitching under ACVCOM.
	if err := tx.SendCommandData(acVcomControl, []byte{0x03, 0x63}); err != nil {
		return err
	}
	if err := tx.SendCommandData(boosterSoftStartControl, []byte{0x8B, 0x9C, 0x96, 0x0F}); err != nil {
		return err
	}
	// MUX 300 gates.
	if err := tx.SendCommandData(driverOutputControl, []byte{0x2B, 0x01, 0x00}); err != nil {
		return err
	}
	if err := tx.SendCommandData(dataEntryModeSetting, []byte{0x03}); err != nil {
		return err
	}
	// Border HiZ.
	if err := tx.SendCommandData(borderWaveformControl, []byte{0x01}); err != nil {
		return err
	}
	if err := tx.SendCommandData(tempSensorSelect, []byte{0x80}); err != nil {
		return err
	}
	// Load temperature and waveform from OTP.
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xB9}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// SetShape implements epd.Driver.
func (SSD1619A) SetShape(tx epd.Interface, w, h int) error {
	if err := ssdSetWindow(tx, w, h); err != nil {
		return err
	}
	return setCursor(tx)
}

// UpdateFrame implements epd.Driver. The red plane is zeroed alongside so a
// stale accent image never bleeds into a monochrome refresh.
func (SSD1619A) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	if err := tx.SendCommandData(writeRAMBW, buf); err != nil {
		return 0, err
	}
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	if err := tx.SendCommand(writeRAMRed); err != nil {
		return 0, err
	}
	if _, err := tx.SendDataStream(epd.Repeat(0x00, len(buf))); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// TurnOnDisplay implements epd.Driver; 0xF7 runs the OTP waveform.
func (d SSD1619A) TurnOnDisplay(tx epd.Interface) error {
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xF7}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Sleep implements epd.Driver. The chip holds busy high until the next
// hardware reset.
func (SSD1619A) Sleep(tx epd.Interface) error {
	return tx.SendCommandData(deepSleepMode, []byte{0x01})
}

// Channels implements epd.MultiColorDriver.
func (SSD1619A) Channels() int { return 2 }

// UpdateChannelFrame implements epd.MultiColorDriver.
func (SSD1619A) UpdateChannelFrame(tx epd.Interface, channel int, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	switch channel {
	case 0:
		return len(buf), tx.SendCommandData(writeRAMBW, buf)
	case 1:
		return len(buf), tx.SendCommandData(writeRAMRed, buf)
	}
	return 0, fmt.Errorf("%w: ssd1619a has no channel %d", epd.ErrInvalidChannel, channel)
}

// UpdateWaveform implements epd.WaveformDriver.
func (SSD1619A) UpdateWaveform(tx epd.Interface, lut epd.LUT) error {
	return tx.SendCommandData(writeLutRegister, lut)
}

// TurnOnWaveform implements epd.WaveformDriver; 0xC5 refreshes with the
// register LUT instead of the OTP one.
func (d SSD1619A) TurnOnWaveform(tx epd.Interface) error {
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xC5}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// GrayBits implements epd.GrayScaleDriver.
func (SSD1619A) GrayBits() []int { return []int{4} }

// SetupGrayScaleWaveform implements epd.GrayScaleDriver.
func (d SSD1619A) SetupGrayScaleWaveform(tx epd.Interface, bits int) error {
	if bits != 4 {
		return fmt.Errorf("%w: ssd1619a has no %d-bit gray waveform", epd.ErrInvalidFormat, bits)
	}
	return d.UpdateWaveform(tx, ssd1619aLUTGrayDiv16)
}

// RestoreNormalWaveform implements both epd.GrayScaleDriver and
// epd.FastUpdateDriver.
func (d SSD1619A) RestoreNormalWaveform(tx epd.Interface) error {
	return d.UpdateWaveform(tx, ssd1619aLUTFull)
}

// SetupFastWaveform implements epd.FastUpdateDriver. The quick table needs
// matching gate and source voltages, dummy line period and gate width.
func (d SSD1619A) SetupFastWaveform(tx epd.Interface) error {
	if err := d.UpdateWaveform(tx, ssd1619aLUTFast); err != nil {
		return err
	}
	if err := tx.SendCommandData(gateDrivingVoltageControl, []byte{0x19}); err != nil {
		return err
	}
	if err := tx.SendCommandData(sourceDrivingVoltageControl, []byte{0x4B, 0xA8, 0x32}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setDummyLinePeriod, []byte{0x1A}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setGateLineWidth, []byte{0x0B}); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

var (
	_ epd.MultiColorDriver = SSD1619A{}
	_ epd.FastUpdateDriver = SSD1619A{}
	_ epd.GrayScaleDriver  = SSD1619A{}
)
