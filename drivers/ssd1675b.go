package drivers

import (
	"fmt"
	"time"

	"periph.io/x/devices/v3/epd"
)

// SSD1675B drives 160×296 black/white/red panels such as the 2.13" and
// 2.66" Waveshare modules. Command set is close to the SSD1619A but the
// waveform register takes 105-byte tables.
type SSD1675B struct{}

const ssd1675bRedPlaneBytes = 160 * 296 / 8

// ssd1675bLUTFast drives both the quick refresh and the restore path; the
// chip falls back to its OTP table for full-quality updates.
var ssd1675bLUTFast = epd.LUT{
	0x2A, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x05, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x2A, 0x15, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x05, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x00, 0x02, 0x03, 0x0A, 0x00, 0x02, 0x06, 0x0A, 0x05, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x22, 0x22, 0x22, 0x22, 0x22,
}

// BlackBit implements epd.Driver.
func (SSD1675B) BlackBit() bool { return false }

// BusyWait implements epd.Driver.
func (SSD1675B) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdle(tx)
	return nil
}

// WakeUp implements epd.Driver. The red plane is zeroed at the end so the
// accent channel starts blank even when the caller never writes it.
func (d SSD1675B) WakeUp(tx epd.Interface) error {
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
	if err := tx.SendCommandData(acVcomControl, []byte{0x03, 0x63}); err != nil {
		return err
	}
	if err := tx.SendCommandData(boosterSoftStartControl, []byte{0x8B, 0x9C, 0x96, 0x0F}); err != nil {
		return err
	}
	if err := tx.SendCommandData(driverOutputControl, []byte{0x2B, 0x01, 0x00}); err != nil {
		return err
	}
	if err := tx.SendCommandData(dataEntryModeSetting, []byte{0x03}); err != nil {
		return err
	}
	if err := tx.SendCommandData(borderWaveformControl, []byte{0x01}); err != nil {
		return err
	}
	if err := tx.SendCommandData(tempSensorSelect, []byte{0x80}); err != nil {
		return err
	}
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xB9}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	if err := d.BusyWait(tx); err != nil {
		return err
	}

	if err := setCursor(tx); err != nil {
		return err
	}
	if err := tx.SendCommand(writeRAMRed); err != nil {
		return err
	}
	_, err := tx.SendDataStream(epd.Repeat(0x00, ssd1675bRedPlaneBytes))
	return err
}

// SetShape implements epd.Driver.
func (SSD1675B) SetShape(tx epd.Interface, w, h int) error {
	return ssdSetWindow(tx, w, h)
}

// UpdateFrame implements epd.Driver.
func (SSD1675B) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	return len(buf), tx.SendCommandData(writeRAMBW, buf)
}

// TurnOnDisplay implements epd.Driver.
func (d SSD1675B) TurnOnDisplay(tx epd.Interface) error {
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xF7}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Sleep implements epd.Driver.
func (SSD1675B) Sleep(tx epd.Interface) error {
	return tx.SendCommandData(deepSleepMode, []byte{0x01})
}

// Channels implements epd.MultiColorDriver.
func (SSD1675B) Channels() int { return 2 }

// UpdateChannelFrame implements epd.MultiColorDriver.
func (SSD1675B) UpdateChannelFrame(tx epd.Interface, channel int, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	switch channel {
	case 0:
		return len(buf), tx.SendCommandData(writeRAMBW, buf)
	case 1:
		return len(buf), tx.SendCommandData(writeRAMRed, buf)
	}
	return 0, fmt.Errorf("%w: ssd1675b has no channel %d", epd.ErrInvalidChannel, channel)
}

// UpdateWaveform implements epd.WaveformDriver.
func (SSD1675B) UpdateWaveform(tx epd.Interface, lut epd.LUT) error {
	return tx.SendCommandData(writeLutRegister, lut)
}

// TurnOnWaveform implements epd.WaveformDriver.
func (d SSD1675B) TurnOnWaveform(tx epd.Interface) error {
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xC5}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// SetupFastWaveform implements epd.FastUpdateDriver.
func (d SSD1675B) SetupFastWaveform(tx epd.Interface) error {
	return d.UpdateWaveform(tx, ssd1675bLUTFast)
}

// RestoreNormalWaveform implements epd.FastUpdateDriver.
func (d SSD1675B) RestoreNormalWaveform(tx epd.Interface) error {
	return d.UpdateWaveform(tx, ssd1675bLUTFast)
}

var (
	_ epd.MultiColorDriver = SSD1675B{}
	_ epd.FastUpdateDriver = SSD1675B{}
)
