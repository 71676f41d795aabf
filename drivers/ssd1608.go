package drivers

import (
	"fmt"
	"time"

	"periph.io/x/devices/v3/epd"
)

// SSD1608 drives the B/W 240×320 panels built on the SSD1608 controller.
// The chip takes 30-byte waveform tables and supports incremental exposure,
// which makes it the main grayscale workhorse: 2, 3 and 4 bit depths all
// have tuned tables.
type SSD1608 struct{}

// 30-byte tables. The first 20 bytes are the VS section, then TP/RP, then
// the VSH/VSL and dummy bits.
var (
	ssd1608LUTFull = epd.LUT{
		0x50, 0xAA, 0x55, 0xAA, 0x11,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0xFF, 0xFF, 0x1F, 0x00,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
	}

	ssd1608LUTPartial = epd.LUT{
		0x99,
		0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0x0A, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
	}

	ssd1608LUTFast = epd.LUT{
		0x99,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0x0A, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
	}

	// Incremental exposure tables for bit-plane stacking, one per depth.
	// The single short pulse accumulates; lower depths use a longer pulse.
	ssd1608LUTGrayDiv4 = epd.LUT{
		0x11,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0x03, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
	}

	ssd1608LUTGrayDiv16 = epd.LUT{
		0x11,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,

		0x00, 0x00,
	}
)

// BlackBit implements epd.Driver; a cleared bit renders dark.
func (SSD1608) BlackBit() bool { return false }

// BusyWait implements epd.Driver; busy is active high.
func (SSD1608) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdle(tx)
	return nil
}

// WakeUp implements epd.Driver.
func (d SSD1608) WakeUp(tx epd.Interface) error {
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

	// Booster soft start for phases 1-3.
	if err := tx.SendCommandData(boosterSoftStartControl, []byte{0xD7, 0xD6, 0x9D}); err != nil {
		return err
	}
	if err := tx.SendCommandData(writeVcomRegister, []byte{0x7C}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setDummyLinePeriod, []byte{0x1A}); err != nil {
		return err
	}
	if err := tx.SendCommandData(setGateLineWidth, []byte{0x08}); err != nil {
		return err
	}
	// Border: HiZ after the waveform, VSL during.
	if err := tx.SendCommandData(borderWaveformControl, []byte{0xE0}); err != nil {
		return err
	}
	// Y increment, X increment, counter along X.
	if err := tx.SendCommandData(dataEntryModeSetting, []byte{0x03}); err != nil {
		return err
	}
	return tx.SendCommandData(writeLutRegister, ssd1608LUTPartial)
}

// SetShape implements epd.Driver.
func (SSD1608) SetShape(tx epd.Interface, w, h int) error {
	if err := tx.SendCommandData(driverOutputControl, []byte{
		byte((h - 1) & 0xFF), byte((h - 1) >> 8), 0x00,
	}); err != nil {
		return err
	}
	return ssdSetWindow(tx, w, h)
}

// UpdateFrame implements epd.Driver.
func (SSD1608) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	if err := tx.SendCommandData(writeRAMBW, buf); err != nil {
		return 0, err
	}
	return len(buf), tx.SendCommand(terminateFrameReadWrite)
}

// TurnOnDisplay implements epd.Driver.
func (d SSD1608) TurnOnDisplay(tx epd.Interface) error {
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
func (SSD1608) Sleep(tx epd.Interface) error {
	return tx.SendCommandData(deepSleepMode, []byte{0x01})
}

// UpdateWaveform implements epd.WaveformDriver.
func (SSD1608) UpdateWaveform(tx epd.Interface, lut epd.LUT) error {
	return tx.SendCommandData(writeLutRegister, lut)
}

// TurnOnWaveform implements epd.WaveformDriver; the chip uses the same
// update sequence whether the LUT came from OTP or the register.
func (d SSD1608) TurnOnWaveform(tx epd.Interface) error {
	return d.TurnOnDisplay(tx)
}

// GrayBits implements epd.GrayScaleDriver.
func (SSD1608) GrayBits() []int { return []int{2, 3, 4} }

// SetupGrayScaleWaveform implements epd.GrayScaleDriver. Deeper planes need
// weaker pulses, so the higher depths also lower the source voltage and the
// gate line width.
func (d SSD1608) SetupGrayScaleWaveform(tx epd.Interface, bits int) error {
	switch bits {
	case 2:
		return d.UpdateWaveform(tx, ssd1608LUTGrayDiv4)
	case 3:
		if err := tx.SendCommandData(sourceDrivingVoltageControl, []byte{0x00}); err != nil {
			return err
		}
		return d.UpdateWaveform(tx, ssd1608LUTGrayDiv16)
	case 4:
		// A higher VCOM separates the gray levels better here.
		if err := tx.SendCommandData(writeVcomRegister, []byte{0xB8}); err != nil {
			return err
		}
		if err := tx.SendCommandData(sourceDrivingVoltageControl, []byte{0x00}); err != nil {
			return err
		}
		if err := tx.SendCommandData(setGateLineWidth, []byte{0x00}); err != nil {
			return err
		}
		return d.UpdateWaveform(tx, ssd1608LUTGrayDiv16)
	}
	return fmt.Errorf("%w: ssd1608 has no %d-bit gray waveform", epd.ErrInvalidFormat, bits)
}

// RestoreNormalWaveform implements epd.GrayScaleDriver.
func (d SSD1608) RestoreNormalWaveform(tx epd.Interface) error {
	return d.UpdateWaveform(tx, ssd1608LUTFull)
}

// SSD1608Fast is SSD1608 brought up with the quick low-quality waveform
// already loaded, for callers that never need the full-quality table.
type SSD1608Fast struct {
	SSD1608
}

// WakeUp implements epd.Driver.
func (d SSD1608Fast) WakeUp(tx epd.Interface) error {
	if err := d.SSD1608.WakeUp(tx); err != nil {
		return err
	}
	return tx.SendCommandData(writeLutRegister, ssd1608LUTFast)
}

var (
	_ epd.GrayScaleDriver = SSD1608{}
	_ epd.Driver          = SSD1608Fast{}
)
