package drivers

import (
	"fmt"
	"time"

	"periph.io/x/devices/v3/epd"
)

// SSD1680 drives 176×296 black/white/red panels (GDEY029Z94 and friends).
// The chip has no exposed waveform register worth using; refreshes always
// run the OTP table.
type SSD1680 struct{}

// BlackBit implements epd.Driver.
func (SSD1680) BlackBit() bool { return false }

// BusyWait implements epd.Driver.
func (SSD1680) BusyWait(tx epd.Interface) error {
	epd.WaitUntilIdle(tx)
	return nil
}

// WakeUp implements epd.Driver.
func (d SSD1680) WakeUp(tx epd.Interface) error {
	if err := tx.Reset(10*time.Millisecond, 10*time.Millisecond); err != nil {
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

	if err := tx.SendCommandData(driverOutputControl, []byte{0x27, 0x01, 0x00}); err != nil {
		return err
	}
	if err := tx.SendCommandData(dataEntryModeSetting, []byte{0x03}); err != nil {
		return err
	}
	// Red plane inverted on readback.
	return tx.SendCommandData(displayUpdateControl1, []byte{0x00, 0x80})
}

// SetShape implements epd.Driver.
func (SSD1680) SetShape(tx epd.Interface, w, h int) error {
	return ssdSetWindow(tx, w, h)
}

// UpdateFrame implements epd.Driver. The red plane is zeroed alongside, and
// each RAM write is terminated by a NOP to release the bus.
func (SSD1680) UpdateFrame(tx epd.Interface, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	if err := tx.SendCommandData(writeRAMBW, buf); err != nil {
		return 0, err
	}
	if err := tx.SendCommand(nop); err != nil {
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
	return len(buf), tx.SendCommand(nop)
}

// TurnOnDisplay implements epd.Driver.
func (d SSD1680) TurnOnDisplay(tx epd.Interface) error {
	if err := tx.SendCommandData(displayUpdateControl2, []byte{0xF7}); err != nil {
		return err
	}
	if err := tx.SendCommand(masterActivation); err != nil {
		return err
	}
	return d.BusyWait(tx)
}

// Sleep implements epd.Driver. The delay gives the charge pump time to
// discharge before the caller cuts power.
func (SSD1680) Sleep(tx epd.Interface) error {
	if err := tx.SendCommandData(deepSleepMode, []byte{0x01}); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

// Channels implements epd.MultiColorDriver.
func (SSD1680) Channels() int { return 2 }

// UpdateChannelFrame implements epd.MultiColorDriver.
func (SSD1680) UpdateChannelFrame(tx epd.Interface, channel int, buf []byte) (int, error) {
	if err := setCursor(tx); err != nil {
		return 0, err
	}
	switch channel {
	case 0:
		return len(buf), tx.SendCommandData(writeRAMBW, buf)
	case 1:
		return len(buf), tx.SendCommandData(writeRAMRed, buf)
	}
	return 0, fmt.Errorf("%w: ssd1680 has no channel %d", epd.ErrInvalidChannel, channel)
}

var _ epd.MultiColorDriver = SSD1680{}
