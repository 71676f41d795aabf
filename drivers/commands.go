// Package drivers implements the per-chip command sequences for the
// supported e-paper controller families.
//
// Each driver is a stateless value implementing the capability interfaces
// from the parent package that its chip actually supports. The waveform
// tables are binary fixtures reproduced from the vendor datasheets and
// reference code; this package never interprets their contents.
package drivers

import (
	"periph.io/x/devices/v3/epd"
)

// SSD-family register opcodes (SSD1608, SSD1619A, SSD1675B, SSD1680,
// IL3895).
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	boosterSoftStartControl        byte = 0x0C
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	acVcomControl                  byte = 0x2B
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	setDummyLinePeriod             byte = 0x3A
	setGateLineWidth               byte = 0x3B
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
	nop                            byte = 0x7F
	setAnalogBlockControl          byte = 0x74
	setDigitalBlockControl         byte = 0x7E
	terminateFrameReadWrite        byte = 0xFF
)

// UC-family register opcodes (UC8176, UC8179, Pervasive Displays iTC).
const (
	panelSetting           byte = 0x00
	powerSetting           byte = 0x01
	powerOff               byte = 0x02
	powerOn                byte = 0x04
	boosterSoftStart       byte = 0x06
	dataStartTransmission1 byte = 0x10
	displayRefresh         byte = 0x12
	dataStartTransmission2 byte = 0x13
	dualSPIMode            byte = 0x15
	lutVcom                byte = 0x20
	lutWhiteToWhite        byte = 0x21
	lutBlackToWhite        byte = 0x22
	lutWhiteToBlack        byte = 0x23
	lutBlackToBlack        byte = 0x24
	lutBorder              byte = 0x25
	pllControl             byte = 0x30
	vcomDataInterval       byte = 0x50
	tconSetting            byte = 0x60
	resolutionSetting      byte = 0x61
	getStatus              byte = 0x71
	vcmDCSetting           byte = 0x82
	activeTemperature      byte = 0xE0
	inputTemperature       byte = 0xE5
)

// setCursor resets the SSD-family RAM address counters to the window
// origin.
func setCursor(tx epd.Interface) error {
	if err := tx.SendCommandData(setRAMXAddressCounter, []byte{0x00}); err != nil {
		return err
	}
	return tx.SendCommandData(setRAMYAddressCounter, []byte{0x00, 0x00})
}

// ssdSetWindow programs the SSD-family RAM window to w×h pixels. The X axis
// is addressed in bytes, so the last three bits of w are ignored by the
// chip.
func ssdSetWindow(tx epd.Interface, w, h int) error {
	if err := tx.SendCommandData(setRAMXAddressStartEndPosition, []byte{0x00, byte((w - 1) >> 3)}); err != nil {
		return err
	}
	return tx.SendCommandData(setRAMYAddressStartEndPosition, []byte{
		0x00, 0x00, byte((h - 1) & 0xFF), byte((h - 1) >> 8),
	})
}
