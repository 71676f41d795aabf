// Package epd controls bistable e-paper displays via SPI.
//
// The package splits responsibilities in two layers. Display sessions own a
// framebuffer, geometry (rotation and mirroring) and the flush policy; chip
// drivers own the command sequences for one controller family. Sessions are
// generic over the Driver capability interfaces, so one session type covers
// every chip that supports its mode.
//
// # Display Modes
//
// Four session types cover the supported panel modes:
//
//   - Display: plain black/white, one full-quality refresh per Flush.
//   - FastUpdateDisplay: black/white with the chip's quick waveform kept
//     loaded for interactive refresh, plus FlushFull to clear ghosting.
//   - TriColorDisplay: black/white/accent panels (red or yellow), two RAM
//     planes transferred per Flush.
//   - GrayDisplay: multi-level shades on binary hardware by bit-plane
//     stacking, 2^b exposures per Flush.
//
// # Hardware Connection
//
// Connect the panel module to your system via SPI:
//
//	Module Pin → System Pin
//	GND        → GND
//	VCC        → 3.3V
//	CLK        → SPI Clock (SCLK)
//	DIN        → SPI Data (MOSI)
//	DC         → GPIO (any available pin)
//	CS         → SPI Chip Select (or a GPIO for software chip select)
//	RST        → GPIO (any available pin)
//	BUSY       → GPIO (any available pin)
//
// # Basic Usage
//
// Example of driving a 4.2" black/white/red panel:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/epd"
//		"periph.io/x/devices/v3/epd/drivers"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Control pins
//		dc := gpioreg.ByName("GPIO25")
//		rst := gpioreg.ByName("GPIO17")
//		busy := gpioreg.ByName("GPIO24")
//
//		// Transport and session
//		tx, _ := epd.NewSPI(spiBus, dc, nil, rst, busy)
//		dev := epd.NewTriColor(tx, drivers.UC8176{}, 400, 300)
//		dev.Init()
//		defer dev.Halt()
//
//		// Draw
//		dev.Clear(epd.White)
//		for x := 0; x < 100; x++ {
//			dev.SetPixel(x, x, epd.Red)
//		}
//		dev.Flush()
//	}
//
// # Rotation and Mirroring
//
// Sessions accept pixel writes in logical coordinates. SetRotation selects a
// clockwise rotation (90° and 270° swap the drawable width and height) and
// SetMirroring an axis flip applied after rotation, for panels mounted
// behind mirrors or with flipped ribbon cables:
//
//	dev.SetRotation(geometry.Rotate90)
//	dev.SetMirroring(geometry.MirrorHorizontal)
//
// Both only affect writes made after the call; pixels already in the
// framebuffer stay where they landed.
//
// # Grayscale
//
// E-paper controllers refresh from a binary plane, so shades are produced
// temporally: GrayDisplay runs one exposure per level under a short-pulse
// waveform and lets the pigment accumulate. A flush costs 2^b refresh
// cycles, so 4-bit grayscale is roughly sixteen times slower than a binary
// update:
//
//	gd, _ := epd.NewGray(tx, drivers.SSD1608{}, 240, 320, 4)
//	gd.Init()
//	gd.SetPixel(10, 10, 7)
//	gd.Flush()
//
// # Refresh Latency
//
// Full refreshes on these panels take seconds, not milliseconds; the busy
// line is held for the whole cycle and the drivers block on it. Fast
// waveforms cut this to a few hundred milliseconds at the cost of ghosting.
// The image persists with no power; use Sleep between updates on battery.
//
// # Compatibility with periph.io
//
// The binary, fast-update and tri-color sessions implement the
// display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package epd
