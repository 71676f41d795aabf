package epd

import (
	"fmt"
	"time"
)

// LUT is a controller waveform table: voltage pulses applied per update
// phase. Tables are chip-specific binary fixtures reproduced from the
// datasheets; this layer never interprets their contents.
type LUT []byte

// Driver is the baseline contract a controller chip implements. Drivers are
// stateless: all state lives in the controller and in the session that owns
// the transport.
type Driver interface {
	// BlackBit reports the chip's declared bit polarity: true when a set
	// bit in the transferred plane renders dark. Most supported chips
	// render a set bit light, but both conventions occur across families,
	// so it is declared per chip rather than inferred.
	BlackBit() bool

	// WakeUp pulses reset and runs the chip's register init sequence. On
	// error the controller is left partially initialized; the session must
	// treat that as fatal.
	WakeUp(tx Interface) error

	// SetShape programs the addressable RAM window to exactly w×h pixels.
	// Must follow every WakeUp, including one issued to leave sleep.
	SetShape(tx Interface, w, h int) error

	// UpdateFrame positions the write cursor and streams one plane's packed
	// bytes into controller RAM. Returns the byte count transferred.
	UpdateFrame(tx Interface, buf []byte) (int, error)

	// TurnOnDisplay triggers the display update sequence and blocks until
	// the controller reports idle.
	TurnOnDisplay(tx Interface) error

	// Sleep puts the controller into a low-power state. Recovery requires a
	// full WakeUp on most chips.
	Sleep(tx Interface) error

	// BusyWait blocks until the controller reports idle. The default
	// polarity is busy-high; chips with active-low busy or a status-read
	// handshake override it.
	BusyWait(tx Interface) error
}

// WaveformDriver is implemented by chips whose waveform LUT can be replaced
// from the host.
type WaveformDriver interface {
	Driver

	// UpdateWaveform loads an arbitrary timing table into the LUT register.
	UpdateWaveform(tx Interface, lut LUT) error

	// TurnOnWaveform activates the display using the register LUT instead
	// of the OTP one. Some chips need a different update-sequence option
	// byte for that; the others fall back to TurnOnDisplay.
	TurnOnWaveform(tx Interface) error
}

// FastUpdateDriver is implemented by chips with a quick low-quality LUT for
// interactive refresh. Callers must periodically run a full-quality refresh
// to clear residual ghosting; the driver only exposes the two states.
type FastUpdateDriver interface {
	WaveformDriver

	SetupFastWaveform(tx Interface) error
	RestoreNormalWaveform(tx Interface) error
}

// GrayScaleDriver is implemented by chips that can run the short-pulse
// incremental waveform needed for bit-plane stacking.
type GrayScaleDriver interface {
	WaveformDriver

	// GrayBits lists the supported plane depths, e.g. {2, 3, 4}.
	GrayBits() []int
	// SetupGrayScaleWaveform loads the incremental LUT tuned for the given
	// depth. Unsupported depths return ErrInvalidFormat.
	SetupGrayScaleWaveform(tx Interface, bits int) error
	// RestoreNormalWaveform reloads the full-quality LUT.
	RestoreNormalWaveform(tx Interface) error
}

// MultiColorDriver is implemented by chips with more than one on-chip color
// plane.
type MultiColorDriver interface {
	Driver

	// Channels is the number of addressable color planes.
	Channels() int
	// UpdateChannelFrame is UpdateFrame targeting one color plane. A
	// channel outside [0, Channels()) returns ErrInvalidChannel.
	UpdateChannelFrame(tx Interface, channel int, buf []byte) (int, error)
}

// busyPoll is the sampling interval while waiting for the busy pin. The
// signal stays asserted for hundreds of milliseconds during a refresh, so a
// tight spin would only heat the CPU.
const busyPoll = time.Millisecond

// WaitUntilIdle blocks until the busy pin deasserts, for chips where busy is
// active high. The wait is unbounded: if the hardware never deasserts busy
// this never returns, which is the documented contract.
func WaitUntilIdle(tx Interface) {
	for tx.IsBusy() {
		time.Sleep(busyPoll)
	}
}

// WaitUntilIdleInverted is WaitUntilIdle for chips with an active-low busy
// signal.
func WaitUntilIdleInverted(tx Interface) {
	for !tx.IsBusy() {
		time.Sleep(busyPoll)
	}
}

// WaitUntilIdleTimeout is a bounded variant of WaitUntilIdle for callers
// that prefer a diagnosable failure over a hang. No driver uses it by
// default.
func WaitUntilIdleTimeout(tx Interface, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for tx.IsBusy() {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: still busy after %s", ErrBusySignal, timeout)
		}
		time.Sleep(busyPoll)
	}
	return nil
}
