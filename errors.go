package epd

import "errors"

// Error taxonomy for the driver layer. Every fallible operation returns one
// of these sentinels, usually wrapped with context, so callers can match
// with errors.Is. There is no retry anywhere in this layer: re-sending a
// partial command stream to a stateful controller is unsafe, so a failure
// aborts the in-progress init or flush sequence as-is.
var (
	// ErrInvalidFormat reports a buffer whose size or depth does not match
	// the configured geometry.
	ErrInvalidFormat = errors.New("epd: invalid format")
	// ErrBusWrite reports a failed transfer on the underlying bus.
	ErrBusWrite = errors.New("epd: bus write failed")
	// ErrDataCommandSignal reports a failure driving the data/command pin.
	ErrDataCommandSignal = errors.New("epd: data/command signal failed")
	// ErrChipSelectSignal reports a failure driving the chip-select pin.
	ErrChipSelectSignal = errors.New("epd: chip-select signal failed")
	// ErrBusySignal reports a failure related to the busy pin.
	ErrBusySignal = errors.New("epd: busy signal failed")
	// ErrInvalidChannel reports a channel index outside the driver's
	// declared range.
	ErrInvalidChannel = errors.New("epd: invalid channel")
)
