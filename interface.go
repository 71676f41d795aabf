package epd

import (
	"fmt"
	"iter"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Interface is the transport consumed by chip drivers and display sessions:
// command/data byte transfer over a bus with discrete data/command, reset
// and busy signals.
//
// All methods are synchronous. An error from any of them leaves the
// controller in an unknown state; the caller must abort the sequence in
// progress rather than replay it.
type Interface interface {
	// SendCommand sends a single command byte.
	SendCommand(cmd byte) error
	// SendData sends payload bytes for the preceding command.
	SendData(data []byte) error
	// SendCommandData sends a command followed by its payload.
	SendCommandData(cmd byte, data []byte) error
	// SendDataStream streams payload bytes without requiring a contiguous
	// buffer and returns the number of bytes sent, so a caller can mirror
	// the same count into an unused second channel.
	SendDataStream(seq iter.Seq[byte]) (int, error)
	// IsBusy samples the busy pin. The idle level is chip specific; drivers
	// interpret it.
	IsBusy() bool
	// Reset pulses the reset line: high for preHold, low for postHold, then
	// high again followed by a fixed settle delay.
	Reset(preHold, postHold time.Duration) error
}

// Repeat returns a stream of n copies of b, for filling an unused channel
// without allocating a buffer.
func Repeat(b byte, n int) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; i < n; i++ {
			if !yield(b) {
				return
			}
		}
	}
}

// resetSettle is the hold after releasing reset. Controller families need
// anywhere from 10ms to 200ms here; 200ms covers all of them.
const resetSettle = 200 * time.Millisecond

// SPI is the Interface implementation for SPI-attached controllers with a
// data/command pin, an optional chip-select pin driven in software, a reset
// pin and a busy pin.
type SPI struct {
	c    conn.Conn
	dc   gpio.PinOut
	cs   gpio.PinOut // nil when chip select is wired low or handled by the bus
	rst  gpio.PinOut
	busy gpio.PinIn

	// sleep is swappable so tests run without real delays.
	sleep func(time.Duration)
}

// NewSPI connects to the controller on the given port.
//
// The port is configured for 5MHz, Mode0, 8-bit transfers, which every
// supported controller family accepts. dc, rst and busy are required; pass
// cs only when the chip-select line is not managed by the SPI bus itself.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn) (*SPI, error) {
	c, err := p.Connect(5*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBusySignal, err)
	}
	return &SPI{c: c, dc: dc, cs: cs, rst: rst, busy: busy, sleep: time.Sleep}, nil
}

func (s *SPI) csOut(l gpio.Level) error {
	if s.cs == nil {
		return nil
	}
	if err := s.cs.Out(l); err != nil {
		return fmt.Errorf("%w: %v", ErrChipSelectSignal, err)
	}
	return nil
}

// SendCommand implements Interface.
func (s *SPI) SendCommand(cmd byte) error {
	if err := s.csOut(gpio.Low); err != nil {
		return err
	}
	defer s.csOut(gpio.High)

	if err := s.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: %v", ErrDataCommandSignal, err)
	}
	if err := s.c.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("%w: command %#02x: %v", ErrBusWrite, cmd, err)
	}
	return nil
}

// SendData implements Interface.
func (s *SPI) SendData(data []byte) error {
	if err := s.csOut(gpio.Low); err != nil {
		return err
	}
	defer s.csOut(gpio.High)

	if err := s.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: %v", ErrDataCommandSignal, err)
	}
	if err := s.c.Tx(data, nil); err != nil {
		return fmt.Errorf("%w: %d data bytes: %v", ErrBusWrite, len(data), err)
	}
	return nil
}

// SendCommandData implements Interface.
func (s *SPI) SendCommandData(cmd byte, data []byte) error {
	if err := s.SendCommand(cmd); err != nil {
		return err
	}
	return s.SendData(data)
}

// SendDataStream implements Interface. Bytes are chunked through a small
// scratch buffer; most ports split large transfers anyway.
func (s *SPI) SendDataStream(seq iter.Seq[byte]) (int, error) {
	if err := s.csOut(gpio.Low); err != nil {
		return 0, err
	}
	defer s.csOut(gpio.High)

	if err := s.dc.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDataCommandSignal, err)
	}

	var buf [256]byte
	n, fill := 0, 0
	for b := range seq {
		buf[fill] = b
		fill++
		if fill == len(buf) {
			if err := s.c.Tx(buf[:fill], nil); err != nil {
				return n, fmt.Errorf("%w: %v", ErrBusWrite, err)
			}
			n += fill
			fill = 0
		}
	}
	if fill > 0 {
		if err := s.c.Tx(buf[:fill], nil); err != nil {
			return n, fmt.Errorf("%w: %v", ErrBusWrite, err)
		}
		n += fill
	}
	return n, nil
}

// IsBusy implements Interface.
func (s *SPI) IsBusy() bool {
	return s.busy.Read() == gpio.High
}

// Reset implements Interface.
func (s *SPI) Reset(preHold, postHold time.Duration) error {
	if err := s.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: reset high: %v", ErrBusWrite, err)
	}
	s.sleep(preHold)
	if err := s.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: reset low: %v", ErrBusWrite, err)
	}
	s.sleep(postHold)
	if err := s.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: reset high: %v", ErrBusWrite, err)
	}
	s.sleep(resetSettle)
	return nil
}

var _ Interface = &SPI{}
