package serial

import (
	"periph.io/x/conn/v3/gpio"
)

// GPIO bit-bangs bytes over a data/clock pin pair.
//
// Every Write completes with the line transitions already issued; nothing
// is buffered. Bit-banging is less reliable than hardware SPI on long
// strips, but works on any two free pins.
type GPIO struct {
	data  gpio.PinOut
	clock gpio.PinOut
}

// NewGPIO configures both pins as outputs driven low and returns the
// output. Pins are typically obtained from gpioreg.ByName.
func NewGPIO(data, clock gpio.PinOut) (*GPIO, error) {
	if err := data.Out(gpio.Low); err != nil {
		return nil, &PinError{Pin: data.Name(), Err: err}
	}
	if err := clock.Out(gpio.Low); err != nil {
		return nil, &PinError{Pin: clock.Name(), Err: err}
	}
	return &GPIO{data: data, clock: clock}, nil
}

// Write clocks out each byte most-significant bit first: data line to the
// bit's level, then one clock pulse. The first pin failure aborts the
// loop and is returned; a partially clocked frame is surfaced, never
// silently retried.
func (g *GPIO) Write(p []byte) error {
	for _, b := range p {
		for bit := 7; bit >= 0; bit-- {
			level := gpio.Low
			if b&(1<<uint(bit)) != 0 {
				level = gpio.High
			}
			if err := g.data.Out(level); err != nil {
				return &PinError{Pin: g.data.Name(), Err: err}
			}
			if err := g.clock.Out(gpio.High); err != nil {
				return &PinError{Pin: g.clock.Name(), Err: err}
			}
			if err := g.clock.Out(gpio.Low); err != nil {
				return &PinError{Pin: g.clock.Name(), Err: err}
			}
		}
	}
	return nil
}

// Flush is a no-op; every Write is already on the wire.
func (g *GPIO) Flush() error { return nil }

// Close halts both pins, returning them to their neutral state. The first
// error is returned, but the second pin is halted regardless.
func (g *GPIO) Close() error {
	derr := g.data.Halt()
	cerr := g.clock.Halt()
	if derr != nil {
		return &PinError{Pin: g.data.Name(), Err: derr}
	}
	if cerr != nil {
		return &PinError{Pin: g.clock.Name(), Err: cerr}
	}
	return nil
}
