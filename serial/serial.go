// Package serial provides the byte outputs a Blinkt device renders through.
//
// An Output moves bytes to the LED chain and knows nothing about frames or
// pixels; the three implementations differ only in mechanics. GPIO and Cdev
// bit-bang every bit synchronously over a data/clock line pair, so their
// Flush is a no-op. SPI queues bytes in a fixed buffer and transmits in
// bounded chunks, so callers must Flush to guarantee delivery.
package serial

// Output is a serial sink for LED frame data.
//
// Write must preserve byte order, and bit order within each byte
// (most-significant bit first). Flush pushes anything still queued to the
// wire and is safe to call with nothing queued. Close restores whatever
// peripheral state was acquired at construction; it is best-effort and
// idempotent.
type Output interface {
	Write(p []byte) error
	Flush() error
	Close() error
}

// PinError reports a failed GPIO line operation, either while acquiring
// and configuring a pin or while toggling it mid-frame.
type PinError struct {
	Pin string
	Err error
}

func (e *PinError) Error() string {
	return "serial: pin " + e.Pin + ": " + e.Err.Error()
}

func (e *PinError) Unwrap() error { return e.Err }

// BusError reports a failed SPI operation.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return "serial: spi " + e.Op + ": " + e.Err.Error()
}

func (e *BusError) Unwrap() error { return e.Err }
