package serial

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// BufferBytes is the default transmission buffer capacity, matching the
// single-transfer limit of the Linux spidev driver. It is a hardware
// chunk boundary, not a tunable: transfers larger than the kernel limit
// fail outright.
const BufferBytes = 4096

// SPI queues bytes in a fixed-capacity buffer and transmits them over a
// hardware SPI port in bounded chunks. A bus transfer has a fixed
// per-call cost, so coalescing bytes is the whole point of this output
// compared to bit-banging.
type SPI struct {
	port spi.PortCloser
	conn conn.Conn
	buf  []byte
	n    int
}

// NewSPI connects the port at the given clock speed (mode 0, 8 bits per
// word) and returns a buffered output. bufSize <= 0 selects BufferBytes;
// set it explicitly only when porting to a bus with a different
// single-transfer limit.
func NewSPI(port spi.PortCloser, speed physic.Frequency, bufSize int) (*SPI, error) {
	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, &BusError{Op: "connect", Err: err}
	}
	if bufSize <= 0 {
		bufSize = BufferBytes
	}
	return &SPI{port: port, conn: c, buf: make([]byte, bufSize)}, nil
}

// Write appends p to the buffer. Whenever the buffer fills, it is
// transmitted in full and the write index resets before appending
// continues, so a single Write larger than the buffer is split into
// multiple transfers without caller intervention. Bytes only reach the
// wire on a full buffer or on Flush.
func (s *SPI) Write(p []byte) error {
	for len(p) > 0 {
		n := copy(s.buf[s.n:], p)
		s.n += n
		p = p[n:]
		if s.n == len(s.buf) {
			if err := s.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush transmits the occupied portion of the buffer and resets the
// write index. An empty buffer transmits nothing.
func (s *SPI) Flush() error {
	if s.n == 0 {
		return nil
	}
	if err := s.conn.Tx(s.buf[:s.n], nil); err != nil {
		return &BusError{Op: "write", Err: err}
	}
	s.n = 0
	return nil
}

// Close releases the underlying port. Idempotent.
func (s *SPI) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	if err != nil {
		return &BusError{Op: "close", Err: err}
	}
	return nil
}
