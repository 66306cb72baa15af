package serial

import (
	"strconv"

	"github.com/warthog618/go-gpiocdev"
)

// line is the subset of gpiocdev.Line the output needs.
type line interface {
	SetValue(value int) error
	Close() error
}

// Cdev bit-bangs bytes over two lines of a Linux GPIO character device
// (/dev/gpiochipN). Same wire behavior as GPIO, for hosts where no
// memory-mapped pin driver is available, such as the Raspberry Pi 5.
type Cdev struct {
	chip  string
	data  line
	clock line
}

// NewCdev requests both line offsets on the named chip (e.g. "gpiochip0")
// as outputs driven low.
func NewCdev(chip string, dataLine, clockLine int) (*Cdev, error) {
	data, err := gpiocdev.RequestLine(chip, dataLine,
		gpiocdev.AsOutput(0), gpiocdev.WithConsumer("blinkt-data"))
	if err != nil {
		return nil, &PinError{Pin: lineName(chip, dataLine), Err: err}
	}
	clock, err := gpiocdev.RequestLine(chip, clockLine,
		gpiocdev.AsOutput(0), gpiocdev.WithConsumer("blinkt-clock"))
	if err != nil {
		data.Close()
		return nil, &PinError{Pin: lineName(chip, clockLine), Err: err}
	}
	return &Cdev{chip: chip, data: data, clock: clock}, nil
}

// Write clocks out each byte most-significant bit first, one clock pulse
// per bit. The first line failure aborts and is returned.
func (c *Cdev) Write(p []byte) error {
	for _, b := range p {
		for bit := 7; bit >= 0; bit-- {
			v := 0
			if b&(1<<uint(bit)) != 0 {
				v = 1
			}
			if err := c.data.SetValue(v); err != nil {
				return &PinError{Pin: c.chip + ":data", Err: err}
			}
			if err := c.clock.SetValue(1); err != nil {
				return &PinError{Pin: c.chip + ":clock", Err: err}
			}
			if err := c.clock.SetValue(0); err != nil {
				return &PinError{Pin: c.chip + ":clock", Err: err}
			}
		}
	}
	return nil
}

// Flush is a no-op; every Write is already on the wire.
func (c *Cdev) Flush() error { return nil }

// Close drives both lines low and releases them back to the kernel.
// Both lines are released even if the first fails.
func (c *Cdev) Close() error {
	if c.data == nil {
		return nil
	}
	c.data.SetValue(0)
	c.clock.SetValue(0)
	derr := c.data.Close()
	cerr := c.clock.Close()
	c.data = nil
	c.clock = nil
	if derr != nil {
		return &PinError{Pin: c.chip + ":data", Err: derr}
	}
	if cerr != nil {
		return &PinError{Pin: c.chip + ":clock", Err: cerr}
	}
	return nil
}

func lineName(chip string, offset int) string {
	return chip + ":" + strconv.Itoa(offset)
}
