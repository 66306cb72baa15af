package blinkt

import (
	"errors"
	"runtime"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-blinkt/serial"
)

// Defaults for the Pimoroni Blinkt! board, BCM pin numbering.
const (
	DefaultDataPin   = "GPIO23"
	DefaultClockPin  = "GPIO24"
	DefaultNumPixels = 8
)

// ErrClosed is returned by Show after the device has been released.
var ErrClosed = errors.New("blinkt: device closed")

var startFrame = []byte{0x00, 0x00, 0x00, 0x00}

// Blinkt drives a chain of APA102 or SK9822 pixels.
//
// Color and brightness changes land in a local buffer; Show sends the
// buffer to the pixels. A Blinkt is not safe for concurrent use: callers
// that update colors from multiple goroutines must serialize access
// themselves.
type Blinkt struct {
	out          serial.Output
	pixels       []Pixel
	endFrame     []byte
	clearOnClose bool
	closed       bool
	log          zerolog.Logger
}

// New opens the default 8-pixel Blinkt! board, bit-banged over GPIO23
// (data) and GPIO24 (clock).
func New() (*Blinkt, error) {
	return WithSettings(DefaultDataPin, DefaultClockPin, DefaultNumPixels)
}

// WithSettings opens a bit-banged device on the named pins. Pin names are
// whatever gpioreg knows on the host, typically "GPIO23"-style BCM names.
func WithSettings(dataPin, clockPin string, numPixels int) (*Blinkt, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	data := gpioreg.ByName(dataPin)
	if data == nil {
		return nil, &serial.PinError{Pin: dataPin, Err: errors.New("no such pin")}
	}
	clock := gpioreg.ByName(clockPin)
	if clock == nil {
		return nil, &serial.PinError{Pin: clockPin, Err: errors.New("no such pin")}
	}
	out, err := serial.NewGPIO(data, clock)
	if err != nil {
		return nil, err
	}
	return NewWithOutput(out, numPixels), nil
}

// WithChip opens a bit-banged device on two line offsets of a GPIO
// character device, e.g. WithChip("gpiochip0", 23, 24, 8). Use this on
// hosts periph has no memory-mapped pin driver for.
func WithChip(chip string, dataLine, clockLine, numPixels int) (*Blinkt, error) {
	out, err := serial.NewCdev(chip, dataLine, clockLine)
	if err != nil {
		return nil, err
	}
	return NewWithOutput(out, numPixels), nil
}

// WithSPI opens the first available hardware SPI port at the given clock
// speed, with data on the port's MOSI pin and clock on its SCLK pin.
//
// LED strips rarely keep up with the bus maximum; around 32MHz is the
// practical ceiling for a short strip and long chains may need much
// less.
func WithSPI(speed physic.Frequency, numPixels int) (*Blinkt, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	port, err := spireg.Open("")
	if err != nil {
		return nil, &serial.BusError{Op: "open", Err: err}
	}
	out, err := serial.NewSPI(port, speed, serial.BufferBytes)
	if err != nil {
		port.Close()
		return nil, err
	}
	return NewWithOutput(out, numPixels), nil
}

// NewWithOutput wraps a caller-supplied serial output. The device takes
// ownership of out and closes it on release.
func NewWithOutput(out serial.Output, numPixels int) *Blinkt {
	if numPixels < 0 {
		numPixels = 0
	}
	b := &Blinkt{
		out:          out,
		pixels:       make([]Pixel, numPixels),
		endFrame:     make([]byte, endFrameLen(numPixels)),
		clearOnClose: true,
		log:          zerolog.Nop(),
	}
	for i := range b.pixels {
		b.pixels[i] = defaultPixel()
	}
	runtime.SetFinalizer(b, (*Blinkt).Release)
	return b
}

// The 4 zero bytes are the SK9822 reset frame; the extra byte per 16
// pixels supplies the clock edges the downstream half of the chain needs
// to latch. Zero bytes instead of the nominal all-ones end frame keep
// the APA102 and SK9822 both happy.
func endFrameLen(numPixels int) int {
	return 4 + numPixels/16
}

// SetLogger sets the logger used for errors discarded during automatic
// release. The default discards everything.
func (b *Blinkt) SetLogger(log zerolog.Logger) {
	b.log = log
}

// SetClearOnClose controls whether all pixels are blanked when the
// device is released. Enabled by default.
//
// Neither Close nor the finalizer runs on abnormal termination; catch
// SIGINT yourself if a dark strip on exit matters.
func (b *Blinkt) SetClearOnClose(clear bool) {
	b.clearOnClose = clear
}

// NumPixels returns the configured pixel count.
func (b *Blinkt) NumPixels() int {
	return len(b.pixels)
}

// SetPixel sets the color of one pixel in the local buffer. Pixel 0 is
// nearest the host; out-of-range indices are ignored.
func (b *Blinkt) SetPixel(pixel int, red, green, blue uint8) {
	if pixel < 0 || pixel >= len(b.pixels) {
		return
	}
	b.pixels[pixel].SetRGB(red, green, blue)
}

// SetPixelBrightness sets one pixel's brightness, 0.0-1.0, converted to
// a 5-bit value. Out-of-range indices are ignored.
func (b *Blinkt) SetPixelBrightness(pixel int, level float32) {
	if pixel < 0 || pixel >= len(b.pixels) {
		return
	}
	b.pixels[pixel].SetBrightness(level)
}

// SetPixelRGBB sets one pixel's color and brightness. Out-of-range
// indices are ignored.
func (b *Blinkt) SetPixelRGBB(pixel int, red, green, blue uint8, level float32) {
	if pixel < 0 || pixel >= len(b.pixels) {
		return
	}
	b.pixels[pixel].SetRGBB(red, green, blue, level)
}

// SetAllPixels sets the color of every pixel in the local buffer.
func (b *Blinkt) SetAllPixels(red, green, blue uint8) {
	for i := range b.pixels {
		b.pixels[i].SetRGB(red, green, blue)
	}
}

// SetAllPixelsBrightness sets every pixel's brightness, 0.0-1.0.
func (b *Blinkt) SetAllPixelsBrightness(level float32) {
	for i := range b.pixels {
		b.pixels[i].SetBrightness(level)
	}
}

// SetAllPixelsRGBB sets every pixel's color and brightness.
func (b *Blinkt) SetAllPixelsRGBB(red, green, blue uint8, level float32) {
	for i := range b.pixels {
		b.pixels[i].SetRGBB(red, green, blue, level)
	}
}

// Clear sets every pixel's color to black, leaving brightness untouched.
func (b *Blinkt) Clear() {
	b.SetAllPixels(0, 0, 0)
}

// Show sends the local buffer to the pixels: a 4-byte zero start frame,
// each pixel's 4 bytes in chain order, the zero end frame, then a flush.
// The first transport error aborts the frame and is returned.
func (b *Blinkt) Show() error {
	if b.closed {
		return ErrClosed
	}
	return b.render()
}

func (b *Blinkt) render() error {
	if err := b.out.Write(startFrame); err != nil {
		return err
	}
	for i := range b.pixels {
		if err := b.out.Write(b.pixels[i].Bytes()); err != nil {
			return err
		}
	}
	if err := b.out.Write(b.endFrame); err != nil {
		return err
	}
	return b.out.Flush()
}

// Close releases the device: when clear-on-close is enabled it blanks
// the pixel colors (brightness is kept) and renders once, then closes
// the serial output regardless of how that render went. The render error
// is returned; the output's own close error is only logged. Calling
// Close again is a no-op.
func (b *Blinkt) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	runtime.SetFinalizer(b, nil)

	var err error
	if b.clearOnClose {
		b.Clear()
		err = b.render()
	}
	if cerr := b.out.Close(); cerr != nil {
		b.log.Warn().Err(cerr).Msg("serial output close failed")
	}
	return err
}

// Release is the defer-friendly Close: any error from the final render
// is logged and discarded. It also runs as the finalizer when a Blinkt
// is garbage collected without an explicit Close.
func (b *Blinkt) Release() {
	if err := b.Close(); err != nil {
		b.log.Warn().Err(err).Msg("release: final render failed")
	}
}
