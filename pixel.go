package blinkt

import "math"

// DefaultBrightness is the 5-bit brightness every pixel starts with.
const DefaultBrightness = 7

// Pixel is one LED frame as it goes on the wire: brightness byte, blue,
// green, red. The brightness byte keeps its top three bits at 111; the
// low five bits hold brightness 0-31.
type Pixel struct {
	value [4]byte
}

func defaultPixel() Pixel {
	return Pixel{value: [4]byte{0b1110_0000 | DefaultBrightness, 0, 0, 0}}
}

// SetRGB sets the color channels, leaving brightness untouched.
func (p *Pixel) SetRGB(red, green, blue uint8) {
	p.value[1] = blue
	p.value[2] = green
	p.value[3] = red
}

// SetBrightness sets the 5-bit brightness from a 0.0-1.0 level. Levels
// outside that range clamp to the nearest boundary; NaN clamps to 0.
func (p *Pixel) SetBrightness(level float32) {
	p.value[0] = 0b1110_0000 | byte(31.0*clampLevel(level))
}

// SetRGBB overwrites all four bytes of the pixel.
func (p *Pixel) SetRGBB(red, green, blue uint8, level float32) {
	p.SetRGB(red, green, blue)
	p.SetBrightness(level)
}

// Bytes returns the 4-byte wire representation.
func (p *Pixel) Bytes() []byte {
	return p.value[:]
}

func clampLevel(level float32) float32 {
	if math.IsNaN(float64(level)) || level < 0.0 {
		return 0.0
	}
	if level > 1.0 {
		return 1.0
	}
	return level
}
