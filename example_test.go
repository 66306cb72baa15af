package blinkt_test

import (
	"time"

	"periph.io/x/conn/v3/physic"

	blinkt "github.com/coreman2200/funtimes-blinkt"
)

// Cycle an 8-pixel Blinkt! board through red, green and blue.
func Example() {
	b, err := blinkt.New()
	if err != nil {
		panic(err)
	}
	defer b.Release()

	colors := [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	for i := 0; i < 12; i++ {
		c := colors[i%len(colors)]
		b.SetAllPixels(c[0], c[1], c[2])
		if err := b.Show(); err != nil {
			panic(err)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

// Drive a 144-pixel strip over hardware SPI, the recommended transport
// for anything longer than a board.
func ExampleWithSPI() {
	b, err := blinkt.WithSPI(16*physic.MegaHertz, 144)
	if err != nil {
		panic(err)
	}
	defer b.Release()

	b.SetAllPixelsRGBB(0, 64, 255, 0.2)
	if err := b.Show(); err != nil {
		panic(err)
	}
}
