// Package blinkt controls the Pimoroni Blinkt! and any similar APA102 or
// SK9822 LED strip or board on a Linux host.
//
// The APA102 RGB LED/driver ICs are referred to as pixels throughout.
// Each pixel has red, green and blue channels with values 0-255, plus an
// overall brightness of 0.0-1.0 that is converted to a 5-bit value.
//
// All color and brightness changes land in a local buffer; call Show to
// send the buffer to the pixels.
//
// # Outputs
//
// Three ways to reach the strip:
//
//   - Bit-banged GPIO on any two pins through periph.io (New,
//     WithSettings).
//   - Bit-banged GPIO through the Linux character device, for hosts like
//     the Raspberry Pi 5 that periph has no pin driver for (WithChip).
//   - Hardware SPI, with data on MOSI and clock on SCLK (WithSPI). The
//     recommended option for strips: faster and far more reliable on
//     long chains.
//
// # Blinkt! board
//
// Cycle the default 8-pixel board through solid colors:
//
//	b, err := blinkt.New()
//	if err != nil {
//		log.Fatal().Err(err).Msg("open")
//	}
//	defer b.Release()
//
//	for _, c := range [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}} {
//		b.SetAllPixels(c[0], c[1], c[2])
//		if err := b.Show(); err != nil {
//			log.Fatal().Err(err).Msg("show")
//		}
//		time.Sleep(250 * time.Millisecond)
//	}
//
// # LED strip over SPI
//
//	b, err := blinkt.WithSPI(16*physic.MegaHertz, 144)
//
// # Cleanup
//
// By default all pixels are blanked when the device is released. Use
// SetClearOnClose(false) to leave the last frame lit. Close reports the
// error of that final render; Release discards it, which makes it the
// right choice in a defer. Neither runs when the process is killed
// outright, so catch SIGINT if cleanup matters.
package blinkt
