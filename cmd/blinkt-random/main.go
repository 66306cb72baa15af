// blinkt-random paints every pixel a random color at a fixed frame rate
// until interrupted, then blanks the strip on the way out.
package main

import (
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	blinkt "github.com/coreman2200/funtimes-blinkt"
	"github.com/coreman2200/funtimes-blinkt/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		mode       = flag.String("mode", "", "output: gpio | cdev | spi (overrides config)")
		pixels     = flag.Int("pixels", 0, "number of pixels (overrides config)")
		brightness = flag.Float64("brightness", 0, "global brightness 0..1 (overrides config)")
		fps        = flag.Int("fps", 0, "frames per second (overrides config)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *pixels > 0 {
		cfg.Pixels = *pixels
	}
	if *brightness > 0 {
		cfg.Brightness = *brightness
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("blinkt-random failed")
	}
}

func run(cfg *config.Config) error {
	b, err := open(cfg)
	if err != nil {
		return err
	}
	defer b.Release()
	b.SetLogger(log.Logger)
	b.SetAllPixelsBrightness(float32(cfg.Brightness))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer signal.Stop(c)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	log.Info().
		Str("mode", cfg.Mode).
		Int("pixels", cfg.Pixels).
		Int("fps", cfg.FPS).
		Msg("running; ^C to exit")

	for {
		select {
		case <-ticker.C:
			for i := 0; i < b.NumPixels(); i++ {
				b.SetPixel(i, uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256)))
			}
			if err := b.Show(); err != nil {
				return err
			}
		case sig := <-c:
			log.Info().Str("signal", sig.String()).Msg("aborting")
			return nil
		}
	}
}

func open(cfg *config.Config) (*blinkt.Blinkt, error) {
	switch cfg.Mode {
	case "cdev":
		return blinkt.WithChip(cfg.Cdev.Chip, cfg.Cdev.Data, cfg.Cdev.Clock, cfg.Pixels)
	case "spi":
		return blinkt.WithSPI(physic.Frequency(cfg.SPI.SpeedHz)*physic.Hertz, cfg.Pixels)
	default:
		return blinkt.WithSettings(cfg.GPIO.Data, cfg.GPIO.Clock, cfg.Pixels)
	}
}
