// blinkt-off blanks a strip and releases its pins. Useful after a
// process died without running its cleanup and left the LEDs lit.
package main

import (
	"flag"
	"os"
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
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	b, err := open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open device")
	}
	b.SetLogger(log.Logger)

	// Close blanks the strip itself: clear-on-close is the default.
	if err := b.Close(); err != nil {
		log.Fatal().Err(err).Msg("blanking failed")
	}
	log.Info().Int("pixels", cfg.Pixels).Msg("strip off")
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
