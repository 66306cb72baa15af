// Package config loads strip configuration for the blinkt commands.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type GPIO struct {
	Data  string `yaml:"data"`  // e.g. GPIO23
	Clock string `yaml:"clock"` // e.g. GPIO24
}

type Cdev struct {
	Chip  string `yaml:"chip"`  // e.g. gpiochip0
	Data  int    `yaml:"data"`  // line offset
	Clock int    `yaml:"clock"` // line offset
}

type SPI struct {
	SpeedHz int `yaml:"speed_hz"` // e.g. 16000000
}

type Config struct {
	Mode       string  `yaml:"mode"` // "gpio" | "cdev" | "spi"
	Pixels     int     `yaml:"pixels"`
	Brightness float64 `yaml:"brightness"` // 0..1
	FPS        int     `yaml:"fps"`

	GPIO GPIO `yaml:"gpio,omitempty"`
	Cdev Cdev `yaml:"cdev,omitempty"`
	SPI  SPI  `yaml:"spi,omitempty"`
}

func Default() *Config {
	return &Config{
		Mode:       "gpio",
		Pixels:     8,
		Brightness: 0.1,
		FPS:        20,
		GPIO:       GPIO{Data: "GPIO23", Clock: "GPIO24"},
		Cdev:       Cdev{Chip: "gpiochip0", Data: 23, Clock: 24},
		SPI:        SPI{SpeedHz: 16000000},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Validate() error {
	switch c.Mode {
	case "gpio", "cdev", "spi":
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if c.Pixels < 1 {
		return fmt.Errorf("config: pixels must be >= 1, got %d", c.Pixels)
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		return fmt.Errorf("config: brightness must be within 0..1, got %g", c.Brightness)
	}
	if c.FPS < 1 {
		return fmt.Errorf("config: fps must be >= 1, got %d", c.FPS)
	}
	if c.Mode == "spi" && c.SPI.SpeedHz < 1 {
		return fmt.Errorf("config: spi speed_hz must be set")
	}
	return nil
}
