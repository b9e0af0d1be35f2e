package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	NumLeds int    `yaml:"num_leds"`
	TickMs  int    `yaml:"tick_ms"`
	Driver  string `yaml:"driver"`             // "spi" | "sim"
	SPIPort string `yaml:"spi_port,omitempty"` // "" = first registered port

	ButtonPin string `yaml:"button_pin,omitempty"`
	IRPin     string `yaml:"ir_pin,omitempty"`

	// Monitor is the websocket monitor listen address; empty disables it.
	Monitor string `yaml:"monitor,omitempty"`

	// Codes maps hex IR codes to command names, overriding the built-in
	// table. The values depend entirely on the remote in use.
	Codes map[string]string `yaml:"ir_codes,omitempty"`
}

func Default() *Config {
	return &Config{
		NumLeds:   29,
		TickMs:    50,
		Driver:    "spi",
		ButtonPin: "GPIO17",
		IRPin:     "GPIO23",
	}
}

// Tick returns the control loop period.
func (c *Config) Tick() time.Duration {
	ms := c.TickMs
	if ms <= 0 {
		ms = 50
	}
	return time.Duration(ms) * time.Millisecond
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
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
