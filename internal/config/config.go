package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/oceansim/internal/ocean"
)

const (
	DefaultGridW            = 64
	DefaultGridH            = 48
	DefaultParticles        = 200
	DefaultDt               = 0.016
	DefaultDuration         = 60.0
	DefaultTimeAcceleration = 5.0
	DefaultWind             = 1.0
	DefaultCoriolis         = 1.0
	DefaultTempDiff         = 1.0
)

type Config struct {
	GridW            int           `yaml:"grid_w"`
	GridH            int           `yaml:"grid_h"`
	Particles        int           `yaml:"particles"`
	Dt               float64       `yaml:"dt"`
	Duration         float64       `yaml:"duration"`
	TimeAcceleration float64       `yaml:"time_acceleration"`
	Seed             int64         `yaml:"seed"`
	Forcing          ForcingConfig `yaml:"forcing"`

	// ShowTemperature selects temperature shading in the live view.
	// Consumed only by rendering, never by the numerical core.
	ShowTemperature bool `yaml:"show_temperature"`
}

type ForcingConfig struct {
	WindStrength     float64 `yaml:"wind_strength"`
	CoriolisStrength float64 `yaml:"coriolis_strength"`
	TemperatureDiff  float64 `yaml:"temperature_diff"`
}

func DefaultConfig() *Config {
	return &Config{
		GridW:            DefaultGridW,
		GridH:            DefaultGridH,
		Particles:        DefaultParticles,
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		TimeAcceleration: DefaultTimeAcceleration,
		Forcing: ForcingConfig{
			WindStrength:     DefaultWind,
			CoriolisStrength: DefaultCoriolis,
			TemperatureDiff:  DefaultTempDiff,
		},
	}
}

// Params converts the forcing section to the core parameter struct.
func (c *Config) Params() ocean.Params {
	return ocean.Params{
		WindStrength:     c.Forcing.WindStrength,
		CoriolisStrength: c.Forcing.CoriolisStrength,
		TemperatureDiff:  c.Forcing.TemperatureDiff,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
