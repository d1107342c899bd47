package config

var Presets = map[string]*Config{
	"calm": {
		GridW: 64, GridH: 48, Particles: 200,
		Dt: 0.016, Duration: 60.0, TimeAcceleration: 5.0,
		Forcing: ForcingConfig{WindStrength: 0.2, CoriolisStrength: 1.0, TemperatureDiff: 0.5},
	},
	"trade-winds": {
		GridW: 64, GridH: 48, Particles: 200,
		Dt: 0.016, Duration: 120.0, TimeAcceleration: 5.0,
		Forcing: ForcingConfig{WindStrength: 1.5, CoriolisStrength: 1.0, TemperatureDiff: 1.0},
	},
	"storm": {
		GridW: 64, GridH: 48, Particles: 200,
		Dt: 0.016, Duration: 60.0, TimeAcceleration: 8.0,
		Forcing: ForcingConfig{WindStrength: 3.0, CoriolisStrength: 1.5, TemperatureDiff: 1.0},
	},
	"overturning": {
		GridW: 64, GridH: 48, Particles: 200,
		Dt: 0.016, Duration: 180.0, TimeAcceleration: 5.0,
		Forcing: ForcingConfig{WindStrength: 0.5, CoriolisStrength: 1.0, TemperatureDiff: 3.0},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
