package imgl

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/imgl/pacing"
)

// RateConfig is a render/update cadence pair as written in a config file.
type RateConfig struct {
	// FPS is the target render rate in Hz.
	FPS float64 `toml:"fps"`

	// UPS is the target update rate in Hz.
	UPS float64 `toml:"ups"`
}

// PacingConfig is the frame-pacing policy as written in a config file.
type PacingConfig struct {
	Focused   RateConfig `toml:"focused"`
	Unfocused RateConfig `toml:"unfocused"`
	Idle      RateConfig `toml:"idle"`
	Hidden    RateConfig `toml:"hidden"`

	// IdleTimeoutSeconds is how long without user input counts as idle.
	IdleTimeoutSeconds float64 `toml:"idle_timeout_seconds"`
}

// Config is the file-loadable bridge configuration.
//
// Example (TOML):
//
//	font_size_px = 13
//
//	[pacing]
//	idle_timeout_seconds = 30
//
//	[pacing.focused]
//	fps = 60
//	ups = 60
//
//	[pacing.hidden]
//	fps = 1
//	ups = 1
type Config struct {
	// FontSizePx overrides the rasterization size of font sources that do
	// not set their own. Zero keeps the built-in default.
	FontSizePx float64 `toml:"font_size_px"`

	Pacing PacingConfig `toml:"pacing"`
}

// DefaultConfig returns the stock configuration, mirroring
// [pacing.DefaultConfig].
func DefaultConfig() Config {
	return configFromPacing(pacing.DefaultConfig())
}

// LoadConfig reads a TOML configuration file. Missing keys keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("imgl: read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("imgl: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// PacingConfig converts the file representation into the governor's
// policy type.
func (c Config) PacingConfig() pacing.Config {
	return pacing.Config{
		Focused:     pacing.Rates{FramesPerSecond: c.Pacing.Focused.FPS, UpdatesPerSecond: c.Pacing.Focused.UPS},
		Unfocused:   pacing.Rates{FramesPerSecond: c.Pacing.Unfocused.FPS, UpdatesPerSecond: c.Pacing.Unfocused.UPS},
		Idle:        pacing.Rates{FramesPerSecond: c.Pacing.Idle.FPS, UpdatesPerSecond: c.Pacing.Idle.UPS},
		Hidden:      pacing.Rates{FramesPerSecond: c.Pacing.Hidden.FPS, UpdatesPerSecond: c.Pacing.Hidden.UPS},
		IdleTimeout: time.Duration(c.Pacing.IdleTimeoutSeconds * float64(time.Second)),
	}
}

// configFromPacing builds the file representation from a governor policy.
func configFromPacing(p pacing.Config) Config {
	rc := func(r pacing.Rates) RateConfig {
		return RateConfig{FPS: r.FramesPerSecond, UPS: r.UpdatesPerSecond}
	}
	return Config{
		Pacing: PacingConfig{
			Focused:            rc(p.Focused),
			Unfocused:          rc(p.Unfocused),
			Idle:               rc(p.Idle),
			Hidden:             rc(p.Hidden),
			IdleTimeoutSeconds: p.IdleTimeout.Seconds(),
		},
	}
}
