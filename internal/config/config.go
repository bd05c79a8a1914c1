// Package config loads command configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Preview configures the terminal previewer.
type Preview struct {
	// Invitation is a YAML or JSON invitation file. Empty uses the sample.
	Invitation string `env:"KEEPSAKE_INVITATION"`
	// Theme overrides the invitation's theme name.
	Theme string `env:"KEEPSAKE_THEME"`
	// Tick is the frame interval of the preview loop.
	Tick time.Duration `env:"KEEPSAKE_TICK" envDefault:"50ms"`
	// ReducedMotion previews the reduced-motion behavior.
	ReducedMotion bool `env:"KEEPSAKE_REDUCED_MOTION" envDefault:"false"`
	// Debug shows choreography counters in the footer.
	Debug bool `env:"KEEPSAKE_DEBUG" envDefault:"false"`
	// Script is a JSON interaction script replayed on start.
	Script string `env:"KEEPSAKE_SCRIPT"`
}

// Window configures the Ebitengine example.
type Window struct {
	// Script is a JSON interaction script replayed on start. Its mark steps
	// capture screenshots.
	Script string `env:"KEEPSAKE_SCRIPT"`
	// ScreenshotDir receives the screenshots taken by mark steps.
	ScreenshotDir string `env:"KEEPSAKE_SCREENSHOT_DIR" envDefault:"screenshots"`
	// ReducedMotion previews the reduced-motion behavior.
	ReducedMotion bool `env:"KEEPSAKE_REDUCED_MOTION" envDefault:"false"`
	// Debug logs choreography decisions to stderr.
	Debug bool `env:"KEEPSAKE_DEBUG" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadPreview reads the previewer configuration.
func LoadPreview() (Preview, error) {
	var cfg Preview
	if err := ParseEnv(&cfg); err != nil {
		return Preview{}, err
	}
	if cfg.Tick <= 0 {
		return Preview{}, fmt.Errorf("parse env: KEEPSAKE_TICK must be positive, got %s", cfg.Tick)
	}
	return cfg, nil
}

// LoadWindow reads the example window configuration.
func LoadWindow() (Window, error) {
	var cfg Window
	if err := ParseEnv(&cfg); err != nil {
		return Window{}, err
	}
	return cfg, nil
}
