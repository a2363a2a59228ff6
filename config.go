package panzoom

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Gesture policy names accepted in Config.GesturePolicy.
const (
	PolicyCountMatch = "count-match"
	PolicyDebounce   = "debounce"
)

// maxScrollInches is the wheel step used when the platform reports no list
// item height, expressed in inches of screen.
const maxScrollInches = 0.075

// Config holds construction-time settings for a Controller. It can be
// loaded from an optional YAML file.
type Config struct {
	// GesturePolicy selects when a multi-finger gesture counts as ended:
	// "count-match" (default) or "debounce".
	GesturePolicy string `yaml:"gesture_policy,omitempty"`
	// DebounceWindow is the DebouncePolicy window, e.g. "1s".
	DebounceWindow time.Duration `yaml:"debounce_window,omitempty"`
	// ScrollFactor converts wheel units to pixels. Zero derives it from DPI.
	ScrollFactor float64 `yaml:"scroll_factor,omitempty"`
	// DPI is the screen density used to derive ScrollFactor.
	DPI float64 `yaml:"dpi,omitempty"`
	// AnimationSeconds is how long AnimatedTarget takes to settle on a new
	// animation target.
	AnimationSeconds float64 `yaml:"animation_seconds,omitempty"`
	// Longpress enables engine long-press detection.
	Longpress bool `yaml:"longpress"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		GesturePolicy:    PolicyCountMatch,
		DebounceWindow:   DefaultDebounceWindow,
		DPI:              160,
		AnimationSeconds: 0.25,
		Longpress:        true,
	}
}

// DefaultScrollFactor returns the wheel-unit-to-pixel factor for a screen
// of the given density.
func DefaultScrollFactor(dpi float64) float64 {
	return maxScrollInches * dpi
}

// LoadConfig reads a YAML config file on top of DefaultConfig. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.GesturePolicy = strings.ToLower(strings.TrimSpace(cfg.GesturePolicy))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.GesturePolicy {
	case "", PolicyCountMatch, PolicyDebounce:
	default:
		return fmt.Errorf("invalid gesture_policy %q (want %q or %q)", c.GesturePolicy, PolicyCountMatch, PolicyDebounce)
	}
	if c.DebounceWindow < 0 {
		return fmt.Errorf("invalid debounce_window %v: must not be negative", c.DebounceWindow)
	}
	if c.ScrollFactor < 0 || !isFinite(c.ScrollFactor) {
		return fmt.Errorf("invalid scroll_factor %v", c.ScrollFactor)
	}
	if c.DPI < 0 || !isFinite(c.DPI) {
		return fmt.Errorf("invalid dpi %v", c.DPI)
	}
	return nil
}

// Policy builds the configured GestureEndPolicy.
func (c Config) Policy() GestureEndPolicy {
	switch c.GesturePolicy {
	case PolicyDebounce:
		return DebouncePolicy{Window: c.DebounceWindow}
	case "", PolicyCountMatch:
		return CountMatchPolicy{}
	default:
		Logger().Warn("unknown gesture policy, using count-match", "policy", c.GesturePolicy)
		return CountMatchPolicy{}
	}
}

// scrollFactor returns ScrollFactor, or the DPI-derived default when unset.
func (c Config) scrollFactor() float64 {
	if c.ScrollFactor > 0 {
		return c.ScrollFactor
	}
	dpi := c.DPI
	if dpi <= 0 {
		dpi = DefaultConfig().DPI
	}
	return DefaultScrollFactor(dpi)
}
