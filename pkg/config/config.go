// Package config loads the optional elevation.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resolve"
	"github.com/go-drift/elevation/pkg/shadow"
)

// FileName is the settings file looked up in a resource directory.
const FileName = "elevation.yaml"

// Settings represents the optional elevation.yaml configuration.
type Settings struct {
	Density  float64        `yaml:"density,omitempty"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Resolver ResolverConfig `yaml:"resolver"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ShadowConfig contains shadow tint settings.
type ShadowConfig struct {
	StartColor string   `yaml:"start_color,omitempty"`
	EndColor   string   `yaml:"end_color,omitempty"`
	InsetDP    *float64 `yaml:"inset_dp,omitempty"`
}

// ResolverConfig contains background resolution settings.
type ResolverConfig struct {
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// LoggingConfig contains console logging settings.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains settings with defaults applied.
type Resolved struct {
	Root       string
	Density    float64
	StartColor graphics.Color
	EndColor   graphics.Color
	InsetDP    float64
	MaxDepth   int
	LogLevel   string
}

// LoadOptional reads elevation.yaml from dir if present.
func LoadOptional(dir string) (*Settings, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// LoadFile reads settings from an explicit path. Unlike LoadOptional a
// missing file is an error.
func LoadFile(path string) (*Resolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	r, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	r.Root = filepath.Dir(path)
	return r, nil
}

// Parse decodes settings from yaml data.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &s, nil
}

// Resolve loads elevation.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	s, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	r, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	r.Root = dir
	return r, nil
}

// Resolve applies defaults and validates the settings.
func (s *Settings) Resolve() (*Resolved, error) {
	r := &Resolved{
		Density:    s.Density,
		StartColor: shadow.DefaultStartColor,
		EndColor:   shadow.DefaultEndColor,
		InsetDP:    1,
		MaxDepth:   s.Resolver.MaxDepth,
		LogLevel:   strings.ToLower(strings.TrimSpace(s.Logging.Level)),
	}

	if r.Density == 0 {
		r.Density = 1
	}
	if r.Density < 0 {
		return nil, fmt.Errorf("invalid density %v, must be > 0", s.Density)
	}

	var err error
	if v := strings.TrimSpace(s.Shadow.StartColor); v != "" {
		if r.StartColor, err = graphics.ParseColor(v); err != nil {
			return nil, fmt.Errorf("invalid shadow.start_color: %w", err)
		}
	}
	if v := strings.TrimSpace(s.Shadow.EndColor); v != "" {
		if r.EndColor, err = graphics.ParseColor(v); err != nil {
			return nil, fmt.Errorf("invalid shadow.end_color: %w", err)
		}
	}

	if s.Shadow.InsetDP != nil {
		if *s.Shadow.InsetDP < 0 {
			return nil, fmt.Errorf("invalid shadow.inset_dp %v, must be >= 0", *s.Shadow.InsetDP)
		}
		r.InsetDP = *s.Shadow.InsetDP
	}

	if r.MaxDepth == 0 {
		r.MaxDepth = resolve.DefaultMaxDepth
	}
	if r.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid resolver.max_depth %d, must be > 0", r.MaxDepth)
	}

	switch r.LogLevel {
	case "":
		r.LogLevel = "normal"
	case "none", "normal", "debug":
	default:
		return nil, fmt.Errorf("invalid logging.level %q, must be one of none, normal, debug", s.Logging.Level)
	}
	return r, nil
}

// Metrics converts the resolved settings to shadow metrics.
func (r *Resolved) Metrics() shadow.Metrics {
	return shadow.Metrics{
		InsetShadow: int(r.InsetDP * r.Density),
		StartColor:  r.StartColor,
		EndColor:    r.EndColor,
	}
}
