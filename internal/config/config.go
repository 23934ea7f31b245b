// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAdapter    = "/org/bluez/hci0"
	DefaultDurationMs = 2000
	DefaultMinRSSI    = -90
	DefaultFormat     = FormatText
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Output OutputConfig `yaml:"output"`
}

// ---- SCAN ----

type ScanConfig struct {
	Adapter    string `yaml:"adapter"`
	DurationMs int    `yaml:"duration_ms"`
	MinRSSI    int    `yaml:"min_rssi"`
}

// Duration returns the discovery window.
func (s ScanConfig) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// ---- OUTPUT ----

type OutputConfig struct {
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Adapter:    DefaultAdapter,
			DurationMs: DefaultDurationMs,
			MinRSSI:    DefaultMinRSSI,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// Load reads, validates and normalizes a YAML config file. Keys missing from
// the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file access.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	Normalize(cfg)

	return cfg, nil
}
