// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// SCAN
	// ------------------------------------------------------------

	adapter := cfg.Scan.Adapter
	if adapter != "" {
		if !dbus.ObjectPath(adapter).IsValid() {
			return fmt.Errorf("scan.adapter %q is not a valid D-Bus object path", adapter)
		}
		if !strings.HasPrefix(adapter, "/org/bluez/") {
			return fmt.Errorf("scan.adapter %q is not a BlueZ adapter path", adapter)
		}
	}

	if cfg.Scan.DurationMs < 0 {
		return fmt.Errorf("scan.duration_ms must be >= 0, got %d", cfg.Scan.DurationMs)
	}

	// RSSI is a signed byte in dBm; BlueZ reports 127 as "unknown".
	if cfg.Scan.MinRSSI < -127 || cfg.Scan.MinRSSI > 20 {
		return fmt.Errorf("scan.min_rssi must be in [-127, 20], got %d", cfg.Scan.MinRSSI)
	}

	// ------------------------------------------------------------
	// OUTPUT
	// ------------------------------------------------------------

	switch cfg.Output.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format %q is not one of text, json, yaml", cfg.Output.Format)
	}

	return nil
}
