// internal/config/normalize.go
package config

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Scan.Adapter == "" {
		cfg.Scan.Adapter = DefaultAdapter
	}

	// A zero window would read the device list before anything answered.
	if cfg.Scan.DurationMs == 0 {
		cfg.Scan.DurationMs = DefaultDurationMs
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
}
