// Package report renders scan results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"airinfo/internal/ble"
	"airinfo/internal/config"
)

// Write renders found in the given format: text, json or yaml.
func Write(w io.Writer, format string, found []ble.Found) error {
	switch format {
	case config.FormatJSON:
		if found == nil {
			found = []ble.Found{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(found); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(found); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case config.FormatText, "":
		return writeText(w, found)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, found []ble.Found) error {
	if len(found) == 0 {
		_, err := fmt.Fprintln(w, "No pods found")
		return err
	}

	for i, f := range found {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := f.Address
		if f.Alias != "" {
			header = fmt.Sprintf("%s (%s)", f.Alias, f.Address)
		}
		if f.RSSI != nil {
			header += fmt.Sprintf(" %d dBm", *f.RSSI)
		}
		if header != "" {
			if _, err := fmt.Fprintln(w, header); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, f.Pod.String()); err != nil {
			return err
		}
	}
	return nil
}
