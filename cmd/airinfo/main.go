// airinfo prints the battery, charging and in-ear status of nearby AirPods
// and Beats accessories.
//
// It starts a short BLE discovery through BlueZ, reads the Apple
// manufacturer data of every discovered device and decodes the ones that
// carry pod status. No connection to the accessory is made.
//
// Usage:
//
//	go run ./cmd/airinfo [-config airinfo.yaml] [-format text|json|yaml] [-timeout 10s]
//	go run ./cmd/airinfo -hex 0719010e20...   # decode a captured payload, no Bluetooth needed
//
// Requirements (scan mode):
//   - BlueZ Bluetooth stack must be running
//   - The adapter must be powered on
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"airinfo/internal/ble"
	"airinfo/internal/config"
	"airinfo/internal/pod"
	"airinfo/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file")
	format := flag.String("format", "", "output format: text, json or yaml (overrides config)")
	payload := flag.String("hex", "", "decode this hex encoded manufacturer data instead of scanning")
	timeout := flag.Duration("timeout", 10*time.Second, "give up scanning after this long")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Printf("Failed to load config: %v", err)
			return 1
		}
	}
	if *format != "" {
		cfg.Output.Format = *format
		if err := config.Validate(cfg); err != nil {
			log.Printf("Invalid flags: %v", err)
			return 1
		}
	}

	var (
		found []ble.Found
		err   error
	)
	if *payload != "" {
		found, err = decodeHex(*payload)
	} else {
		found, err = scan(cfg, *timeout)
	}
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}

	if err := report.Write(os.Stdout, cfg.Output.Format, found); err != nil {
		log.Printf("Failed to write output: %v", err)
		return 1
	}
	return 0
}

// decodeHex decodes a payload given on the command line. Separators such as
// spaces and colons are ignored.
func decodeHex(s string) ([]ble.Found, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload: %w", err)
	}

	p, err := pod.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return []ble.Found{{Raw: hex.EncodeToString(data), Pod: p}}, nil
}

// scan runs one discovery window on the configured adapter.
func scan(cfg *config.Config, timeout time.Duration) ([]ble.Found, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Handle Ctrl+C
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner, err := ble.NewScanner(cfg.Scan.Adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}
	defer scanner.Close()

	log.Printf("Scanning on %s for %s...", cfg.Scan.Adapter, cfg.Scan.Duration())

	filter := ble.DefaultFilter()
	filter.MinRSSI = int16(cfg.Scan.MinRSSI)

	return ble.FindPods(ctx, scanner, ble.Options{
		ScanDuration: cfg.Scan.Duration(),
		Filter:       filter,
	})
}
