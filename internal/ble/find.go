package ble

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"airinfo/internal/pod"
)

// DefaultScanDuration is how long discovery runs before the discovered
// devices are read. Accessories need a moment to answer.
const DefaultScanDuration = 2 * time.Second

// Source lists advertisements from an adapter. *Scanner implements it.
type Source interface {
	StartDiscovery() error
	StopDiscovery() error
	Advertisements() ([]Advertisement, error)
}

// Options configures FindPods.
type Options struct {
	ScanDuration time.Duration
	Filter       Filter
}

// Found is a pod decoded from one advertisement.
type Found struct {
	Address string  `json:"address" yaml:"address"`
	Alias   string  `json:"alias,omitempty" yaml:"alias,omitempty"`
	RSSI    *int16  `json:"rssi,omitempty" yaml:"rssi,omitempty"`
	Raw     string  `json:"raw" yaml:"raw"`
	Pod     pod.Pod `json:"pod" yaml:"pod"`
}

// FindPods runs one discovery window on src and decodes every advertisement
// that passes the filter. Results are ordered by address.
func FindPods(ctx context.Context, src Source, opts Options) ([]Found, error) {
	if opts.ScanDuration <= 0 {
		opts.ScanDuration = DefaultScanDuration
	}
	if opts.Filter == (Filter{}) {
		opts.Filter = DefaultFilter()
	}

	if err := src.StartDiscovery(); err != nil {
		return nil, err
	}
	defer func() {
		if err := src.StopDiscovery(); err != nil {
			log.Printf("Stop discovery: %v", err)
		}
	}()

	timer := time.NewTimer(opts.ScanDuration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	ads, err := src.Advertisements()
	if err != nil {
		return nil, fmt.Errorf("list advertisements: %w", err)
	}

	var found []Found
	for _, ad := range ads {
		pkt, ok := opts.Filter.Accept(ad)
		if !ok {
			continue
		}
		found = append(found, Found{
			Address: ad.Address,
			Alias:   ad.Alias,
			RSSI:    ad.RSSI,
			Raw:     fmt.Sprintf("%x", pkt[:]),
			Pod:     pod.Parse(pkt),
		})
	}

	if len(found) == 0 {
		log.Println("No pods found in this scan window")
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Address < found[j].Address
	})
	return found, nil
}
