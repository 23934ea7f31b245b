package ble

import "airinfo/internal/pod"

const (
	// AppleCompanyID is the Bluetooth SIG company identifier for Apple.
	AppleCompanyID = 0x004C
	// DefaultMinRSSI drops advertisements from accessories too far away to
	// be the user's own.
	DefaultMinRSSI = -90
)

// Filter selects the advertisements that carry pod status.
type Filter struct {
	CompanyID uint16
	MinRSSI   int16
}

// DefaultFilter accepts 27-byte Apple manufacturer data at -90 dBm or better.
func DefaultFilter() Filter {
	return Filter{
		CompanyID: AppleCompanyID,
		MinRSSI:   DefaultMinRSSI,
	}
}

// Accept returns the packet carried by ad. The manufacturer data must be
// exactly pod.PacketLength bytes; an advertisement without an RSSI is only
// checked for its manufacturer data.
func (f Filter) Accept(ad Advertisement) (pod.Packet, bool) {
	if ad.RSSI != nil && *ad.RSSI < f.MinRSSI {
		return pod.Packet{}, false
	}

	data, ok := ad.ManufacturerData[f.CompanyID]
	if !ok || len(data) != pod.PacketLength {
		return pod.Packet{}, false
	}
	return pod.Packet(data), true
}
