// Package pod decodes the status broadcast by AirPods and Beats accessories
// in Apple proximity pairing advertisements.
//
// The decoder works on the 27 bytes of manufacturer data for company id 0x004C
// and reads battery, charging and in-ear state from fixed nibble offsets:
//
//	nibble  6..9   model id
//	nibble 10      bit 0x2 clear: earpieces are reported reversed
//	nibble 11      in-ear bits (0x2 slot A, 0x8 slot B)
//	nibble 12      slot B battery
//	nibble 13      slot A battery
//	nibble 14      charging bits (0x1 slot A, 0x2 slot B, 0x4 case)
//	nibble 15      case battery
//
// Battery nibbles count in steps of 10%; 0xF means the unit is not reporting
// and the slot is left nil. Decoding is total and has no shared state, so
// Parse may be called from any number of goroutines.
package pod

import (
	"errors"
	"fmt"
)

// ErrPacketLength is returned by FromBytes for data that is not exactly
// PacketLength bytes long.
var ErrPacketLength = errors.New("invalid packet length")

// Pod is the decoded status of one accessory.
type Pod struct {
	Model Model `json:"model" yaml:"model"`
	// Left earbud, nil if disconnected.
	Left *Device `json:"left" yaml:"left"`
	// Right earbud, nil if disconnected.
	Right *Device `json:"right" yaml:"right"`
	// Case, nil if disconnected or the model has no case.
	Case *Device `json:"case" yaml:"case"`
}

// Parse decodes a packet.
func Parse(p Packet) Pod {
	n := SplitNibbles(p)
	model := ParseModel(n)

	devices := resolveSwap(n, decodeDevices(n))
	left := devices[0].present()
	right := devices[1].present()
	box := devices[2].present()

	right, box = collapseSingle(model, left, right, box)

	return Pod{
		Model: model,
		Left:  left,
		Right: right,
		Case:  box,
	}
}

// FromBytes decodes manufacturer data that has not yet been checked for length.
func FromBytes(data []byte) (Pod, error) {
	if len(data) != PacketLength {
		return Pod{}, fmt.Errorf("%w: got %d bytes, want %d", ErrPacketLength, len(data), PacketLength)
	}
	return Parse(Packet(data)), nil
}

// collapseSingle mirrors the left earpiece into the right slot and drops the
// case for single earpiece models. It overrides whatever those slots decoded.
func collapseSingle(model Model, left, right, box *Device) (*Device, *Device) {
	if !model.Single() {
		return right, box
	}
	return left.clone(), nil
}

func (d *Device) clone() *Device {
	if d == nil {
		return nil
	}
	c := *d
	if d.InEar != nil {
		c.InEar = boolPtr(*d.InEar)
	}
	return &c
}

// HasBatteryData returns true if any slot is reporting.
func (p Pod) HasBatteryData() bool {
	return p.Left != nil || p.Right != nil || p.Case != nil
}

// LowestBattery returns the lower of the two earpiece levels. ok is false
// when neither earpiece is reporting.
func (p Pod) LowestBattery() (level uint8, ok bool) {
	for _, d := range []*Device{p.Left, p.Right} {
		if d == nil {
			continue
		}
		if !ok || d.Battery < level {
			level = d.Battery
		}
		ok = true
	}
	return level, ok
}
