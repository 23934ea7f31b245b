package pod

// Status nibble offsets. The layout is reverse engineered; slot A and slot B
// are the two earpieces before the swap bit has been applied.
const (
	nibbleSwap         = 10
	nibbleInEar        = 11
	nibbleBatterySlotB = 12
	nibbleBatterySlotA = 13
	nibbleCharging     = 14
	nibbleBatteryCase  = 15
)

// Bits within the charging, in-ear and swap nibbles.
const (
	chargingSlotA = 0x1
	chargingSlotB = 0x2
	chargingCase  = 0x4

	inEarSlotA = 0x2
	inEarSlotB = 0x8

	// swapInOrder is set when slot A already is the left earpiece.
	swapInOrder = 0x2
)

// disconnectedBattery is the decoded battery value of a 0xF nibble, which
// the accessory sends for a unit that is not reporting.
const disconnectedBattery = 150

// Device is the status of a single earpiece or case.
type Device struct {
	// Battery level in percent, a multiple of 10.
	Battery  uint8 `json:"battery" yaml:"battery"`
	Charging bool  `json:"charging" yaml:"charging"`
	// InEar is nil for a case, which has no worn state.
	InEar *bool `json:"in_ear,omitempty" yaml:"in_ear,omitempty"`
}

// rawDevice is a decoded slot that may still carry the disconnected value.
type rawDevice struct {
	battery  int
	charging bool
	inEar    *bool
}

func newRawDevice(batteryNibble uint8, charging bool, inEar *bool) rawDevice {
	return rawDevice{
		battery:  int(batteryNibble) * 10,
		charging: charging,
		inEar:    inEar,
	}
}

// present returns the device, or nil when the slot reported the
// disconnected value.
func (d rawDevice) present() *Device {
	if d.battery == disconnectedBattery {
		return nil
	}
	return &Device{
		Battery:  uint8(d.battery),
		Charging: d.charging,
		InEar:    d.inEar,
	}
}

// decodeDevices reads slot A, slot B and the case from their fixed offsets.
func decodeDevices(n Nibbles) [3]rawDevice {
	charging := n[nibbleCharging]
	inEar := n[nibbleInEar]

	slotA := newRawDevice(n[nibbleBatterySlotA], charging&chargingSlotA != 0, boolPtr(inEar&inEarSlotA != 0))
	slotB := newRawDevice(n[nibbleBatterySlotB], charging&chargingSlotB != 0, boolPtr(inEar&inEarSlotB != 0))
	box := newRawDevice(n[nibbleBatteryCase], charging&chargingCase != 0, nil)

	return [3]rawDevice{slotA, slotB, box}
}

// resolveSwap orders the earpieces as left, right. The accessory reports them
// reversed when the swap bit is clear.
func resolveSwap(n Nibbles, devices [3]rawDevice) [3]rawDevice {
	if n[nibbleSwap]&swapInOrder == 0 {
		devices[0], devices[1] = devices[1], devices[0]
	}
	return devices
}

func boolPtr(b bool) *bool {
	return &b
}
