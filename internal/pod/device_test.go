package pod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDevices_Bits(t *testing.T) {
	tests := []struct {
		name            string
		charging, inEar uint8
		wantCharging    [3]bool
		wantInEarA      bool
		wantInEarB      bool
	}{
		{name: "nothing", charging: 0x0, inEar: 0x0},
		{name: "slot a", charging: 0x1, inEar: 0x2, wantCharging: [3]bool{true, false, false}, wantInEarA: true},
		{name: "slot b", charging: 0x2, inEar: 0x8, wantCharging: [3]bool{false, true, false}, wantInEarB: true},
		{name: "case", charging: 0x4, inEar: 0x5, wantCharging: [3]bool{false, false, true}},
		{name: "all", charging: 0xF, inEar: 0xF, wantCharging: [3]bool{true, true, true}, wantInEarA: true, wantInEarB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Nibbles
			n[nibbleCharging] = tt.charging
			n[nibbleInEar] = tt.inEar

			devices := decodeDevices(n)
			for i, d := range devices {
				assert.Equal(t, tt.wantCharging[i], d.charging, "slot %d", i)
			}
			require.NotNil(t, devices[0].inEar)
			require.NotNil(t, devices[1].inEar)
			assert.Equal(t, tt.wantInEarA, *devices[0].inEar)
			assert.Equal(t, tt.wantInEarB, *devices[1].inEar)
			assert.Nil(t, devices[2].inEar)
		})
	}
}

func TestDecodeDevices_Battery(t *testing.T) {
	var n Nibbles
	n[nibbleBatterySlotA] = 0x9
	n[nibbleBatterySlotB] = 0x0
	n[nibbleBatteryCase] = 0xF

	devices := decodeDevices(n)
	assert.Equal(t, 90, devices[0].battery)
	assert.Equal(t, 0, devices[1].battery)
	assert.Equal(t, disconnectedBattery, devices[2].battery)

	require.NotNil(t, devices[0].present())
	require.NotNil(t, devices[1].present())
	assert.Equal(t, uint8(0), devices[1].present().Battery)
	assert.Nil(t, devices[2].present())
}

func TestResolveSwap(t *testing.T) {
	a := rawDevice{battery: 10}
	b := rawDevice{battery: 20}
	c := rawDevice{battery: 30}

	var n Nibbles
	n[nibbleSwap] = swapInOrder
	assert.Equal(t, [3]rawDevice{a, b, c}, resolveSwap(n, [3]rawDevice{a, b, c}))

	n[nibbleSwap] = 0
	assert.Equal(t, [3]rawDevice{b, a, c}, resolveSwap(n, [3]rawDevice{a, b, c}))
}
