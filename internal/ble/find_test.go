package ble

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airinfo/internal/pod"
)

type fakeSource struct {
	ads      []Advertisement
	startErr error
	listErr  error
	started  bool
	stopped  bool
}

func (f *fakeSource) StartDiscovery() error {
	f.started = true
	return f.startErr
}

func (f *fakeSource) StopDiscovery() error {
	f.stopped = true
	return nil
}

func (f *fakeSource) Advertisements() ([]Advertisement, error) {
	return f.ads, f.listErr
}

// airPodsPro is manufacturer data of AirPods Pro with both buds at 100% and
// the case charging at 50%.
func airPodsPro() []byte {
	data := make([]byte, pod.PacketLength)
	copy(data, []byte{0x07, 0x19, 0x01, 0x0E, 0x20, 0x20, 0xAA, 0x45})
	return data
}

func TestFindPods(t *testing.T) {
	src := &fakeSource{ads: []Advertisement{
		{Address: "BB:00", RSSI: rssi(-40), ManufacturerData: map[uint16][]byte{AppleCompanyID: airPodsPro()}},
		{Address: "AA:00", RSSI: rssi(-60), ManufacturerData: map[uint16][]byte{AppleCompanyID: airPodsPro()}},
		{Address: "CC:00", RSSI: rssi(-99), ManufacturerData: map[uint16][]byte{AppleCompanyID: airPodsPro()}},
		{Address: "DD:00", ManufacturerData: map[uint16][]byte{AppleCompanyID: {0x10, 0x05}}},
	}}

	found, err := FindPods(context.Background(), src, Options{ScanDuration: time.Millisecond})
	require.NoError(t, err)
	assert.True(t, src.started)
	assert.True(t, src.stopped)

	require.Len(t, found, 2)
	assert.Equal(t, "AA:00", found[0].Address)
	assert.Equal(t, "BB:00", found[1].Address)

	p := found[0].Pod
	assert.Equal(t, pod.ModelAirPodsPro, p.Model)
	require.NotNil(t, p.Left)
	require.NotNil(t, p.Right)
	require.NotNil(t, p.Case)
	assert.Equal(t, uint8(100), p.Left.Battery)
	assert.Equal(t, uint8(100), p.Right.Battery)
	assert.Equal(t, uint8(50), p.Case.Battery)
	assert.True(t, p.Case.Charging)
	assert.Equal(t, "0719010e2020aa45", found[0].Raw[:16])
	assert.Len(t, found[0].Raw, 2*pod.PacketLength)
}

func TestFindPods_StartError(t *testing.T) {
	src := &fakeSource{startErr: errors.New("adapter not powered")}

	_, err := FindPods(context.Background(), src, Options{ScanDuration: time.Millisecond})
	assert.EqualError(t, err, "adapter not powered")
	assert.False(t, src.stopped)
}

func TestFindPods_ListError(t *testing.T) {
	src := &fakeSource{listErr: errors.New("bus closed")}

	_, err := FindPods(context.Background(), src, Options{ScanDuration: time.Millisecond})
	assert.ErrorContains(t, err, "list advertisements: bus closed")
	assert.True(t, src.stopped)
}

func TestFindPods_Cancelled(t *testing.T) {
	src := &fakeSource{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindPods(ctx, src, Options{ScanDuration: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, src.stopped)
}
