// Package ble finds AirPods and Beats accessories by scanning for Bluetooth
// Low Energy advertisements through BlueZ.
//
// No connection to the accessory is made; the status is read from the Apple
// manufacturer data (company ID 0x004C) that BlueZ caches for every
// discovered device. This works even while the accessory is connected to
// another device such as an iPhone.
//
// The implementation uses the BlueZ D-Bus API to:
//   - Start LE discovery on an adapter
//   - List discovered devices with ObjectManager.GetManagedObjects
//   - Hand each device's manufacturer data and RSSI to a Filter
package ble

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	bluezService        = "org.bluez"
	adapterIface        = "org.bluez.Adapter1"
	deviceIface         = "org.bluez.Device1"
	objectManagerMethod = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
	DefaultAdapterPath  = "/org/bluez/hci0"
)

// Advertisement is the subset of a BlueZ device's properties needed to find
// pods.
type Advertisement struct {
	Path    string
	Address string
	Alias   string
	// RSSI is nil when BlueZ has no signal strength for the device.
	RSSI             *int16
	ManufacturerData map[uint16][]byte
}

// Scanner handles BLE discovery on a single BlueZ adapter.
type Scanner struct {
	conn    *dbus.Conn
	adapter dbus.ObjectPath
}

// NewScanner connects to the system bus. adapterPath selects the adapter,
// e.g. /org/bluez/hci0.
func NewScanner(adapterPath string) (*Scanner, error) {
	if adapterPath == "" {
		adapterPath = DefaultAdapterPath
	}
	path := dbus.ObjectPath(adapterPath)
	if !path.IsValid() {
		return nil, fmt.Errorf("invalid adapter path %q", adapterPath)
	}

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	return &Scanner{
		conn:    conn,
		adapter: path,
	}, nil
}

// StartDiscovery begins BLE scanning
func (s *Scanner) StartDiscovery() error {
	obj := s.conn.Object(bluezService, s.adapter)

	// Set discovery filter for LE only
	filter := map[string]interface{}{
		"Transport": "le",
	}

	if err := obj.Call(adapterIface+".SetDiscoveryFilter", 0, filter).Err; err != nil {
		return fmt.Errorf("failed to set discovery filter: %w", err)
	}

	if err := obj.Call(adapterIface+".StartDiscovery", 0).Err; err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}

	return nil
}

// StopDiscovery stops BLE scanning
func (s *Scanner) StopDiscovery() error {
	obj := s.conn.Object(bluezService, s.adapter)
	return obj.Call(adapterIface+".StopDiscovery", 0).Err
}

// Advertisements returns every device BlueZ has discovered on the adapter.
func (s *Scanner) Advertisements() ([]Advertisement, error) {
	obj := s.conn.Object(bluezService, "/")
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

	if err := obj.Call(objectManagerMethod, 0).Store(&objects); err != nil {
		return nil, fmt.Errorf("failed to get managed objects: %w", err)
	}

	prefix := string(s.adapter) + "/"
	var ads []Advertisement
	for path, interfaces := range objects {
		props, ok := interfaces[deviceIface]
		if !ok || !strings.HasPrefix(string(path), prefix) {
			continue
		}
		ads = append(ads, advertisementFromProps(string(path), props))
	}
	return ads, nil
}

// Close closes the scanner
func (s *Scanner) Close() error {
	return s.conn.Close()
}

func advertisementFromProps(path string, props map[string]dbus.Variant) Advertisement {
	ad := Advertisement{
		Path:    path,
		Address: getStringProp(props, "Address"),
		Alias:   getStringProp(props, "Alias"),
	}

	if v, ok := props["RSSI"]; ok {
		if rssi, ok := v.Value().(int16); ok {
			ad.RSSI = &rssi
		}
	}

	if v, ok := props["ManufacturerData"]; ok {
		if mfg, ok := v.Value().(map[uint16]dbus.Variant); ok {
			ad.ManufacturerData = make(map[uint16][]byte, len(mfg))
			for id, data := range mfg {
				if b, ok := data.Value().([]byte); ok {
					ad.ManufacturerData[id] = b
				}
			}
		}
	}

	return ad
}

func getStringProp(props map[string]dbus.Variant, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}
