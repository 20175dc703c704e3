// Package ble drives the scooter's Bluetooth Low Energy link: scanning
// for nearby peripherals, and one read-only notification session at a
// time. It never writes to the device.
package ble

import "context"

// KuKirin G4 BLE UUIDs. Mode updates arrive as notifications on FFF2
// inside the vendor FFF0 service.
const (
	ServiceUUID    = "0000fff0-0000-1000-8000-00805f9b34fb"
	NotifyCharUUID = "0000fff2-0000-1000-8000-00805f9b34fb"
)

// Device represents a BLE peripheral seen in an advertisement. Address
// is a MAC address on Linux and a CoreBluetooth UUID string on macOS;
// either way it is stable for the run and unique per peripheral.
// HasRSSI is false when the backend had no signal measurement for the
// advertisement.
type Device struct {
	Address string
	Name    string
	RSSI    int16
	HasRSSI bool
}

// Characteristic represents a BLE GATT characteristic.
type Characteristic interface {
	// Subscribe registers a callback for notifications on this
	// characteristic. The callback runs on the transport's dispatch
	// goroutine, one notification at a time, in delivery order; it must
	// not block, and must not retain the payload slice.
	Subscribe(callback func(data []byte)) error
	// Unsubscribe stops notification delivery.
	Unsubscribe() error
}

// Connection represents an active BLE connection to a peripheral.
type Connection interface {
	// Connected reports whether the transport still considers the link
	// up. This check is authoritative: a Connect that returned without
	// error can still leave a dead link behind on some backends.
	Connected() bool
	// DiscoverCharacteristic finds a characteristic by UUID within a service.
	DiscoverCharacteristic(serviceUUID, charUUID string) (Characteristic, error)
	// Disconnect terminates the connection.
	Disconnect() error
}

// Adapter abstracts the BLE hardware adapter for testing.
type Adapter interface {
	// Enable powers on the BLE adapter.
	Enable() error
	// Scan streams advertisement events to onAdv until ctx is done.
	// Events are delivered sequentially on a single goroutine, and Scan
	// returns only after the last callback has completed, so onAdv may
	// touch caller state without locking.
	Scan(ctx context.Context, onAdv func(Device)) error
	// Connect establishes a connection to the device at the given
	// address, honoring ctx's deadline.
	Connect(ctx context.Context, address string) (Connection, error)
}
