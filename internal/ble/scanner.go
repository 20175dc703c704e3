package ble

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultScanWindow is how long one discovery pass collects advertisements.
const DefaultScanWindow = 6 * time.Second

// ScanDevices runs one time-boxed discovery window and returns every
// peripheral seen, strongest signal first. Repeated advertisements from
// one address collapse into a single entry with the latest one winning,
// since both name and RSSI can change between packets. Devices that
// never reported an RSSI sort last. An empty result is not an error;
// the caller decides whether to rescan.
func ScanDevices(ctx context.Context, adapter Adapter, window time.Duration) ([]Device, error) {
	if window <= 0 {
		window = DefaultScanWindow
	}
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("ble: enable adapter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	// Adapter.Scan delivers events sequentially and returns after the
	// last callback, so the map needs no lock.
	found := make(map[string]Device)
	if err := adapter.Scan(ctx, func(d Device) {
		found[d.Address] = d
	}); err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(found))
	for _, d := range found {
		devices = append(devices, d)
	}
	sort.SliceStable(devices, func(i, j int) bool {
		return rssiKey(devices[i]) > rssiKey(devices[j])
	})
	return devices, nil
}

// rssiKey orders devices for display. Unknown signal strength counts as
// the weakest possible value so those devices never outrank a measured
// one.
func rssiKey(d Device) int16 {
	if !d.HasRSSI {
		return math.MinInt16
	}
	return d.RSSI
}
