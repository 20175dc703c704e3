package ble

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScanDevicesSortsByRSSI(t *testing.T) {
	adapter := newMockAdapter([]Device{
		{Address: "CC:CC:CC:CC:CC:CC", Name: "C"},
		{Address: "BB:BB:BB:BB:BB:BB", Name: "B", RSSI: -70, HasRSSI: true},
		{Address: "AA:AA:AA:AA:AA:AA", Name: "A", RSSI: -40, HasRSSI: true},
	})

	devices, err := ScanDevices(context.Background(), adapter, time.Second)
	if err != nil {
		t.Fatalf("ScanDevices() error = %v", err)
	}

	want := []string{"AA:AA:AA:AA:AA:AA", "BB:BB:BB:BB:BB:BB", "CC:CC:CC:CC:CC:CC"}
	if len(devices) != len(want) {
		t.Fatalf("got %d devices, want %d", len(devices), len(want))
	}
	for i, addr := range want {
		if devices[i].Address != addr {
			t.Errorf("devices[%d].Address = %q, want %q", i, devices[i].Address, addr)
		}
	}
}

func TestScanDevicesUnknownRSSINeverFirst(t *testing.T) {
	// Even a very weak measured signal outranks an unknown one.
	adapter := newMockAdapter([]Device{
		{Address: "CC:CC:CC:CC:CC:CC"},
		{Address: "DD:DD:DD:DD:DD:DD", RSSI: -120, HasRSSI: true},
	})

	devices, err := ScanDevices(context.Background(), adapter, time.Second)
	if err != nil {
		t.Fatalf("ScanDevices() error = %v", err)
	}
	if devices[0].Address != "DD:DD:DD:DD:DD:DD" {
		t.Errorf("first device = %q, want the measured one", devices[0].Address)
	}
}

func TestScanDevicesDeduplicatesByAddress(t *testing.T) {
	// Three advertisements from one device: the last one wins.
	adapter := newMockAdapter([]Device{
		{Address: "AA:AA:AA:AA:AA:AA", Name: "", RSSI: -60, HasRSSI: true},
		{Address: "AA:AA:AA:AA:AA:AA", Name: "KuKirin", RSSI: -55, HasRSSI: true},
		{Address: "AA:AA:AA:AA:AA:AA", Name: "KuKirin G4", RSSI: -52, HasRSSI: true},
	})

	devices, err := ScanDevices(context.Background(), adapter, time.Second)
	if err != nil {
		t.Fatalf("ScanDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1", len(devices))
	}
	if devices[0].Name != "KuKirin G4" {
		t.Errorf("Name = %q, want %q (last advertisement wins)", devices[0].Name, "KuKirin G4")
	}
	if devices[0].RSSI != -52 {
		t.Errorf("RSSI = %d, want -52", devices[0].RSSI)
	}
}

func TestScanDevicesEmpty(t *testing.T) {
	adapter := newMockAdapter(nil)

	devices, err := ScanDevices(context.Background(), adapter, time.Second)
	if err != nil {
		t.Fatalf("ScanDevices() error = %v", err)
	}
	if len(devices) != 0 {
		t.Fatalf("got %d devices, want 0", len(devices))
	}
}

func TestScanDevicesEnableFailure(t *testing.T) {
	adapter := newMockAdapter(nil)
	adapter.enableErr = errors.New("adapter powered off")

	if _, err := ScanDevices(context.Background(), adapter, time.Second); err == nil {
		t.Fatal("ScanDevices() error = nil, want enable failure")
	}
}
