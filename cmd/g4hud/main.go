// g4hud shows a live operating-mode indicator for a KuKirin G4 scooter.
// It is strictly read-only: scan, connect, listen to FFF2 notifications,
// and never write a byte back.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/maksdoner/g4hud/internal/ble"
	"github.com/maksdoner/g4hud/internal/config"
	"github.com/maksdoner/g4hud/internal/hud"
	"github.com/maksdoner/g4hud/internal/protocol"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "path to config file (default: ~/.config/g4hud/config.yaml)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	setupLogging(cfg.LogLevel)
	printBanner(cfg)

	adapter := ble.NewTinygoAdapter()
	if err := run(adapter, cfg); err != nil {
		log.Fatalf("g4hud: %v", err)
	}
	fmt.Println("Goodbye!")
}

// run is the interactive loop: scan, let the user pick a device, run one
// monitoring session, repeat. It owns all retrying; the scanner and the
// session never retry on their own.
func run(adapter ble.Adapter, cfg *config.Config) error {
	stdin := bufio.NewScanner(os.Stdin)
	for {
		hud.Status(os.Stdout, "Scanning for %ds… (close other BT apps)", cfg.ScanSeconds)
		devices, err := ble.ScanDevices(context.Background(), adapter, cfg.ScanWindow())
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		if len(devices) == 0 {
			fmt.Println("No BLE devices found.")
			return nil
		}

		printDeviceTable(devices)

		fmt.Printf("Choose number 1..%d (r = rescan, q = quit): ", len(devices))
		if !stdin.Scan() {
			return nil
		}
		choice := strings.ToLower(strings.TrimSpace(stdin.Text()))
		switch choice {
		case "q":
			return nil
		case "r":
			continue
		}

		i, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Println("Wrong input.")
			continue
		}
		if i < 1 || i > len(devices) {
			fmt.Println("Out of range.")
			continue
		}

		if err := monitor(adapter, devices[i-1], cfg); err != nil {
			fmt.Println("Session error:", err)
		}
		fmt.Println()
	}
}

// monitor runs one read-only session against dev. Ctrl+C ends the
// session and returns control to the selection loop.
func monitor(adapter ble.Adapter, dev ble.Device, cfg *config.Config) error {
	hud.Status(os.Stdout, "Connecting to %s (%s)… Ctrl+C to stop.", dev.Address, displayName(dev))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracker := &hud.Tracker{}
	renderer := hud.NewRenderer(os.Stdout)
	handler := func(data []byte) {
		mode, ok := protocol.DecodeMode(data)
		if !ok {
			return
		}
		if tracker.Observe(mode) {
			renderer.Render(mode)
		}
	}

	err := ble.RunSession(ctx, adapter, dev.Address, handler, ble.SessionOptions{
		ConnectTimeout: cfg.ConnectTimeout(),
	})
	fmt.Println()
	return err
}

// printDeviceTable lists scan results the way the prompt refers to them:
// 1-based index, name truncated to 24 characters, address, RSSI.
func printDeviceTable(devices []ble.Device) {
	fmt.Println("\n #  NAME                     ADDRESS                               RSSI")
	fmt.Println("--- ------------------------ ------------------------------------ -----")
	for i, d := range devices {
		name := displayName(d)
		if len(name) > 24 {
			name = name[:24]
		}
		rssi := ""
		if d.HasRSSI {
			rssi = strconv.Itoa(int(d.RSSI))
		}
		fmt.Printf("%3d %-24s %-36s %5s\n", i+1, name, d.Address, rssi)
	}
	fmt.Println()
}

func displayName(d ble.Device) string {
	if d.Name == "" {
		return "(no name)"
	}
	return d.Name
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	// Try default config path
	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	// No config file, use defaults
	return config.Default(), nil
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config) {
	fmt.Println("=== g4hud (read-only) ===")
	fmt.Printf("  Scan:    %ds\n", cfg.ScanSeconds)
	fmt.Printf("  Connect: %ds timeout\n", cfg.ConnectTimeoutSeconds)
	fmt.Printf("  Char:    %s\n", ble.NotifyCharUUID)
	fmt.Printf("  Log:     %s\n", cfg.LogLevel)
	fmt.Println("=========================")
}
