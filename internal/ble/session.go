package ble

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultConnectTimeout bounds one connection attempt.
const DefaultConnectTimeout = 10 * time.Second

// NotificationHandler receives each notification payload. It runs on
// the transport's dispatch goroutine: keep it fast and non-blocking, or
// later notifications back up behind it. The payload is only valid for
// the duration of the call.
type NotificationHandler func(data []byte)

// SessionOptions configures one monitoring session.
type SessionOptions struct {
	ConnectTimeout time.Duration
}

// DefaultSessionOptions returns sensible defaults.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{ConnectTimeout: DefaultConnectTimeout}
}

// RunSession runs one connect-subscribe-listen-close cycle against the
// device at address. It subscribes handler to the mode notification
// characteristic and then blocks until ctx is cancelled; there is no
// work of its own in between. The connection is released on every exit
// path. RunSession never retries — the caller decides whether to start
// another session.
func RunSession(ctx context.Context, adapter Adapter, address string, handler NotificationHandler, opts SessionOptions) error {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}

	if err := adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable adapter: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	conn, err := adapter.Connect(connectCtx, address)
	if err != nil {
		return fmt.Errorf("ble: connect to %s: %w", address, err)
	}
	defer func() { _ = conn.Disconnect() }()

	// Some backends report success before the link is usable; their own
	// status check is authoritative.
	if !conn.Connected() {
		return fmt.Errorf("ble: connect to %s: link not established", address)
	}
	slog.Info("[BLE] connected", "address", address)

	char, err := conn.DiscoverCharacteristic(ServiceUUID, NotifyCharUUID)
	if err != nil {
		return fmt.Errorf("ble: discover notify characteristic: %w", err)
	}
	if err := char.Subscribe(handler); err != nil {
		return fmt.Errorf("ble: subscribe: %w", err)
	}
	slog.Info("[BLE] subscribed", "characteristic", NotifyCharUUID)

	<-ctx.Done()

	// Best effort: the peer may have dropped the link already, and a
	// failed unsubscribe must not stop the disconnect below.
	if err := char.Unsubscribe(); err != nil {
		slog.Debug("[BLE] unsubscribe failed during teardown", "error", err)
	}
	return nil
}
