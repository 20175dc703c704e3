// Package hud renders the live operating-mode indicator and decides
// when a rendered update is warranted.
package hud

import "github.com/maksdoner/g4hud/internal/protocol"

// Tracker remembers the last rendered mode for one session. The scooter
// repeats the current mode several times per second, so rendering every
// notification would just be flicker. The zero value is ready to use;
// build a fresh Tracker per session so a mode never carries across
// reconnects.
type Tracker struct {
	last protocol.Mode
	seen bool
}

// Observe reports whether m differs from the last observed mode, and
// records m when it does. The first observation of a session always
// reports true.
func (t *Tracker) Observe(m protocol.Mode) bool {
	if t.seen && m == t.last {
		return false
	}
	t.last = m
	t.seen = true
	return true
}
