package hud

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/maksdoner/g4hud/internal/protocol"
)

var (
	ecoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	sportStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	raceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer writes the single-line mode indicator, overwriting it in
// place with a carriage return instead of scrolling. One line per mode
// is built up front so the notification path is a plain write; the
// trailing padding lets a shorter mode name fully cover a longer one.
type Renderer struct {
	out   io.Writer
	lines map[protocol.Mode]string
}

// NewRenderer builds a Renderer targeting out.
func NewRenderer(out io.Writer) *Renderer {
	pad := strings.Repeat(" ", 12)
	return &Renderer{
		out: out,
		lines: map[protocol.Mode]string{
			protocol.ModeEco:   "\rMODE: " + ecoStyle.Render(protocol.ModeEco.String()) + pad,
			protocol.ModeSport: "\rMODE: " + sportStyle.Render(protocol.ModeSport.String()) + pad,
			protocol.ModeRace:  "\rMODE: " + raceStyle.Render(protocol.ModeRace.String()) + pad,
		},
	}
}

// Render writes the indicator line for m. Modes without a prepared line
// write nothing.
func (r *Renderer) Render(m protocol.Mode) {
	line, ok := r.lines[m]
	if !ok {
		return
	}
	io.WriteString(r.out, line)
}

// Status prints a dim, timestamped progress line for the interactive
// flow (scanning, connecting, subscribing).
func Status(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	stamp := time.Now().Format("15:04:05")
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("[%s] %s", stamp, msg)))
}
