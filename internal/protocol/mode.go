// Package protocol decodes the KuKirin G4 notification frames delivered
// on the FFF2 characteristic. The characteristic multiplexes several
// message kinds; the only one this package understands is the operating
// mode update, identified by a zero gate byte.
package protocol

// Frame layout, observed from live traffic. The gate byte is an opaque
// discriminator: frames carrying a nonzero value at offset 6 are other
// message kinds sharing the characteristic.
const (
	GateOffset = 6
	GateValue  = 0x00
	ModeOffset = 5
)

// Mode is the scooter's operating profile.
type Mode uint8

const (
	ModeEco Mode = iota + 1
	ModeSport
	ModeRace
)

func (m Mode) String() string {
	switch m {
	case ModeEco:
		return "ECO"
	case ModeSport:
		return "SPORT"
	case ModeRace:
		return "RACE"
	default:
		return "UNKNOWN"
	}
}

// DecodeMode extracts the operating mode from a notification frame.
// Frames too short to carry both the gate and mode bytes, frames that
// fail the gate check, and unrecognized mode codes all return ok=false.
// None of these are errors: foreign traffic on the characteristic is
// expected, and future firmware may emit mode codes this build does not
// know. DecodeMode never retains the frame.
func DecodeMode(frame []byte) (Mode, bool) {
	if len(frame) <= GateOffset {
		return 0, false
	}
	if frame[GateOffset] != GateValue {
		return 0, false
	}
	switch frame[ModeOffset] {
	case 0x01:
		return ModeEco, true
	case 0x02:
		return ModeSport, true
	case 0x03:
		return ModeRace, true
	}
	return 0, false
}
