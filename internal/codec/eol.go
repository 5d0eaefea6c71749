package codec

// EOLMode identifies the line-ending convention the editor inserts for
// new lines. It is independent of the EOL bytes already present in
// loaded content.
type EOLMode uint8

const (
	// CRLF is the Windows-style "\r\n" convention (and the default).
	CRLF EOLMode = iota
	// LF is the Unix-style "\n" convention.
	LF
	// CR is the old Mac-style "\r" convention.
	CR
)

// String returns the status-bar label for the EOL mode.
func (m EOLMode) String() string {
	switch m {
	case LF:
		return "LF"
	case CR:
		return "CR"
	default:
		return "CRLF"
	}
}

// Sequence returns the actual line-ending bytes.
func (m EOLMode) Sequence() string {
	switch m {
	case LF:
		return "\n"
	case CR:
		return "\r"
	default:
		return "\r\n"
	}
}

// ParseEOLMode maps a status-bar label back to an EOLMode, falling back
// to CRLF for anything unrecognized.
func ParseEOLMode(label string) EOLMode {
	switch label {
	case "LF":
		return LF
	case "CR":
		return CR
	default:
		return CRLF
	}
}

// DetectEOL returns the dominant line-ending style of UTF-8 text.
//
// A single forward scan counts three disjoint patterns: "\r\n" advances
// two bytes and counts one CRLF unit, a lone "\r" counts as CR, a lone
// "\n" counts as LF. CRLF wins ties with LF and CR, and LF wins ties
// with CR; text without any line endings defaults to CRLF. The order is
// fixed so detection is deterministic.
func DetectEOL(utf8Content []byte) EOLMode {
	var crlf, lf, cr int
	for i := 0; i < len(utf8Content); i++ {
		switch utf8Content[i] {
		case '\r':
			if i+1 < len(utf8Content) && utf8Content[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}
	switch {
	case crlf >= lf && crlf >= cr:
		return CRLF
	case lf >= cr:
		return LF
	default:
		return CR
	}
}
