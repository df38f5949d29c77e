package event

// Type is the phase of a key event as reported by a backend.
type Type int

const (
	Press   Type = iota // key went down
	Release             // key went up
	Hold                // key still down, repeated by the backend
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	}
	return "unknown"
}
