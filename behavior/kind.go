package behavior

import (
	"fmt"
	"strings"
)

// Kind identifies one behavior state in the closed set.
type Kind uint8

const (
	Idle Kind = iota
	Patrol
	Pursue
	Attack
	AlertedChase
	Blind
	Wander
	Chase
	Cry
	numKinds
)

var kindNames = [numKinds]string{
	Idle:         "idle",
	Patrol:       "patrol",
	Pursue:       "pursue",
	Attack:       "attack",
	AlertedChase: "alerted_chase",
	Blind:        "blind",
	Wander:       "wander",
	Chase:        "chase",
	Cry:          "cry",
}

// Visual cue identifiers sent to the presenter when a state is entered.
var kindCues = [numKinds]string{
	Idle:         "white",
	Patrol:       "green",
	Pursue:       "orange",
	Attack:       "maroon",
	AlertedChase: "purple",
	Blind:        "gray",
	Wander:       "cyan",
	Chase:        "red",
	Cry:          "blue",
}

// Kinds lists every state kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k names a known state.
func (k Kind) Valid() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Cue returns the presentation identifier emitted when the state is entered.
func (k Kind) Cue() string {
	if !k.Valid() {
		return ""
	}
	return kindCues[k]
}

// ParseKind maps a state name (case-insensitive) to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler so kinds read well in
// YAML and CSV output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
