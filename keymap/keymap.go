// Package keymap defines key combinations and the matcher that detects
// them in a raw keyboard event stream.
package keymap

import "strings"

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
)

// Key is a non-modifier key symbol: an uppercase letter 'A'..'Z' or a
// digit '0'..'9'. The zero value means "no key".
type Key byte

const KeyNone Key = 0

// Combo is an immutable modifier-set plus trigger-key definition.
type Combo struct {
	Mods Modifier
	Key  Key
}

// Kind identifies which configured combo matched.
type Kind int

const (
	KindNone Kind = iota
	KindTrigger
	KindExit
)

func (k Kind) String() string {
	switch k {
	case KindTrigger:
		return "trigger"
	case KindExit:
		return "exit"
	default:
		return "none"
	}
}

// Event is one raw key transition. Exactly one of Mod and Key is set.
type Event struct {
	Mod   Modifier
	Key   Key
	Press bool
}

func (c Combo) String() string {
	var parts []string
	if c.Mods&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if c.Mods&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if c.Mods&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if c.Key != KeyNone {
		parts = append(parts, string(byte(c.Key)))
	}
	return strings.Join(parts, "+")
}
