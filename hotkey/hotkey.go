// Package hotkey delivers global combo matches from the OS keyboard.
package hotkey

import "github.com/Hexalyse/jean-albert/keymap"

// Listener watches the system-wide keyboard and reports which configured
// combo (trigger or exit) was pressed. Matching must stay fast: no blocking
// work happens on the event-delivery path.
type Listener interface {
	Register() error
	Unregister()
	Matches() <-chan keymap.Kind
}
