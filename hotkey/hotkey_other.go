//go:build !linux

package hotkey

import (
	"fmt"

	xhotkey "golang.design/x/hotkey"

	"github.com/Hexalyse/jean-albert/keymap"
)

// xListener registers both combos with the OS through golang.design/x/hotkey.
// OS-level registration already matches modifiers exactly, so the shared
// matcher is not needed on this path.
type xListener struct {
	trigger *xhotkey.Hotkey
	exit    *xhotkey.Hotkey
	matches chan keymap.Kind
	stop    chan struct{}
}

func New(trigger, exit keymap.Combo) Listener {
	return &xListener{
		trigger: newXHotkey(trigger),
		exit:    newXHotkey(exit),
		matches: make(chan keymap.Kind, 4),
		stop:    make(chan struct{}),
	}
}

func newXHotkey(combo keymap.Combo) *xhotkey.Hotkey {
	var mods []xhotkey.Modifier
	if combo.Mods&keymap.ModCtrl != 0 {
		mods = append(mods, xhotkey.ModCtrl)
	}
	if combo.Mods&keymap.ModShift != 0 {
		mods = append(mods, xhotkey.ModShift)
	}
	if combo.Mods&keymap.ModAlt != 0 {
		mods = append(mods, modAlt)
	}
	return xhotkey.New(mods, xKeys[combo.Key])
}

func (l *xListener) Register() error {
	if err := l.trigger.Register(); err != nil {
		return fmt.Errorf("registering trigger combo: %w", err)
	}
	if err := l.exit.Register(); err != nil {
		l.trigger.Unregister()
		return fmt.Errorf("registering exit combo: %w", err)
	}
	go l.forward(l.trigger, keymap.KindTrigger)
	go l.forward(l.exit, keymap.KindExit)
	return nil
}

func (l *xListener) forward(hk *xhotkey.Hotkey, kind keymap.Kind) {
	for {
		select {
		case <-hk.Keydown():
			select {
			case l.matches <- kind:
			default:
			}
		case <-l.stop:
			return
		}
	}
}

func (l *xListener) Unregister() {
	close(l.stop)
	l.trigger.Unregister()
	l.exit.Unregister()
}

func (l *xListener) Matches() <-chan keymap.Kind {
	return l.matches
}

var xKeys = map[keymap.Key]xhotkey.Key{
	keymap.Key('A'): xhotkey.KeyA, keymap.Key('B'): xhotkey.KeyB,
	keymap.Key('C'): xhotkey.KeyC, keymap.Key('D'): xhotkey.KeyD,
	keymap.Key('E'): xhotkey.KeyE, keymap.Key('F'): xhotkey.KeyF,
	keymap.Key('G'): xhotkey.KeyG, keymap.Key('H'): xhotkey.KeyH,
	keymap.Key('I'): xhotkey.KeyI, keymap.Key('J'): xhotkey.KeyJ,
	keymap.Key('K'): xhotkey.KeyK, keymap.Key('L'): xhotkey.KeyL,
	keymap.Key('M'): xhotkey.KeyM, keymap.Key('N'): xhotkey.KeyN,
	keymap.Key('O'): xhotkey.KeyO, keymap.Key('P'): xhotkey.KeyP,
	keymap.Key('Q'): xhotkey.KeyQ, keymap.Key('R'): xhotkey.KeyR,
	keymap.Key('S'): xhotkey.KeyS, keymap.Key('T'): xhotkey.KeyT,
	keymap.Key('U'): xhotkey.KeyU, keymap.Key('V'): xhotkey.KeyV,
	keymap.Key('W'): xhotkey.KeyW, keymap.Key('X'): xhotkey.KeyX,
	keymap.Key('Y'): xhotkey.KeyY, keymap.Key('Z'): xhotkey.KeyZ,
	keymap.Key('0'): xhotkey.Key0, keymap.Key('1'): xhotkey.Key1,
	keymap.Key('2'): xhotkey.Key2, keymap.Key('3'): xhotkey.Key3,
	keymap.Key('4'): xhotkey.Key4, keymap.Key('5'): xhotkey.Key5,
	keymap.Key('6'): xhotkey.Key6, keymap.Key('7'): xhotkey.Key7,
	keymap.Key('8'): xhotkey.Key8, keymap.Key('9'): xhotkey.Key9,
}

// Diagnose reports whether global hotkey registration is available.
func Diagnose() (string, error) {
	return "OS hotkey registration available", nil
}
