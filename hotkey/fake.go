package hotkey

import "github.com/Hexalyse/jean-albert/keymap"

type FakeListener struct {
	matches chan keymap.Kind
}

func NewFake() *FakeListener {
	return &FakeListener{matches: make(chan keymap.Kind, 4)}
}

func (f *FakeListener) Register() error             { return nil }
func (f *FakeListener) Unregister()                 {}
func (f *FakeListener) Matches() <-chan keymap.Kind { return f.matches }

func (f *FakeListener) SimMatch(kind keymap.Kind) { f.matches <- kind }
