//go:build linux

package hotkey

import (
	"testing"

	"github.com/Hexalyse/jean-albert/keymap"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		code  uint16
		press bool
		want  keymap.Event
		ok    bool
	}{
		{"left ctrl press", 29, true, keymap.Event{Mod: keymap.ModCtrl, Press: true}, true},
		{"right ctrl release", 97, false, keymap.Event{Mod: keymap.ModCtrl}, true},
		{"left shift press", 42, true, keymap.Event{Mod: keymap.ModShift, Press: true}, true},
		{"right shift press", 54, true, keymap.Event{Mod: keymap.ModShift, Press: true}, true},
		{"left alt press", 56, true, keymap.Event{Mod: keymap.ModAlt, Press: true}, true},
		{"right alt release", 100, false, keymap.Event{Mod: keymap.ModAlt}, true},
		{"letter p", 25, true, keymap.Event{Key: keymap.Key('P'), Press: true}, true},
		{"letter q", 16, true, keymap.Event{Key: keymap.Key('Q'), Press: true}, true},
		{"letter a", 30, true, keymap.Event{Key: keymap.Key('A'), Press: true}, true},
		{"letter z release", 44, false, keymap.Event{Key: keymap.Key('Z')}, true},
		{"digit 0", 11, true, keymap.Event{Key: keymap.Key('0'), Press: true}, true},
		{"digit 1", 2, true, keymap.Event{Key: keymap.Key('1'), Press: true}, true},
		{"digit 9", 10, true, keymap.Event{Key: keymap.Key('9'), Press: true}, true},
		{"escape ignored", 1, true, keymap.Event{}, false},
		{"space ignored", 57, true, keymap.Event{}, false},
		{"f1 ignored", 59, true, keymap.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeEvent(tt.code, tt.press)
			if ok != tt.ok {
				t.Fatalf("decodeEvent(%d, %v) ok = %v, want %v", tt.code, tt.press, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("decodeEvent(%d, %v) = %+v, want %+v", tt.code, tt.press, got, tt.want)
			}
		})
	}
}

func TestAllLetterAndDigitCodesDecode(t *testing.T) {
	seen := make(map[uint16]bool)
	for i, code := range letterCodes {
		if seen[code] {
			t.Errorf("duplicate evdev code %d", code)
		}
		seen[code] = true
		ev, ok := decodeEvent(code, true)
		if !ok || ev.Key != keymap.Key('A'+byte(i)) {
			t.Errorf("code %d decoded to %+v, want key %c", code, ev, 'A'+byte(i))
		}
	}
	for i, code := range digitCodes {
		if seen[code] {
			t.Errorf("duplicate evdev code %d", code)
		}
		seen[code] = true
		ev, ok := decodeEvent(code, true)
		if !ok || ev.Key != keymap.Key('0'+byte(i)) {
			t.Errorf("code %d decoded to %+v, want key %c", code, ev, '0'+byte(i))
		}
	}
}
