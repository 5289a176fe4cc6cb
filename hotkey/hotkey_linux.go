//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Hexalyse/jean-albert/keymap"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

// evdev modifier key codes from linux/input-event-codes.h
const (
	keyLCtrl  = 29
	keyRCtrl  = 97
	keyLShift = 42
	keyRShift = 54
	keyLAlt   = 56
	keyRAlt   = 100
)

// evdev codes for a..z, indexed by letter.
var letterCodes = [26]uint16{
	30, 48, 46, 32, 18, 33, 34, 35, 23, 36,
	37, 38, 50, 49, 24, 25, 16, 19, 31, 20,
	22, 47, 17, 45, 21, 44,
}

// evdev codes for 0..9, indexed by digit.
var digitCodes = [10]uint16{11, 2, 3, 4, 5, 6, 7, 8, 9, 10}

var keyByCode = func() map[uint16]keymap.Key {
	m := make(map[uint16]keymap.Key, 36)
	for i, code := range letterCodes {
		m[code] = keymap.Key('A' + byte(i))
	}
	for i, code := range digitCodes {
		m[code] = keymap.Key('0' + byte(i))
	}
	return m
}()

func decodeEvent(code uint16, press bool) (keymap.Event, bool) {
	switch code {
	case keyLCtrl, keyRCtrl:
		return keymap.Event{Mod: keymap.ModCtrl, Press: press}, true
	case keyLShift, keyRShift:
		return keymap.Event{Mod: keymap.ModShift, Press: press}, true
	case keyLAlt, keyRAlt:
		return keymap.Event{Mod: keymap.ModAlt, Press: press}, true
	}
	if k, ok := keyByCode[code]; ok {
		return keymap.Event{Key: k, Press: press}, true
	}
	return keymap.Event{}, false
}

// linuxListener reads raw key events from /dev/input and runs them through
// a combo matcher. Requires the user to be in the 'input' group.
type linuxListener struct {
	matches   chan keymap.Kind
	matcher   *keymap.Matcher
	matcherMu sync.Mutex
	files     []*os.File
	stop      chan struct{}
	once      sync.Once
}

func New(trigger, exit keymap.Combo) Listener {
	return &linuxListener{
		matches: make(chan keymap.Kind, 4),
		matcher: keymap.NewMatcher(trigger, exit),
	}
}

func (l *linuxListener) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	l.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		l.files = append(l.files, f)
		go l.readEvents(f)
	}

	if len(l.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (l *linuxListener) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-l.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}
			// Value 2 is key repeat; modifier state is unchanged and a
			// repeated trigger key must not re-fire.
			if evValue != keyPress && evValue != keyRelease {
				continue
			}

			ev, ok := decodeEvent(evCode, evValue == keyPress)
			if !ok {
				continue
			}

			l.matcherMu.Lock()
			kind := l.matcher.OnEvent(ev)
			l.matcherMu.Unlock()

			if kind != keymap.KindNone {
				select {
				case l.matches <- kind:
				default:
				}
			}
		}
	}
}

func (l *linuxListener) Unregister() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
		for _, f := range l.files {
			f.Close()
		}
	})
}

func (l *linuxListener) Matches() <-chan keymap.Kind {
	return l.matches
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose reports whether keyboard devices are visible and openable.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
