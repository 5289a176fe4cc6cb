package keymap

import (
	"fmt"
	"strings"
)

// ParseKey converts a single-character key name ("P", "q", "7") into a Key.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 {
		return KeyNone, fmt.Errorf("unsupported key %q (use a single letter or digit)", s)
	}
	c := s[0]
	if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return Key(c), nil
	}
	return KeyNone, fmt.Errorf("unsupported key %q (use a single letter or digit)", s)
}
