// Package clipboard abstracts platform clipboard access.
package clipboard

import cb "github.com/atotto/clipboard"

// Bridge reads and writes clipboard text. Every call performs a fresh
// platform access; nothing is cached.
type Bridge interface {
	Read() (string, error)
	Write(text string) error
}

// System is the real clipboard.
type System struct{}

func (System) Read() (string, error) {
	text, err := cb.ReadAll()
	if err != nil {
		return "", err
	}
	return text, nil
}

func (System) Write(text string) error {
	return cb.WriteAll(text)
}
