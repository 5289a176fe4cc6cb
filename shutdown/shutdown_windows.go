//go:build windows

// Package shutdown delivers OS termination requests as a channel.
package shutdown

import (
	"os"
	"os/signal"
)

// Requests returns a channel that receives interrupt signals. There is no
// SIGTERM on Windows; closing the console sends an interrupt.
func Requests() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch
}
