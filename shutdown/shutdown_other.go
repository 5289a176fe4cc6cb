//go:build !windows

// Package shutdown delivers OS termination requests as a channel.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Requests returns a channel that receives interrupt and terminate signals.
func Requests() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}
