// Package agent wires the trigger-and-transform pipeline: combo match,
// clipboard capture, remote transformation, clipboard replace, paste.
package agent

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Hexalyse/jean-albert/clipboard"
	"github.com/Hexalyse/jean-albert/hotkey"
	"github.com/Hexalyse/jean-albert/keymap"
	"github.com/Hexalyse/jean-albert/log"
	"github.com/Hexalyse/jean-albert/paste"
	"github.com/Hexalyse/jean-albert/transform"
)

// Hooks are optional observers for UI surfaces (tray, notifications).
// Any field may be nil.
type Hooks struct {
	Busy  func(bool)         // cycle started / finished
	Done  func(result string) // cycle replaced the clipboard
	Empty func()             // nothing to transform
	Error func(err error)    // transform or clipboard failure
}

type Options struct {
	Listener   hotkey.Listener
	Clipboard  clipboard.Bridge
	Client     transform.Client
	Paster     paste.Simulator
	BasePrompt string
	Shutdown   func() // invoked on the exit combo
	Hooks      Hooks

	// PasteDelay is the settle time between the clipboard write and the
	// synthetic paste, giving the focused application a stable clipboard.
	PasteDelay time.Duration
}

type Agent struct {
	listener   hotkey.Listener
	clip       clipboard.Bridge
	client     transform.Client
	paster     paste.Simulator
	basePrompt string
	shutdown   func()
	hooks      Hooks
	pasteDelay time.Duration

	guard  Guard
	cycles atomic.Int64
}

const defaultPasteDelay = 100 * time.Millisecond

func New(opts Options) *Agent {
	if opts.PasteDelay == 0 {
		opts.PasteDelay = defaultPasteDelay
	}
	if opts.Shutdown == nil {
		opts.Shutdown = func() {}
	}
	return &Agent{
		listener:   opts.Listener,
		clip:       opts.Clipboard,
		client:     opts.Client,
		paster:     opts.Paster,
		basePrompt: opts.BasePrompt,
		shutdown:   opts.Shutdown,
		hooks:      opts.Hooks,
		pasteDelay: opts.PasteDelay,
	}
}

// Cycles reports how many trigger cycles have started.
func (a *Agent) Cycles() int { return int(a.cycles.Load()) }

// Run consumes combo matches until ctx is cancelled. Trigger matches start
// a pipeline goroutine when the guard is free and are dropped silently
// otherwise; the exit combo invokes the shutdown hook. The loop itself
// never blocks on pipeline work, so key events keep flowing during a cycle.
func (a *Agent) Run(ctx context.Context) error {
	matches := a.listener.Matches()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case kind := <-matches:
			switch kind {
			case keymap.KindTrigger:
				if !a.guard.TryAcquire() {
					log.Info("trigger dropped: cycle already in flight")
					continue
				}
				a.cycles.Add(1)
				go a.runCycle()
			case keymap.KindExit:
				log.Info("exit combo pressed")
				a.shutdown()
			}
		}
	}
}

// runCycle executes one capture -> transform -> replace -> paste sequence.
// The caller must hold the guard; every exit path releases it.
func (a *Agent) runCycle() {
	start := time.Now()
	if a.hooks.Busy != nil {
		a.hooks.Busy(true)
		defer a.hooks.Busy(false)
	}
	defer a.guard.Release()

	selection, err := a.clip.Read()
	if err != nil {
		log.Warnf("clipboard read failed: %v", err)
		log.Cycle("clipboard_read_error", 0, 0, msSince(start), "")
		if a.hooks.Empty != nil {
			a.hooks.Empty()
		}
		return
	}
	if strings.TrimSpace(selection) == "" {
		log.Info("clipboard empty, nothing to transform")
		log.Cycle("empty_selection", 0, 0, msSince(start), "")
		if a.hooks.Empty != nil {
			a.hooks.Empty()
		}
		return
	}

	result, err := a.client.Transform(context.Background(), a.basePrompt, selection)
	if err != nil {
		kind := transform.KindOf(err)
		log.Errorf("transform failed: %v", err)
		log.Cycle("transform_error", len(selection), 0, msSince(start), kind.String())
		if a.hooks.Error != nil {
			a.hooks.Error(err)
		}
		return
	}

	if err := a.clip.Write(result); err != nil {
		log.Errorf("clipboard write failed: %v", err)
		log.Cycle("clipboard_write_error", len(selection), len(result), msSince(start), "")
		if a.hooks.Error != nil {
			a.hooks.Error(err)
		}
		return
	}

	// Give the clipboard time to settle before the focused app reads it.
	time.Sleep(a.pasteDelay)

	if err := a.paster.Paste(); err != nil {
		// Best effort: the result is on the clipboard either way, and the
		// paste outcome is unobservable once injected.
		log.Warnf("paste injection failed: %v", err)
	}

	log.Cycle("ok", len(selection), len(result), msSince(start), "")
	if a.hooks.Done != nil {
		a.hooks.Done(result)
	}
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
