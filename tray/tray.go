// Package tray renders the system tray presence: status icon, combo
// tooltip, and the Quit item.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

type Tray struct {
	triggerLabel string
	exitLabel    string

	mu         sync.Mutex
	ready      bool
	busy       bool
	statusItem *systray.MenuItem
	quit       chan struct{}
	quitOnce   sync.Once
}

func New(triggerLabel, exitLabel string) *Tray {
	return &Tray{
		triggerLabel: triggerLabel,
		exitLabel:    exitLabel,
		quit:         make(chan struct{}),
	}
}

// Run starts the tray loop. Blocking; must be called from the main
// goroutine on macOS.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit tears the tray down.
func (t *Tray) Quit() {
	systray.Quit()
}

// QuitRequested is closed when the user picks Quit from the menu.
func (t *Tray) QuitRequested() <-chan struct{} {
	return t.quit
}

// SetBusy switches the icon and status line between idle and
// transforming. Safe to call before the tray is ready.
func (t *Tray) SetBusy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = busy
	if !t.ready {
		return
	}
	t.render()
}

func (t *Tray) onReady() {
	systray.SetTitle("jean-albert")
	systray.SetTooltip(t.tooltip())

	t.mu.Lock()
	t.statusItem = systray.AddMenuItem("Idle", "Current state")
	t.statusItem.Disable()
	systray.AddSeparator()
	t.ready = true
	t.render()
	t.mu.Unlock()

	quitItem := systray.AddMenuItem("Quit", "Exit jean-albert")
	go func() {
		<-quitItem.ClickedCh
		t.quitOnce.Do(func() { close(t.quit) })
	}()
}

// render applies the current state. Caller holds t.mu.
func (t *Tray) render() {
	if t.busy {
		systray.SetIcon(iconBusy)
		t.statusItem.SetTitle("Transforming...")
	} else {
		systray.SetIcon(iconIdle)
		t.statusItem.SetTitle("Idle")
	}
}

func (t *Tray) tooltip() string {
	return fmt.Sprintf("Press %s to transform selected text\nPress %s to exit", t.triggerLabel, t.exitLabel)
}
