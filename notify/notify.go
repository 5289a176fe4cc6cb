// Package notify sends best-effort desktop notifications.
package notify

import "github.com/gen2brain/beeep"

const appName = "jean-albert"

type Notifier struct {
	enabled bool
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// Done announces a finished transformation with a preview of the result.
func (n *Notifier) Done(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify("Text transformed", text)
}

// Empty announces that the clipboard held nothing to transform.
func (n *Notifier) Empty() {
	n.notify("Nothing to transform", "Copy some text first, then press the combo again.")
}

// Error announces a failed cycle.
func (n *Notifier) Error(msg string) {
	n.notify("Transformation failed", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Notification failures are not worth surfacing.
	_ = beeep.Notify(appName+": "+title, message, "")
}
