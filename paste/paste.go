// Package paste injects the platform paste chord into the OS input stream.
package paste

// Simulator sends a synthetic paste keystroke to the focused application.
// Fire-and-forget: whether the target application accepts the paste cannot
// be observed.
type Simulator interface {
	Paste() error
}

// System injects through the platform input layer.
type System struct{}

// Init performs any one-time platform setup (creating the virtual input
// device on Linux). Safe to call more than once.
func (System) Init() error {
	return platformInit()
}

func (System) Paste() error {
	return platformPaste()
}
