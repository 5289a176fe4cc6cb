package keymap

// Matcher tracks the currently-held modifier set and detects the configured
// trigger and exit combos in a raw key event stream. A combo matches only
// when the held modifiers equal its modifier set exactly: a combo never
// fires while extra modifiers are held, so two combos sharing a trigger key
// cannot double-fire.
//
// Matcher is not safe for concurrent use; feed it from a single event loop.
type Matcher struct {
	trigger Combo
	exit    Combo
	held    Modifier
}

func NewMatcher(trigger, exit Combo) *Matcher {
	return &Matcher{trigger: trigger, exit: exit}
}

// OnEvent consumes one raw key transition and reports whether it completed
// a configured combo. Modifier events only update bookkeeping. Key releases
// and unknown keys never match.
func (m *Matcher) OnEvent(ev Event) Kind {
	if ev.Mod != 0 {
		if ev.Press {
			m.held |= ev.Mod
		} else {
			m.held &^= ev.Mod
		}
		return KindNone
	}
	if !ev.Press || ev.Key == KeyNone {
		return KindNone
	}
	if m.held == m.trigger.Mods && ev.Key == m.trigger.Key {
		return KindTrigger
	}
	if m.held == m.exit.Mods && ev.Key == m.exit.Key {
		return KindExit
	}
	return KindNone
}

// Reset clears the held-modifier state. Call after the event source
// restarts, since releases may have been missed.
func (m *Matcher) Reset() {
	m.held = 0
}
