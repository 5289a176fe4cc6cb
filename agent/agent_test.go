package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hexalyse/jean-albert/clipboard"
	"github.com/Hexalyse/jean-albert/hotkey"
	"github.com/Hexalyse/jean-albert/keymap"
	"github.com/Hexalyse/jean-albert/paste"
	"github.com/Hexalyse/jean-albert/transform"
)

type fixture struct {
	agent  *Agent
	clip   *clipboard.Fake
	client *transform.Fake
	paster *paste.Fake
	done   chan struct{} // one receive per finished cycle
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		clip:   &clipboard.Fake{},
		client: &transform.Fake{},
		paster: &paste.Fake{},
		done:   make(chan struct{}, 8),
	}
	if opts.Clipboard == nil {
		opts.Clipboard = f.clip
	} else {
		f.clip = opts.Clipboard.(*clipboard.Fake)
	}
	if opts.Client == nil {
		opts.Client = f.client
	} else {
		f.client = opts.Client.(*transform.Fake)
	}
	if opts.Paster == nil {
		opts.Paster = f.paster
	}
	prevBusy := opts.Hooks.Busy
	opts.Hooks.Busy = func(busy bool) {
		if prevBusy != nil {
			prevBusy(busy)
		}
		if !busy {
			f.done <- struct{}{}
		}
	}
	opts.PasteDelay = time.Millisecond
	f.agent = New(opts)
	return f
}

// runOneCycle drives a single pipeline execution synchronously.
func (f *fixture) runOneCycle(t *testing.T) {
	t.Helper()
	if !f.agent.guard.TryAcquire() {
		t.Fatal("guard busy before cycle")
	}
	f.agent.runCycle()
	<-f.done
	if f.agent.guard.Busy() {
		t.Fatal("guard still busy after cycle")
	}
}

func TestCycleSuccess(t *testing.T) {
	f := newFixture(t, Options{BasePrompt: "Make this formal:"})
	f.clip.Text = "hello world"
	f.client.Result = "Hello, World."

	f.runOneCycle(t)

	calls := f.client.Calls()
	if len(calls) != 1 {
		t.Fatalf("transform calls = %d, want 1", len(calls))
	}
	if calls[0].BasePrompt != "Make this formal:" || calls[0].Selection != "hello world" {
		t.Errorf("unexpected call: %+v", calls[0])
	}
	if f.clip.Text != "Hello, World." {
		t.Errorf("clipboard = %q, want %q", f.clip.Text, "Hello, World.")
	}
	if got := f.paster.Calls(); got != 1 {
		t.Errorf("paste calls = %d, want 1", got)
	}
}

func TestCycleEmptyClipboard(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		f := newFixture(t, Options{BasePrompt: "p"})
		f.clip.Text = text

		f.runOneCycle(t)

		if got := len(f.client.Calls()); got != 0 {
			t.Errorf("transform calls = %d, want 0 (text %q)", got, text)
		}
		if got := len(f.clip.Writes()); got != 0 {
			t.Errorf("clipboard writes = %d, want 0 (text %q)", got, text)
		}
		if got := f.paster.Calls(); got != 0 {
			t.Errorf("paste calls = %d, want 0 (text %q)", got, text)
		}
	}
}

func TestCycleReadError(t *testing.T) {
	f := newFixture(t, Options{BasePrompt: "p"})
	f.clip.ReadErr = errors.New("clipboard unavailable")

	f.runOneCycle(t)

	if got := len(f.client.Calls()); got != 0 {
		t.Errorf("transform calls = %d, want 0", got)
	}
	if got := f.paster.Calls(); got != 0 {
		t.Errorf("paste calls = %d, want 0", got)
	}
}

func TestCycleTransformError(t *testing.T) {
	var reported error
	f := newFixture(t, Options{
		BasePrompt: "p",
		Hooks:      Hooks{Error: func(err error) { reported = err }},
	})
	f.clip.Text = "some selection"
	f.client.Err = &transform.Error{Kind: transform.KindRateLimited, Msg: "API rate limit exceeded"}

	f.runOneCycle(t)

	if got := len(f.clip.Writes()); got != 0 {
		t.Errorf("clipboard writes = %d, want 0", got)
	}
	if f.clip.Text != "some selection" {
		t.Errorf("clipboard changed to %q", f.clip.Text)
	}
	if got := f.paster.Calls(); got != 0 {
		t.Errorf("paste calls = %d, want 0", got)
	}
	if transform.KindOf(reported) != transform.KindRateLimited {
		t.Errorf("reported error = %v, want rate_limited", reported)
	}
}

func TestCycleWriteError(t *testing.T) {
	f := newFixture(t, Options{BasePrompt: "p"})
	f.clip.Text = "selection"
	f.clip.WriteErr = errors.New("denied")
	f.client.Result = "result"

	f.runOneCycle(t)

	if got := f.paster.Calls(); got != 0 {
		t.Errorf("paste calls = %d, want 0", got)
	}
}

func TestCyclePasteErrorStillReleases(t *testing.T) {
	f := newFixture(t, Options{BasePrompt: "p"})
	f.clip.Text = "selection"
	f.client.Result = "result"
	f.paster.Err = errors.New("no input device")

	f.runOneCycle(t)

	if f.clip.Text != "result" {
		t.Errorf("clipboard = %q, want %q", f.clip.Text, "result")
	}
}

func TestReadHappensBeforeWrite(t *testing.T) {
	f := newFixture(t, Options{BasePrompt: "p"})
	f.clip.Text = "original"
	f.client.Result = "replaced"

	f.runOneCycle(t)

	calls := f.client.Calls()
	if len(calls) != 1 || calls[0].Selection != "original" {
		t.Fatalf("transform saw %+v, want the pre-write clipboard", calls)
	}
	writes := f.clip.Writes()
	if len(writes) != 1 || writes[0] != "replaced" {
		t.Fatalf("writes = %v, want [replaced]", writes)
	}
}

func TestMutualExclusion(t *testing.T) {
	listener := hotkey.NewFake()
	block := make(chan struct{})
	f := newFixture(t, Options{
		Listener:   listener,
		BasePrompt: "p",
	})
	f.clip.Text = "text"
	f.client.Result = "out"
	f.client.Block = block

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.agent.Run(ctx)

	listener.SimMatch(keymap.KindTrigger)

	// Wait for the first cycle to reach the blocked transform call.
	waitFor(t, func() bool { return len(f.client.Calls()) == 1 })

	// Extra triggers while busy are dropped.
	listener.SimMatch(keymap.KindTrigger)
	listener.SimMatch(keymap.KindTrigger)
	time.Sleep(20 * time.Millisecond)
	if got := len(f.client.Calls()); got != 1 {
		t.Fatalf("transform calls = %d, want 1 while busy", got)
	}

	close(block)
	<-f.done

	// Guard released: the next trigger starts a new cycle.
	f.client.Block = nil
	listener.SimMatch(keymap.KindTrigger)
	<-f.done
	if got := len(f.client.Calls()); got != 2 {
		t.Fatalf("transform calls = %d, want 2 after release", got)
	}
}

func TestExitComboWhileBusy(t *testing.T) {
	listener := hotkey.NewFake()
	block := make(chan struct{})
	shutdown := make(chan struct{})
	f := newFixture(t, Options{
		Listener:   listener,
		BasePrompt: "p",
		Shutdown:   func() { close(shutdown) },
	})
	f.clip.Text = "text"
	f.client.Block = block

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.agent.Run(ctx)

	listener.SimMatch(keymap.KindTrigger)
	waitFor(t, func() bool { return len(f.client.Calls()) == 1 })

	// Exit combo is honored even while a cycle is in flight.
	listener.SimMatch(keymap.KindExit)
	select {
	case <-shutdown:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook not invoked")
	}

	// Nothing was written or pasted beyond what already completed.
	if got := len(f.clip.Writes()); got != 0 {
		t.Errorf("clipboard writes = %d, want 0", got)
	}
	if got := f.paster.Calls(); got != 0 {
		t.Errorf("paste calls = %d, want 0", got)
	}
	close(block)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	listener := hotkey.NewFake()
	f := newFixture(t, Options{Listener: listener, BasePrompt: "p"})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.agent.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
