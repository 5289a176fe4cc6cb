package transform

import (
	"context"
	"sync"
)

// Fake is a Client for tests. If Block is set, Transform waits on it before
// returning, letting tests hold a cycle open.
type Fake struct {
	mu     sync.Mutex
	Result string
	Err    error
	Block  chan struct{}
	calls  []FakeCall
}

type FakeCall struct {
	BasePrompt string
	Selection  string
}

func (f *Fake) Transform(ctx context.Context, basePrompt, selection string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{BasePrompt: basePrompt, Selection: selection})
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", &Error{Kind: KindTimeout, Msg: "request timed out", Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Result, nil
}

func (f *Fake) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}
