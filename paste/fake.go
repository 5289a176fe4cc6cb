package paste

import "sync"

type Fake struct {
	mu    sync.Mutex
	Err   error
	calls int
}

func (f *Fake) Paste() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.Err
}

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
