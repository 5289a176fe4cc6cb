package clipboard

import "sync"

// Fake is an in-memory Bridge with injectable failures.
type Fake struct {
	mu       sync.Mutex
	Text     string
	ReadErr  error
	WriteErr error
	writes   []string
}

func (f *Fake) Read() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return "", f.ReadErr
	}
	return f.Text, nil
}

func (f *Fake) Write(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.Text = text
	f.writes = append(f.writes, text)
	return nil
}

// Writes returns every text written so far, in order.
func (f *Fake) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}
