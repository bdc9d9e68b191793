package out

import (
	"context"
	"sync"
)

// NoopLauncher records targets without showing them. Used when no display is
// available and in tests.
type NoopLauncher struct {
	mu     sync.Mutex
	opened []string
	stops  int
}

func NewNoopLauncher() *NoopLauncher {
	return &NoopLauncher{}
}

func (l *NoopLauncher) Open(_ context.Context, target string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opened = append(l.opened, target)
	return nil
}

func (l *NoopLauncher) Stop(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stops++
	return nil
}

func (l *NoopLauncher) Opened() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.opened...)
}

func (l *NoopLauncher) Stops() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stops
}
