package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	sessionout "niamverse/internal/modules/session/port/out"
)

// OSLauncher hands targets to the desktop opener. The opened program is not
// owned by this process, so Stop only forgets the target.
type OSLauncher struct {
	mu      sync.Mutex
	current string
}

func NewOSLauncher() *OSLauncher {
	return &OSLauncher{}
}

var _ sessionout.Launcher = (*OSLauncher)(nil)

func (l *OSLauncher) Open(_ context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("external open is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open external target: %w", err)
	}
	go func() { _ = cmd.Wait() }()

	l.mu.Lock()
	l.current = target
	l.mu.Unlock()
	return nil
}

func (l *OSLauncher) Stop(context.Context) error {
	l.mu.Lock()
	l.current = ""
	l.mu.Unlock()
	return nil
}

func (l *OSLauncher) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
