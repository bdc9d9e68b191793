package out

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	catalogout "niamverse/internal/modules/catalog/port/out"
)

const defaultDebounce = 250 * time.Millisecond

// FileWatcher reports edits to a single catalog file. It watches the parent
// directory so editors that replace the file by rename are still seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

func NewFileWatcher(path string, debounce time.Duration, logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{path: abs, debounce: debounce, logger: logger}, nil
}

var _ catalogout.Watcher = (*FileWatcher)(nil)

func (w *FileWatcher) Watch(ctx context.Context, onChange func()) (func(), error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	go w.run(ctx, fw, onChange, stopCh, doneCh)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(stopCh)
			<-doneCh
			if err := fw.Close(); err != nil {
				w.logger.Warn("close catalog watcher", zap.Error(err))
			}
		})
	}
	return stop, nil
}

func (w *FileWatcher) run(ctx context.Context, fw *fsnotify.Watcher, onChange func(), stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("catalog file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
