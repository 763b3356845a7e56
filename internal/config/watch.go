package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce batches the burst of events editors emit on a single save.
const reloadDebounce = 150 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	onError  func(error)
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for path. onChange receives every successfully
// reloaded config; onError (optional) receives load and watch failures.
// The parent directory is watched so atomic rename-on-save is seen.
func NewWatcher(path string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		path:     filepath.Clean(path),
		watcher:  w,
		onChange: onChange,
		onError:  onError,
		doneCh:   make(chan struct{}),
	}, nil
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (cw *Watcher) Run(ctx context.Context) {
	defer close(cw.doneCh)
	defer cw.watcher.Close()

	var pending bool
	ticker := time.NewTicker(reloadDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				pending = true
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.onError(err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			cfg, err := Load(cw.path)
			if err != nil {
				cw.onError(err)
				continue
			}
			if err := cfg.Validate(); err != nil {
				cw.onError(fmt.Errorf("invalid config: %w", err))
				continue
			}
			cw.onChange(cfg)
		}
	}
}

// Done is closed once Run has returned.
func (cw *Watcher) Done() <-chan struct{} {
	return cw.doneCh
}

// Watch starts a Watcher in its own goroutine. It stops when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	cw, err := NewWatcher(path, onChange, onError)
	if err != nil {
		return nil, err
	}
	go cw.Run(ctx)
	return cw, nil
}
