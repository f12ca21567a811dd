package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 250 * time.Millisecond

// Update is one reload result. Err is set when the file changed but could not
// be loaded; the previous configuration should stay in effect.
type Update struct {
	Config Config
	Err    error
}

// Watch reloads path whenever it changes and delivers the result on the
// returned channel, which is closed when ctx ends. Only the newest pending
// update is kept, so a slow consumer never sees stale results first.
//
// The parent directory is watched rather than the file so editors that save
// by renaming a temp file are picked up.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan Update, error) {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	out := make(chan Update, 1)
	reload := make(chan struct{}, 1)
	d := newDebouncer(debounce)

	go func() {
		defer close(out)
		defer w.Close()
		defer d.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				d.Trigger(func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Warning: config watcher: %v", err)
			case <-reload:
				cfg, err := Load(path)
				if err != nil {
					log.Printf("Warning: reload %s: %v", path, err)
				}
				deliver(out, Update{Config: cfg, Err: err})
			}
		}
	}()
	return out, nil
}

func deliver(out chan Update, u Update) {
	for {
		select {
		case out <- u:
			return
		default:
		}
		// Drop the stale update nobody has read yet.
		select {
		case <-out:
		default:
		}
	}
}

// debouncer coalesces bursts of file events into one callback. A sequence
// number guards against a timer that fired just before being replaced.
type debouncer struct {
	duration time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
}

func newDebouncer(duration time.Duration) *debouncer {
	if duration <= 0 {
		duration = DefaultDebounce
	}
	return &debouncer{duration: duration}
}

func (d *debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			callback()
		}
	})
}

func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
