package vault

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events to
// settle before signalling a reload.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals when notes in a vault directory change.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	reload   chan struct{}
	errs     chan error
	done     chan struct{}
}

// Watch starts watching dir. A debounce of zero uses DefaultDebounce.
func Watch(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fs:       fw,
		debounce: debounce,
		reload:   make(chan struct{}, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Reload receives one value per settled burst of changes. It is closed after
// Close.
func (w *Watcher) Reload() <-chan struct{} {
	return w.reload
}

// Errors receives watcher errors. Errors are dropped while one is pending.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and waits for it to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.reload)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isNoteEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.reload <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func isNoteEvent(ev fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(ev.Name), ".md") {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
