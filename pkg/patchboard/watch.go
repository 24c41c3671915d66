package patchboard

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher wakes an inbox consumer when files change in the inbox
// directory, so the consumer can scan sooner than its next poll tick.
// It is an optimization only: the polling loop remains the source of
// truth and the watcher never replaces it.
type Watcher struct {
	fw     *fsnotify.Watcher
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// WatchInbox starts watching inboxDir. It returns nil (and no error) when
// the directory does not exist or the platform watcher cannot be created;
// callers fall back to polling alone.
func WatchInbox(inboxDir string) *Watcher {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	if err := fw.Add(inboxDir); err != nil {
		_ = fw.Close()
		return nil
	}

	w := &Watcher{
		fw:   fw,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

// Wake returns a channel that receives after inbox activity settles.
// Events are debounced so a burst of writes produces a single wakeup.
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// Close stops the watcher. Safe to call on a nil receiver.
func (w *Watcher) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	return w.fw.Close()
}

const debounce = 100 * time.Millisecond

func (w *Watcher) run() {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case _, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			select {
			case w.wake <- struct{}{}:
			default: // consumer already has a pending wakeup
			}

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}

		case <-w.done:
			return
		}
	}
}
