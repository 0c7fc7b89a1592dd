package watch

import (
	"path/filepath"
	"sync"
	"time"

	"filechooser/internal/errors"
	"filechooser/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the listing of the watched directory is stale.
type Change struct {
	Dir       string
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// listingOps are the operations that add or remove a directory entry.
const listingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher follows a single directory, the one the picker is showing, and
// reports entries appearing or disappearing in it.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	changes   chan Change
	stopChan  chan struct{}
	done      chan struct{}

	mutex   sync.RWMutex
	dir     string
	running bool
	stopped bool
}

// New creates a new directory watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		changes:   make(chan Change, 16),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Watch switches the watched directory to dir. The previous directory is
// dropped even when dir cannot be watched.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// The old directory may already be gone.
		_ = w.fsWatcher.Remove(w.dir)
		w.dir = ""
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.ClassifyPathError(err, dir, errors.ReadDirFailed)
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Dir returns the directory currently watched, or "".
func (w *Watcher) Dir() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes returns the channel that delivers changes. It is closed once the
// watcher has stopped.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running || w.stopped {
		w.mutex.Unlock()
		return errors.New("watcher already running or stopped")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&listingOps == 0 {
				continue
			}

			dir := w.Dir()
			// Events for the directory itself, or queued before a switch.
			if filepath.Dir(event.Name) != dir {
				continue
			}

			change := Change{
				Dir:       dir,
				Path:      event.Name,
				Op:        event.Op & listingOps,
				Timestamp: time.Now(),
			}

			// A full buffer already means a refresh is pending.
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Debug("Change channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Warn("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and waits for the event loop to exit. A stopped
// watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	close(w.stopChan)
	w.mutex.Unlock()

	if wasRunning {
		<-w.done
	} else {
		close(w.changes)
	}

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Error("Error closing fsnotify watcher")
	}
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
