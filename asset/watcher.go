package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/gpures"
)

// ErrWatcherClosed is returned when adding paths to a closed Watcher.
var ErrWatcherClosed = errors.New("asset: watcher closed")

// Change is a created or rewritten source file. Err is set when the file
// changed but could not be read.
type Change struct {
	Source Source
	Err    error
}

// Watcher reports source files that are created or modified below the
// watched directories. New subdirectories are watched automatically.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWatcher starts watching dir and all of its subdirectories.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("asset: watcher: %w", err)
	}
	w := &Watcher{
		fs:      fw,
		changes: make(chan Change, 16),
		done:    make(chan struct{}),
	}
	if err := w.addRecursive(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes delivers changed sources. It is closed by Close.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Close stops the watcher and closes the Changes channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	close(w.changes)
	return err
}

func (w *Watcher) addRecursive(dir string) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatcherClosed
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fs.Add(path); err != nil {
				return fmt.Errorf("asset: watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	log := gpures.Logger()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(e)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("asset: watcher error", "err", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) {
		return
	}
	if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := w.addRecursive(e.Name); err != nil {
				gpures.Logger().Warn("asset: watch new directory", "path", e.Name, "err", err)
			}
		}
		return
	}
	if _, _, _, err := ParsePath(e.Name); err != nil {
		return
	}
	src, err := ReadSource(e.Name)
	gpures.Logger().Debug("asset: source changed", "path", e.Name, "op", e.Op.String())
	select {
	case w.changes <- Change{Source: src, Err: err}:
	case <-w.done:
	}
}
