// Package watch turns file system events into debounced refresh triggers
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/foldtree/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for events to settle
const DefaultDebounce = 200 * time.Millisecond

// Trigger is the kind of change behind a refresh
type Trigger int

const (
	// TriggerContent is a directory listing change
	TriggerContent Trigger = iota
	// TriggerStatus is a change to ignore rules (.gitignore)
	TriggerStatus
	// TriggerSettings is a change to the settings file
	TriggerSettings
)

func (t Trigger) String() string {
	switch t {
	case TriggerStatus:
		return "status"
	case TriggerSettings:
		return "settings"
	default:
		return "content"
	}
}

// Batch collects the triggers seen during one debounce window
type Batch struct {
	Content  bool
	Status   bool
	Settings bool
	Paths    []string
}

// add records one event. Create, Remove and Rename change the directory
// listing whatever the path is.
func (b *Batch) add(t Trigger, op fsnotify.Op, path string) {
	if op.Has(fsnotify.Create) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		b.Content = true
	}
	switch t {
	case TriggerStatus:
		b.Status = true
	case TriggerSettings:
		b.Settings = true
	default:
		b.Content = true
	}
	b.Paths = append(b.Paths, path)
}

// Empty reports whether nothing was recorded
func (b Batch) Empty() bool {
	return !b.Content && !b.Status && !b.Settings
}

// NeedsRefresh reports whether the tree must be re-rendered. Status changes
// only matter while ignored files are folded.
func (b Batch) NeedsRefresh(foldIgnoredFiles bool) bool {
	return b.Content || b.Settings || (b.Status && foldIgnoredFiles)
}

// Watcher monitors a project directory tree using fsnotify
type Watcher struct {
	root         string
	settingsPath string
	debounce     time.Duration
	logger       utils.Logger

	fsWatcher *fsnotify.Watcher

	mutex       sync.RWMutex
	directories map[string]struct{}
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the debounce window
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithSettingsFile marks path as the settings file
func WithSettingsFile(path string) Option {
	return func(w *Watcher) {
		if path == "" {
			return
		}
		if abs, err := filepath.Abs(path); err == nil {
			w.settingsPath = abs
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger utils.Logger) Option {
	return func(w *Watcher) {
		w.logger = utils.OrNoop(logger)
	}
}

// New creates a watcher for every directory under root, skipping .git
func New(root string, opts ...Option) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: failed to get absolute path for '%s': %w", root, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		root:        absRoot,
		debounce:    DefaultDebounce,
		logger:      utils.NoopLogger{},
		fsWatcher:   fsWatcher,
		directories: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(absRoot); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if w.settingsPath != "" {
		if dir := filepath.Dir(w.settingsPath); !w.watching(dir) {
			if err := w.addDirectory(dir); err != nil {
				w.logger.Warn("watch: cannot watch settings directory %s: %v", dir, err)
			}
		}
	}
	return w, nil
}

// Classify maps a changed path to its trigger
func (w *Watcher) Classify(path string) Trigger {
	if w.settingsPath != "" && filepath.Clean(path) == w.settingsPath {
		return TriggerSettings
	}
	if filepath.Base(path) == ".gitignore" {
		return TriggerStatus
	}
	return TriggerContent
}

// Directories returns the watched directories
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, 0, len(w.directories))
	for d := range w.directories {
		out = append(out, d)
	}
	return out
}

// Run delivers debounced batches to handle until ctx is done. The watcher is
// closed when Run returns.
func (w *Watcher) Run(ctx context.Context, handle func(Batch)) error {
	defer w.fsWatcher.Close()

	var (
		pending Batch
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.track(event)

			trigger := w.Classify(event.Name)
			w.logger.Debug("watch: %s %s (%s)", event.Op, event.Name, trigger)
			pending.add(trigger, event.Op, event.Name)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			batch := pending
			pending = Batch{}
			if !batch.Empty() {
				handle(batch)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch: fsnotify watcher error: %v", err)
		}
	}
}

// track keeps new directories watched and forgets removed ones
func (w *Watcher) track(event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil || !info.IsDir() {
			return
		}
		if err := w.addTree(event.Name); err != nil {
			w.logger.Warn("watch: %v", err)
		}
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.mutex.Lock()
		delete(w.directories, filepath.Clean(event.Name))
		w.mutex.Unlock()
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch: error accessing directory: %w", err)
			}
			w.logger.Debug("watch: skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		return w.addDirectory(path)
	})
}

func (w *Watcher) addDirectory(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watch: failed to add directory %s to watcher: %w", dir, err)
	}
	w.mutex.Lock()
	w.directories[filepath.Clean(dir)] = struct{}{}
	w.mutex.Unlock()
	w.logger.Debug("watch: watching directory %s", dir)
	return nil
}

func (w *Watcher) watching(dir string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	_, ok := w.directories[filepath.Clean(dir)]
	return ok
}
