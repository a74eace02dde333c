package discovery

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"utp/internal/config"
)

// Change is one debounced file-system notification. Reload is set when a
// test file changed, meaning the suite tree must be rebuilt before the
// next run; plain source changes only signal that a run is due.
type Change struct {
	Path   string
	Reload bool
}

// Watcher watches the directories holding discovered source and test
// files and emits debounced Change notifications. Events arriving within
// the debounce window are merged into a single Change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	changes  chan Change
	debounce time.Duration
	warn     func(string)

	testPattern   string
	sourcePattern string
	dirs          []string
}

// NewWatcher creates a Watcher for the configured file patterns and
// starts its event loop. warn may be nil.
func NewWatcher(cfg *config.Config, warn func(string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if warn == nil {
		warn = func(string) {}
	}

	w := &Watcher{
		fsw:           fsw,
		changes:       make(chan Change, 1),
		debounce:      300 * time.Millisecond,
		warn:          warn,
		testPattern:   cfg.TestFilePattern,
		sourcePattern: cfg.SourceFilePattern,
	}
	go w.loop()
	return w, nil
}

// Watch replaces the watch set with the parent directories of the given
// files. Watching directories instead of the files themselves survives
// editors that save via rename, and picks up newly created files.
func (w *Watcher) Watch(testFiles, sourceFiles []string) error {
	for _, dir := range w.dirs {
		w.fsw.Remove(dir)
	}
	w.dirs = w.dirs[:0]

	seen := make(map[string]bool)
	var firstErr error
	for _, file := range append(append([]string{}, testFiles...), sourceFiles...) {
		dir := filepath.Dir(file)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.fsw.Add(dir); err != nil {
			w.warn(fmt.Sprintf("cannot watch %s: %v", dir, err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		w.dirs = append(w.dirs, dir)
	}
	return firstErr
}

// Changes returns the channel of debounced notifications. It is closed
// when the watcher is closed.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops watching and releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var (
		pending Change
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	events, errs := w.fsw.Events, w.fsw.Errors

	arm := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(w.debounce)
		timerC = timer.C
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				close(w.changes)
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			base := filepath.Base(event.Name)
			isTest, _ := filepath.Match(w.testPattern, base)
			isSource, _ := filepath.Match(w.sourcePattern, base)
			if !isTest && !isSource {
				continue
			}
			pending.Path = event.Name
			pending.Reload = pending.Reload || isTest
			arm()

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.changes <- pending:
				pending = Change{}
			default:
				// Consumer is mid-run; keep accumulating and retry.
				arm()
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.warn(fmt.Sprintf("file watcher error: %v", err))
		}
	}
}
