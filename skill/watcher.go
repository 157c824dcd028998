package skill

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepnoodle-ai/skillset/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce batches bursts of filesystem events (editors often
// write several) into a single rescan.
const defaultDebounce = 500 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Debounce is how long to wait after the last filesystem event
	// before rescanning. Defaults to 500ms.
	Debounce time.Duration

	// Logger receives watch events. Defaults to a no-op logger.
	Logger log.Logger
}

// Watcher keeps a Registry current by rescanning when files under its
// scan root change. External edits are otherwise only detected at the
// next Scan or OpenEdit; the watcher closes that gap for long-lived
// consumers like an interactive browser.
type Watcher struct {
	registry *Registry
	debounce time.Duration
	logger   log.Logger
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a Watcher for the given registry. The registry must
// have been scanned before Start is called.
func NewWatcher(registry *Registry, opts WatchOptions) (*Watcher, error) {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNullLogger()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		registry: registry,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the registry's scan root and every directory
// below it, then processes events in the background until ctx is
// canceled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	root := w.registry.Root()
	if root == "" {
		return errors.New("registry has not been scanned yet")
	}
	if err := w.watchTree(root); err != nil {
		return err
	}

	go w.loop(ctx)
	w.logger.Debug("watching skill documents", "root", root)
	return nil
}

// watchTree adds root and every directory below it to the watch set, so
// deep scan patterns like **/SKILL.md see changes at any depth. Failures
// below the root are logged and skipped.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return &IOError{Op: "watch", Path: root, Err: err}
			}
			w.logger.Warn("cannot watch directory", "path", path, "error", err)
			return fs.SkipDir
		}
		if !entry.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			if path == root {
				return &IOError{Op: "watch", Path: root, Err: err}
			}
			w.logger.Warn("cannot watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	debounce := time.NewTimer(0)
	<-debounce.C // drain the initial fire
	pending := 0

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if isTempArtifact(event.Name) {
				continue
			}
			// Newly created skill directories need their own watches,
			// including any subtree created in one move.
			if event.Op&fsnotify.Create != 0 {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					if err := w.watchTree(event.Name); err != nil {
						w.logger.Warn("cannot watch directory", "path", event.Name, "error", err)
					}
				}
			}
			pending++
			debounce.Reset(w.debounce)

		case <-debounce.C:
			if pending == 0 {
				continue
			}
			pending = 0
			if err := w.registry.Rescan(); err != nil {
				w.logger.Warn("rescan failed", "error", err)
			} else {
				w.logger.Debug("registry rescanned", "skills", w.registry.Len())
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close releases the underlying OS watcher. The event loop exits once
// the watcher's channels close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Done is closed when the event loop has exited.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// isTempArtifact reports temp paths produced by atomic saves. The
// rename onto the real document still raises a Create for the document
// itself, so saves are not missed.
func isTempArtifact(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".tmp")
}
