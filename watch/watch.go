// Package watch re-runs document checks when source files change. It
// wraps fsnotify with recursive directory watches and a debounce window
// so an editor's save burst triggers one re-check, not five.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Handler receives a debounced batch of changed document paths,
// relative to the watched root.
type Handler func(ctx context.Context, paths []string)

// Watcher watches a documentation source tree for .qmd/.md changes.
type Watcher struct {
	root     string
	debounce time.Duration
	handler  Handler
	watcher  *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]bool // relative path → pending re-check
}

// New creates a watcher over root. A zero debounce defaults to 300ms.
func New(root string, debounce time.Duration, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		handler:  handler,
		watcher:  fsw,
		pending:  make(map[string]bool),
	}, nil
}

// Run watches until the context is cancelled. It blocks.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}
	logrus.Infof("watching %s (debounce %s)", w.root, w.debounce)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("watch error: %v", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !isDocument(path) {
		// New directories need their own watch for recursion.
		if event.Has(fsnotify.Create) {
			base := filepath.Base(path)
			if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") {
				return
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.addWatch(path)
			}
		}
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	w.pendingMu.Lock()
	w.pending[rel] = true
	w.pendingMu.Unlock()
	logrus.Debugf("change detected: %s (%s)", rel, event.Op)
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	w.handler(ctx, paths)
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_")) {
			// _site, .quarto, .git and friends are build products.
			return filepath.SkipDir
		}
		w.addWatch(path)
		return nil
	})
}

func (w *Watcher) addWatch(path string) {
	if err := w.watcher.Add(path); err != nil {
		logrus.Warnf("failed to watch %s: %v", path, err)
	} else {
		logrus.Debugf("watching directory %s", path)
	}
}

func isDocument(path string) bool {
	switch filepath.Ext(path) {
	case ".qmd", ".md":
		return true
	}
	return false
}
