package jsonstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever the file for key is rewritten by someone
// other than this Store. It watches the parent directory, since atomic
// replaces swap the inode under a direct file watch. The watcher runs until
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context, key string, logger *log.Logger, onChange func()) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	logger.Debug("watching todo file", "dir", s.Dir(), "file", filepath.Base(p))

	go s.watchLoop(ctx, w, key, filepath.Base(p), logger, onChange)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, w *fsnotify.Watcher, key, name string, logger *log.Logger, onChange func()) {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			content, _, err := s.Get(key)
			if err != nil {
				logger.Warn("re-read todo file", "err", err)
				continue
			}
			if s.ownWrite(key, content) {
				continue
			}
			logger.Debug("todo file changed", "op", ev.Op.String())
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "err", err)
		}
	}
}
