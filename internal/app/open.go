package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todos/internal/config"
	"github.com/Makepad-fr/todos/internal/persist"
	"github.com/Makepad-fr/todos/internal/storage"
	"github.com/Makepad-fr/todos/internal/storage/jsonstore"
	"github.com/Makepad-fr/todos/internal/storage/sqlitestore"
	"github.com/Makepad-fr/todos/internal/todo"
)

// SQLiteFile is the database name used by the sqlite backend.
const SQLiteFile = "todos.db"

// ErrWatchUnsupported is returned by Watch for backends other than file.
var ErrWatchUnsupported = errors.New("watch is only supported by the file backend")

// Open builds the configured backend and loads the list from it. A stored
// list that is corrupt or of a foreign shape is discarded with a warning;
// the first change then overwrites it.
func Open(cfg config.Config, logger *log.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	kv, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	adapter := persist.New(kv, cfg.Key, persist.WithLogger(logger))
	store, err := todo.New(persist.Recovering{Adapter: adapter}, todo.WithLogger(logger))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	a := New(store, append([]Option{WithLogger(logger)}, opts...)...)
	a.kv = kv
	a.key = adapter.Key()
	logger.Debug("opened todo list", "backend", cfg.Backend, "key", a.key, "count", store.Len())
	return a, nil
}

// OpenBackend returns the key-value store named by cfg.Backend.
func OpenBackend(cfg config.Config) (storage.KV, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		s, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backend: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		if cfg.DataDir != "" {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir: %w", err)
			}
		}
		s, err := sqlitestore.Open(filepath.Join(cfg.DataDir, SQLiteFile))
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		return storage.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Watch calls onChange when another process rewrites the stored list. It
// stops when ctx is cancelled.
func (a *App) Watch(ctx context.Context, onChange func()) error {
	fs, ok := a.kv.(*jsonstore.Store)
	if !ok {
		return ErrWatchUnsupported
	}
	return fs.Watch(ctx, a.key, a.logger, onChange)
}
