package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Makepad-fr/todos/internal/storage"
)

// File-backed key-value store. One human-readable file per key, replaced
// atomically on every write. No cross-process locking: last writer wins.

const fileExt = ".json"

// Store keeps each key in <dir>/<key>.json.
type Store struct {
	dir string

	mu      sync.Mutex
	written map[string]string // last content this process wrote, per key
	closed  bool
}

var _ storage.KV = (*Store)(nil)

// New returns a store rooted at dir, creating the directory if needed.
// An empty dir means the current working directory.
func New(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{dir: dir, written: make(map[string]string)}, nil
}

// Dir is the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds key.
func (s *Store) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.isClosed() {
		return "", false, storage.ErrClosed
	}
	p, err := s.Path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(b), true, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	s.written[key] = value
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	delete(s.written, key)
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ownWrite reports whether content is exactly what this process last wrote
// under key.
func (s *Store) ownWrite(key, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.written[key]
	return ok && last == content
}
