// Package persist loads and saves a todo list as a JSON blob kept in one
// slot of a key-value store.
//
// The blob is exactly the list:
//
//	[{"label":"buy milk","isCompleted":false}, ...]
//
// An absent or empty slot reads as an empty list. There is no version field;
// any change to the record shape breaks previously stored data.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/storage"
)

// DefaultKey is the slot name the list is stored under.
const DefaultKey = "todos"

// Adapter reads and writes the whole list in one slot.
type Adapter struct {
	kv     storage.KV
	key    string
	logger *log.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for load fallbacks and writes.
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an adapter for key in kv. An empty key means DefaultKey.
func New(kv storage.KV, key string, opts ...Option) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{kv: kv, key: key, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key is the slot this adapter owns.
func (a *Adapter) Key() string { return a.key }

// Load reads and validates the stored list. It fails with *DecodeError when
// the blob is not JSON and *ShapeError when it is JSON of the wrong shape;
// in both cases nothing is imported.
func (a *Adapter) Load() ([]model.Todo, error) {
	blob, ok, err := a.kv.Get(a.key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", a.key, err)
	}
	if !ok || blob == "" {
		return []model.Todo{}, nil
	}
	return Decode(a.key, []byte(blob))
}

// LoadOrEmpty is Load with the recovery policy applied: a corrupt or
// foreign blob is logged and replaced by an empty list. Storage errors are
// still returned.
func (a *Adapter) LoadOrEmpty() ([]model.Todo, error) {
	list, err := a.Load()
	if err == nil {
		return list, nil
	}
	var de *DecodeError
	var se *ShapeError
	if errors.As(err, &de) || errors.As(err, &se) {
		a.logger.Warn("discarding stored todos", "key", a.key, "err", err)
		return []model.Todo{}, nil
	}
	return nil, err
}

// Save overwrites the slot with list.
func (a *Adapter) Save(list []model.Todo) error {
	b, err := Encode(list)
	if err != nil {
		return err
	}
	if err := a.kv.Set(a.key, string(b)); err != nil {
		return fmt.Errorf("write %q: %w", a.key, err)
	}
	a.logger.Debug("saved todos", "key", a.key, "count", len(list))
	return nil
}

// Decode parses a stored blob.
func Decode(key string, blob []byte) ([]model.Todo, error) {
	var doc any
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, &ShapeError{Index: -1, Err: fmt.Errorf("expected an array, got %s", jsonKind(doc))}
	}
	out := make([]model.Todo, 0, len(items))
	for i, it := range items {
		t, err := ValidateRecord(i, it)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Encode serializes list compactly, without HTML escaping and without a
// trailing newline, so that encoding a blob Encode produced reproduces its
// bytes. Blobs written elsewhere may come back different: U+2028 and U+2029
// are escaped, \uXXXX escapes of printable characters come back as the
// characters, and invalid UTF-8 in a label is replaced by U+FFFD on decode.
func Encode(list []model.Todo) ([]byte, error) {
	if list == nil {
		list = []model.Todo{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Recovering wraps an Adapter so that Load applies the LoadOrEmpty policy.
type Recovering struct {
	*Adapter
}

// Load implements the recovery policy; see LoadOrEmpty.
func (r Recovering) Load() ([]model.Todo, error) { return r.LoadOrEmpty() }
