// Package store implements the typed, write-through entity collections
// and the aggregate that composes them.
//
// Each collection lives fully in memory and mirrors every mutation to
// its own durable key before the call returns, so the persisted state
// matches the in-memory state at every observable point. Unreadable or
// malformed persisted data is discarded in favor of an empty collection
// rather than surfacing an error to callers.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"modulear/internal/apperr"
	"modulear/internal/kvstore"
)

// Durable keys, one per entity kind. These names are part of the backup
// wire format and must match the original client's localStorage keys.
const (
	KeyTodos        = "todos"
	KeyDiaryEntries = "diaryEntries"
	KeyCountdowns   = "countdowns"
	KeyWorldClocks  = "worldClocks"
	KeyVocabulary   = "vocabulary"
	KeyStickyNotes  = "stickyNotes"
)

// Keys lists every durable entity key in backup-document order.
func Keys() []string {
	return []string{
		KeyTodos, KeyDiaryEntries, KeyCountdowns,
		KeyWorldClocks, KeyVocabulary, KeyStickyNotes,
	}
}

// newID returns a fresh entity id. Ids are random rather than
// timestamp-derived so rapid successive creations never collide.
func newID() string {
	return uuid.NewString()
}

type insertMode int

const (
	prependNewest insertMode = iota
	appendNewest
)

// collection is the generic in-memory cache plus write-through
// persistence shared by every typed store. idOf extracts the entity id
// for update/delete lookups.
type collection[T any] struct {
	mu      sync.Mutex
	backend kvstore.Backend
	key     string
	mode    insertMode
	idOf    func(T) string
	logger  *slog.Logger

	items []T
}

func newCollection[T any](backend kvstore.Backend, key string, mode insertMode, idOf func(T) string, logger *slog.Logger) *collection[T] {
	c := &collection[T]{
		backend: backend,
		key:     key,
		mode:    mode,
		idOf:    idOf,
		logger:  logger,
	}
	c.load()
	return c
}

// load replaces the cache with whatever the backend holds. Missing or
// malformed data yields an empty collection.
func (c *collection[T]) load() {
	raw, ok, err := c.backend.Get(c.key)
	if err != nil {
		c.logger.Warn("store: read failed, starting empty",
			slog.String("key", c.key), slog.String("error", err.Error()))
		c.items = nil
		return
	}
	if !ok {
		c.items = nil
		return
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("store: malformed data, starting empty",
			slog.String("key", c.key), slog.String("error", err.Error()))
		c.items = nil
		return
	}
	c.items = items
}

// reload re-reads the collection from the backend.
func (c *collection[T]) reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
}

// list returns a copy of the collection. Callers never get a handle
// into the cache itself.
func (c *collection[T]) list() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// get returns the entity with the given id.
func (c *collection[T]) get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// insert adds item at the collection's insert position and persists.
func (c *collection[T]) insert(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items)+1)
	if c.mode == prependNewest {
		next = append(next, item)
		next = append(next, c.items...)
	} else {
		next = append(next, c.items...)
		next = append(next, item)
	}
	return c.commit(next)
}

// update applies mutate to the entity with the given id and persists.
// An absent id returns apperr.ErrNotFound without touching durable state.
func (c *collection[T]) update(id string, mutate func(*T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.idOf(c.items[i]) != id {
			continue
		}
		item := c.items[i]
		mutate(&item)
		next := make([]T, len(c.items))
		copy(next, c.items)
		next[i] = item
		return c.commit(next)
	}
	return fmt.Errorf("store: %s %q: %w", c.key, id, apperr.ErrNotFound)
}

// remove deletes the entity with the given id and persists.
// An absent id returns apperr.ErrNotFound.
func (c *collection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items))
	found := false
	for _, item := range c.items {
		if c.idOf(item) == id {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		return fmt.Errorf("store: %s %q: %w", c.key, id, apperr.ErrNotFound)
	}
	return c.commit(next)
}

// commit persists next and, only on success, swaps it into the cache.
// Caller must hold the mutex.
func (c *collection[T]) commit(next []T) error {
	encoded := next
	if encoded == nil {
		// json.Marshal renders a nil slice as "null"; the wire format
		// is always an array.
		encoded = []T{}
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c.key, err)
	}
	if err := c.backend.Set(c.key, string(raw)); err != nil {
		return fmt.Errorf("store: persist %s: %w", c.key, err)
	}
	c.items = next
	return nil
}
