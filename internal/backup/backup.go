// Package backup implements whole-store export and import.
//
// Exports carry the raw persisted string for every entity kind exactly
// as it sits in the durable backend. Re-serializing from the in-memory
// stores would risk drift; lifting the raw strings guarantees byte
// parity between a backup and what is actually durable.
package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"modulear/internal/apperr"
	"modulear/internal/checksum"
	"modulear/internal/kvstore"
	"modulear/internal/store"
)

// Version is the backup document format version.
const Version = "1.0.0"

// Document is the backup wire format. Entity fields hold the raw
// persisted JSON string for their kind, or null when the kind has never
// been written. The strings are opaque here: import writes them back
// verbatim without re-parsing.
type Document struct {
	Todos        *string `json:"todos"`
	DiaryEntries *string `json:"diaryEntries"`
	Countdowns   *string `json:"countdowns"`
	WorldClocks  *string `json:"worldClocks"`
	Vocabulary   *string `json:"vocabulary"`
	StickyNotes  *string `json:"stickyNotes"`
	Version      string  `json:"version"`
	Timestamp    string  `json:"timestamp"`
}

// field returns a pointer to the document slot for the given durable key.
func (d *Document) field(key string) **string {
	switch key {
	case store.KeyTodos:
		return &d.Todos
	case store.KeyDiaryEntries:
		return &d.DiaryEntries
	case store.KeyCountdowns:
		return &d.Countdowns
	case store.KeyWorldClocks:
		return &d.WorldClocks
	case store.KeyVocabulary:
		return &d.Vocabulary
	case store.KeyStickyNotes:
		return &d.StickyNotes
	}
	return nil
}

// Reloader is notified after a successful import so in-memory caches
// catch up with the rewritten durable state.
type Reloader interface {
	Reload()
}

// Service produces and applies backup documents.
type Service struct {
	backend kvstore.Backend
	stores  Reloader
	logger  *slog.Logger
}

// NewService creates a backup service over the given backend. stores
// may be nil in contexts (such as the CLI export path) where no
// in-memory caches exist to refresh.
func NewService(backend kvstore.Backend, stores Reloader, logger *slog.Logger) *Service {
	return &Service{backend: backend, stores: stores, logger: logger}
}

// Export bundles the raw durable string of every entity kind with the
// format version and the current time.
func (s *Service) Export() (*Document, error) {
	doc := &Document{
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, key := range store.Keys() {
		raw, ok, err := s.backend.Get(key)
		if err != nil {
			return nil, fmt.Errorf("backup: read %s: %w", key, err)
		}
		if !ok {
			continue // absent keys stay null
		}
		value := raw
		*doc.field(key) = &value
	}
	return doc, nil
}

// ExportJSON renders the export document the way the original client
// did: indented JSON. The returned digest identifies the document for
// ETag headers and logs.
func (s *Service) ExportJSON() (data []byte, digest string, err error) {
	doc, err := s.Export()
	if err != nil {
		return nil, "", err
	}
	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("backup: encode: %w", err)
	}
	digest = checksum.Sum(data)
	s.logger.Info("backup exported",
		slog.Int("bytes", len(data)), slog.String("digest", digest))
	return data, digest, nil
}

// Filename returns the download filename for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("modulear-backup-%s.json", t.Format("2006-01-02"))
}

// Import validates data and applies it to the backend.
//
// Validation is all-or-nothing: unparseable JSON or a missing
// version/timestamp marker rejects the document before any key is
// written. Application is per-key: only keys present and non-null in
// the document overwrite durable state, so a partial backup never
// erases unrelated data. After the last write the in-memory stores are
// reloaded.
func (s *Service) Import(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("backup: %w: not valid JSON: %v", apperr.ErrInvalid, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("backup: %w: missing version", apperr.ErrInvalid)
	}
	if doc.Timestamp == "" {
		return nil, fmt.Errorf("backup: %w: missing timestamp", apperr.ErrInvalid)
	}

	restored := 0
	for _, key := range store.Keys() {
		value := *doc.field(key)
		if value == nil {
			continue
		}
		if err := s.backend.Set(key, *value); err != nil {
			return nil, fmt.Errorf("backup: restore %s: %w", key, err)
		}
		restored++
	}

	if s.stores != nil {
		s.stores.Reload()
	}
	s.logger.Info("backup imported",
		slog.Int("keys", restored),
		slog.String("version", doc.Version),
		slog.String("taken_at", doc.Timestamp))
	return &doc, nil
}
