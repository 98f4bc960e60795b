package store

import (
	"log/slog"
	"time"

	"modulear/internal/kvstore"
	"modulear/internal/models"
)

// Diary is the diary-entry store. New entries go to the front.
type Diary struct {
	c *collection[models.DiaryEntry]
}

// NewDiary loads the diary collection from the backend.
func NewDiary(backend kvstore.Backend, logger *slog.Logger) *Diary {
	return &Diary{c: newCollection(backend, KeyDiaryEntries, prependNewest,
		func(e models.DiaryEntry) string { return e.ID }, logger)}
}

// List returns all entries, newest first.
func (s *Diary) List() []models.DiaryEntry { return s.c.list() }

// Get returns the entry with the given id.
func (s *Diary) Get(id string) (models.DiaryEntry, bool) { return s.c.get(id) }

// Create adds a new entry dated now.
func (s *Diary) Create(title, content string) (models.DiaryEntry, error) {
	entry := models.DiaryEntry{
		ID:      newID(),
		Date:    time.Now(),
		Title:   title,
		Content: content,
	}
	if err := s.c.insert(entry); err != nil {
		return models.DiaryEntry{}, err
	}
	return entry, nil
}

// Update replaces title and content of the entry with the given id.
// The entry date is fixed at creation and never changes.
func (s *Diary) Update(id, title, content string) error {
	return s.c.update(id, func(e *models.DiaryEntry) {
		e.Title = title
		e.Content = content
	})
}

// Delete removes the entry with the given id.
func (s *Diary) Delete(id string) error { return s.c.remove(id) }
