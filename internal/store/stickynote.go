package store

import (
	"log/slog"
	"time"

	"modulear/internal/kvstore"
	"modulear/internal/models"
)

// StickyNotes is the sticky-note store. Notes keep their add order.
type StickyNotes struct {
	c *collection[models.StickyNote]
}

// NewStickyNotes loads the sticky-note collection from the backend.
func NewStickyNotes(backend kvstore.Backend, logger *slog.Logger) *StickyNotes {
	return &StickyNotes{c: newCollection(backend, KeyStickyNotes, appendNewest,
		func(n models.StickyNote) string { return n.ID }, logger)}
}

// List returns all notes in add order.
func (s *StickyNotes) List() []models.StickyNote { return s.c.list() }

// Get returns the note with the given id.
func (s *StickyNotes) Get(id string) (models.StickyNote, bool) { return s.c.get(id) }

// Create adds a new note at the default size.
func (s *StickyNotes) Create(content string, color models.NoteColor) (models.StickyNote, error) {
	note := models.StickyNote{
		ID:        newID(),
		Content:   content,
		Color:     color,
		Width:     models.DefaultNoteSize,
		Height:    models.DefaultNoteSize,
		CreatedAt: time.Now(),
	}
	if err := s.c.insert(note); err != nil {
		return models.StickyNote{}, err
	}
	return note, nil
}

// StickyNotePatch holds optional field updates; nil fields are left
// unchanged. Dimensions are clamped into the allowed pixel range.
type StickyNotePatch struct {
	Content *string
	Color   *models.NoteColor
	Width   *int
	Height  *int
}

// Update merges patch into the note with the given id.
func (s *StickyNotes) Update(id string, patch StickyNotePatch) error {
	return s.c.update(id, func(n *models.StickyNote) {
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.Color != nil {
			n.Color = *patch.Color
		}
		if patch.Width != nil {
			n.Width = models.ClampNoteSize(*patch.Width)
		}
		if patch.Height != nil {
			n.Height = models.ClampNoteSize(*patch.Height)
		}
	})
}

// Delete removes the note with the given id.
func (s *StickyNotes) Delete(id string) error { return s.c.remove(id) }
