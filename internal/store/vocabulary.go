package store

import (
	"log/slog"
	"time"

	"modulear/internal/kvstore"
	"modulear/internal/models"
)

// Vocabulary is the vocabulary-item store. New words go to the front.
type Vocabulary struct {
	c *collection[models.VocabularyItem]
}

// NewVocabulary loads the vocabulary collection from the backend.
func NewVocabulary(backend kvstore.Backend, logger *slog.Logger) *Vocabulary {
	return &Vocabulary{c: newCollection(backend, KeyVocabulary, prependNewest,
		func(v models.VocabularyItem) string { return v.ID }, logger)}
}

// List returns all vocabulary items, newest first.
func (s *Vocabulary) List() []models.VocabularyItem { return s.c.list() }

// Get returns the item with the given id.
func (s *Vocabulary) Get(id string) (models.VocabularyItem, bool) { return s.c.get(id) }

// Count returns the number of vocabulary items.
func (s *Vocabulary) Count() int { return s.c.size() }

// Create adds a new word at mastery zero.
func (s *Vocabulary) Create(word, definition, example, notes string) (models.VocabularyItem, error) {
	item := models.VocabularyItem{
		ID:           newID(),
		Word:         word,
		Definition:   definition,
		Example:      example,
		Notes:        notes,
		CreatedAt:    time.Now(),
		MasteryLevel: models.MinMastery,
	}
	if err := s.c.insert(item); err != nil {
		return models.VocabularyItem{}, err
	}
	return item, nil
}

// VocabularyPatch holds optional field updates; nil fields are left
// unchanged. Edits never touch mastery or lastReviewed.
type VocabularyPatch struct {
	Word       *string
	Definition *string
	Example    *string
	Notes      *string
}

// Update merges patch into the item with the given id.
func (s *Vocabulary) Update(id string, patch VocabularyPatch) error {
	return s.c.update(id, func(v *models.VocabularyItem) {
		if patch.Word != nil {
			v.Word = *patch.Word
		}
		if patch.Definition != nil {
			v.Definition = *patch.Definition
		}
		if patch.Example != nil {
			v.Example = *patch.Example
		}
		if patch.Notes != nil {
			v.Notes = *patch.Notes
		}
	})
}

// SetMastery clamps level into the valid range, stores it, and stamps
// lastReviewed with the current time.
func (s *Vocabulary) SetMastery(id string, level int) error {
	now := time.Now()
	return s.c.update(id, func(v *models.VocabularyItem) {
		v.MasteryLevel = models.ClampMastery(level)
		v.LastReviewed = &now
	})
}

// Delete removes the item with the given id.
func (s *Vocabulary) Delete(id string) error { return s.c.remove(id) }
