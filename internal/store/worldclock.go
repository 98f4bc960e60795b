package store

import (
	"log/slog"
	"time"

	"modulear/internal/kvstore"
	"modulear/internal/models"
)

// WorldClocks is the world-clock store. Clocks keep their add order.
type WorldClocks struct {
	c *collection[models.WorldClock]
}

// NewWorldClocks loads the clock collection from the backend.
func NewWorldClocks(backend kvstore.Backend, logger *slog.Logger) *WorldClocks {
	return &WorldClocks{c: newCollection(backend, KeyWorldClocks, appendNewest,
		func(w models.WorldClock) string { return w.ID }, logger)}
}

// List returns all clocks in add order.
func (s *WorldClocks) List() []models.WorldClock { return s.c.list() }

// Get returns the clock with the given id.
func (s *WorldClocks) Get(id string) (models.WorldClock, bool) { return s.c.get(id) }

// Create adds a new clock. Timezone validity is a boundary concern;
// clocks with zones the host stops recognizing render as placeholders.
func (s *WorldClocks) Create(city, timezone, label string) (models.WorldClock, error) {
	clock := models.WorldClock{
		ID:        newID(),
		City:      city,
		Timezone:  timezone,
		Label:     label,
		CreatedAt: time.Now(),
	}
	if err := s.c.insert(clock); err != nil {
		return models.WorldClock{}, err
	}
	return clock, nil
}

// SetLabel updates the optional display label of a clock.
func (s *WorldClocks) SetLabel(id, label string) error {
	return s.c.update(id, func(w *models.WorldClock) {
		w.Label = label
	})
}

// Delete removes the clock with the given id.
func (s *WorldClocks) Delete(id string) error { return s.c.remove(id) }
