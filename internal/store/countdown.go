package store

import (
	"log/slog"
	"time"

	"modulear/internal/kvstore"
	"modulear/internal/models"
)

// Countdowns is the countdown-timer store. New timers go to the front.
//
// The API boundary guarantees the target date lies in the future at
// creation; the store places no check on it afterwards, so targets are
// free to lapse.
type Countdowns struct {
	c *collection[models.Countdown]
}

// NewCountdowns loads the countdown collection from the backend.
func NewCountdowns(backend kvstore.Backend, logger *slog.Logger) *Countdowns {
	return &Countdowns{c: newCollection(backend, KeyCountdowns, prependNewest,
		func(cd models.Countdown) string { return cd.ID }, logger)}
}

// List returns all countdowns, newest first.
func (s *Countdowns) List() []models.Countdown { return s.c.list() }

// Get returns the countdown with the given id.
func (s *Countdowns) Get(id string) (models.Countdown, bool) { return s.c.get(id) }

// Create adds a new countdown.
func (s *Countdowns) Create(title string, targetDate time.Time) (models.Countdown, error) {
	cd := models.Countdown{
		ID:         newID(),
		Title:      title,
		TargetDate: targetDate,
		CreatedAt:  time.Now(),
	}
	if err := s.c.insert(cd); err != nil {
		return models.Countdown{}, err
	}
	return cd, nil
}

// Delete removes the countdown with the given id.
func (s *Countdowns) Delete(id string) error { return s.c.remove(id) }
