package store

import (
	"log/slog"
	"time"

	"modulear/internal/kvstore"
	"modulear/internal/models"
)

// Todos is the to-do list store. New items go to the front.
type Todos struct {
	c *collection[models.Todo]
}

// NewTodos loads the to-do collection from the backend.
func NewTodos(backend kvstore.Backend, logger *slog.Logger) *Todos {
	return &Todos{c: newCollection(backend, KeyTodos, prependNewest,
		func(t models.Todo) string { return t.ID }, logger)}
}

// List returns all to-dos, newest first.
func (s *Todos) List() []models.Todo { return s.c.list() }

// Get returns the to-do with the given id.
func (s *Todos) Get(id string) (models.Todo, bool) { return s.c.get(id) }

// Create adds a new, uncompleted to-do.
func (s *Todos) Create(text string) (models.Todo, error) {
	todo := models.Todo{
		ID:        newID(),
		Text:      text,
		Completed: false,
		CreatedAt: time.Now(),
	}
	if err := s.c.insert(todo); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// TodoPatch holds optional field updates; nil fields are left unchanged.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// Update merges patch into the to-do with the given id.
func (s *Todos) Update(id string, patch TodoPatch) error {
	return s.c.update(id, func(t *models.Todo) {
		if patch.Text != nil {
			t.Text = *patch.Text
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
	})
}

// Toggle flips the completed flag of the to-do with the given id.
func (s *Todos) Toggle(id string) error {
	return s.c.update(id, func(t *models.Todo) {
		t.Completed = !t.Completed
	})
}

// Delete removes the to-do with the given id.
func (s *Todos) Delete(id string) error { return s.c.remove(id) }
