package store

import (
	"log/slog"

	"modulear/internal/kvstore"
)

// Aggregate composes the six entity stores behind one handle. It is
// built once at startup, after which consumers receive it by reference;
// all six member stores are loaded before the constructor returns, so
// no consumer ever observes a partially initialized state.
type Aggregate struct {
	Todos       *Todos
	Diary       *Diary
	Countdowns  *Countdowns
	WorldClocks *WorldClocks
	Vocabulary  *Vocabulary
	StickyNotes *StickyNotes
}

// NewAggregate loads every collection from the backend.
func NewAggregate(backend kvstore.Backend, logger *slog.Logger) *Aggregate {
	return &Aggregate{
		Todos:       NewTodos(backend, logger),
		Diary:       NewDiary(backend, logger),
		Countdowns:  NewCountdowns(backend, logger),
		WorldClocks: NewWorldClocks(backend, logger),
		Vocabulary:  NewVocabulary(backend, logger),
		StickyNotes: NewStickyNotes(backend, logger),
	}
}

// Reload re-reads every collection from the backend. Called after a
// backup import, or when the watcher sees the data change underneath us.
func (a *Aggregate) Reload() {
	a.Todos.c.reload()
	a.Diary.c.reload()
	a.Countdowns.c.reload()
	a.WorldClocks.c.reload()
	a.Vocabulary.c.reload()
	a.StickyNotes.c.reload()
}
