package store

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"modulear/internal/apperr"
	"modulear/internal/models"
)

// memBackend is an in-memory Backend for store tests. It exposes the
// raw persisted strings so write-through behavior can be asserted.
type memBackend struct {
	data map[string]string
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string]string)}
}

func (m *memBackend) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *memBackend) Set(key, value string) error { m.data[key] = value; return nil }
func (m *memBackend) Delete(key string) error     { delete(m.data, key); return nil }
func (m *memBackend) Keys() ([]string, error) {
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out, nil
}
func (m *memBackend) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAggregate(t *testing.T) (*Aggregate, *memBackend) {
	t.Helper()
	backend := newMemBackend()
	return NewAggregate(backend, testLogger()), backend
}

func TestTodoCreateWritesThrough(t *testing.T) {
	agg, backend := testAggregate(t)

	todo, err := agg.Todos.Create("Buy milk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.ID == "" {
		t.Error("empty id")
	}
	if todo.Completed {
		t.Error("new todo should start uncompleted")
	}

	raw, ok := backend.data[KeyTodos]
	if !ok {
		t.Fatal("todos key not persisted")
	}
	var stored []models.Todo
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("persisted todos unparseable: %v", err)
	}
	if len(stored) != 1 || stored[0].Text != "Buy milk" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestTodoLifecycle(t *testing.T) {
	agg, _ := testAggregate(t)

	todo, _ := agg.Todos.Create("Buy milk")
	if err := agg.Todos.Toggle(todo.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	got, ok := agg.Todos.Get(todo.ID)
	if !ok || !got.Completed {
		t.Errorf("after toggle: %+v, ok=%v", got, ok)
	}

	text := "Buy oat milk"
	if err := agg.Todos.Update(todo.ID, TodoPatch{Text: &text}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = agg.Todos.Get(todo.ID)
	if got.Text != "Buy oat milk" {
		t.Errorf("text = %q", got.Text)
	}
	if !got.Completed {
		t.Error("text edit must not reset completed")
	}

	if err := agg.Todos.Delete(todo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := agg.Todos.Get(todo.ID); ok {
		t.Error("deleted todo still present")
	}
}

func TestPrependOrder(t *testing.T) {
	agg, _ := testAggregate(t)

	first, _ := agg.Todos.Create("first")
	second, _ := agg.Todos.Create("second")

	list := agg.Todos.List()
	if len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("todos must list newest first")
	}
}

func TestAppendOrder(t *testing.T) {
	agg, _ := testAggregate(t)

	tokyo, _ := agg.WorldClocks.Create("Tokyo", "Asia/Tokyo", "")
	lima, _ := agg.WorldClocks.Create("Lima", "America/Lima", "")

	list := agg.WorldClocks.List()
	if len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].ID != tokyo.ID || list[1].ID != lima.ID {
		t.Error("clocks must keep add order")
	}
}

func TestEmptyCollectionPersistsAsArray(t *testing.T) {
	agg, backend := testAggregate(t)

	todo, _ := agg.Todos.Create("only one")
	_ = agg.Todos.Delete(todo.ID)

	if raw := backend.data[KeyTodos]; raw != "[]" {
		t.Errorf("empty collection persisted as %q, want []", raw)
	}
}

func TestMalformedDataStartsEmpty(t *testing.T) {
	backend := newMemBackend()
	backend.data[KeyTodos] = "{not json"

	agg := NewAggregate(backend, testLogger())
	if got := agg.Todos.List(); len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}

	// The store is usable again after the fallback.
	if _, err := agg.Todos.Create("fresh start"); err != nil {
		t.Fatalf("Create after fallback: %v", err)
	}
}

func TestReloadPicksUpBackendChanges(t *testing.T) {
	agg, backend := testAggregate(t)

	backend.data[KeyTodos] = `[{"id":"ext1","text":"external","completed":false,"createdAt":"2025-03-01T10:00:00Z"}]`
	agg.Reload()

	list := agg.Todos.List()
	if len(list) != 1 || list[0].ID != "ext1" {
		t.Errorf("after reload: %+v", list)
	}
}

func TestUnknownIDReturnsNotFound(t *testing.T) {
	agg, backend := testAggregate(t)
	_, _ = agg.Todos.Create("keep")

	before := backend.data[KeyTodos]
	text := "never applied"
	if err := agg.Todos.Update("no-such-id", TodoPatch{Text: &text}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update: err = %v, want ErrNotFound", err)
	}
	if err := agg.Todos.Delete("no-such-id"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Delete: err = %v, want ErrNotFound", err)
	}
	if backend.data[KeyTodos] != before {
		t.Error("failed mutation must not rewrite durable state")
	}
}

func TestDiaryDateImmutable(t *testing.T) {
	agg, _ := testAggregate(t)

	entry, _ := agg.Diary.Create("Day one", "content")
	if err := agg.Diary.Update(entry.ID, "Day one, revised", "new content"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := agg.Diary.Get(entry.ID)
	if !got.Date.Equal(entry.Date) {
		t.Error("entry date changed on edit")
	}
	if got.Title != "Day one, revised" || got.Content != "new content" {
		t.Errorf("got %+v", got)
	}
}

func TestVocabularyMasteryClamp(t *testing.T) {
	agg, _ := testAggregate(t)
	item, _ := agg.Vocabulary.Create("ephemeral", "short-lived", "", "")

	cases := []struct {
		level int
		want  int
	}{
		{-3, models.MinMastery},
		{0, 0},
		{3, 3},
		{5, 5},
		{99, models.MaxMastery},
	}
	for _, tc := range cases {
		if err := agg.Vocabulary.SetMastery(item.ID, tc.level); err != nil {
			t.Fatalf("SetMastery(%d): %v", tc.level, err)
		}
		got, _ := agg.Vocabulary.Get(item.ID)
		if got.MasteryLevel != tc.want {
			t.Errorf("SetMastery(%d): level = %d, want %d", tc.level, got.MasteryLevel, tc.want)
		}
		if got.LastReviewed == nil {
			t.Errorf("SetMastery(%d): lastReviewed not stamped", tc.level)
		}
	}
}

func TestVocabularyEditLeavesReviewStateAlone(t *testing.T) {
	agg, _ := testAggregate(t)
	item, _ := agg.Vocabulary.Create("sonder", "a realization", "", "")

	_ = agg.Vocabulary.SetMastery(item.ID, 2)
	reviewed, _ := agg.Vocabulary.Get(item.ID)

	def := "the realization that each passerby has a life as vivid as your own"
	if err := agg.Vocabulary.Update(item.ID, VocabularyPatch{Definition: &def}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := agg.Vocabulary.Get(item.ID)
	if got.MasteryLevel != 2 {
		t.Errorf("mastery = %d, want 2", got.MasteryLevel)
	}
	if got.LastReviewed == nil || !got.LastReviewed.Equal(*reviewed.LastReviewed) {
		t.Error("edit must not move lastReviewed")
	}
	if got.Definition != def {
		t.Errorf("definition = %q", got.Definition)
	}
}

func TestStickyNoteDefaultsAndClamp(t *testing.T) {
	agg, _ := testAggregate(t)

	note, _ := agg.StickyNotes.Create("remember this", models.NotePink)
	if note.Width != models.DefaultNoteSize || note.Height != models.DefaultNoteSize {
		t.Errorf("default size = %dx%d", note.Width, note.Height)
	}

	tiny, huge := 5, 9999
	if err := agg.StickyNotes.Update(note.ID, StickyNotePatch{Width: &tiny, Height: &huge}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := agg.StickyNotes.Get(note.ID)
	if got.Width != models.MinNoteSize {
		t.Errorf("width = %d, want %d", got.Width, models.MinNoteSize)
	}
	if got.Height != models.MaxNoteSize {
		t.Errorf("height = %d, want %d", got.Height, models.MaxNoteSize)
	}
}

func TestListReturnsCopy(t *testing.T) {
	agg, _ := testAggregate(t)
	_, _ = agg.Todos.Create("original")

	list := agg.Todos.List()
	list[0].Text = "mutated"

	again := agg.Todos.List()
	if again[0].Text != "original" {
		t.Error("List must not expose the cache")
	}
}

func TestTimesSurviveRoundTrip(t *testing.T) {
	backend := newMemBackend()
	agg := NewAggregate(backend, testLogger())

	target := time.Now().Add(48 * time.Hour)
	cd, _ := agg.Countdowns.Create("launch", target)

	// Fresh aggregate re-reads everything from the backend.
	agg2 := NewAggregate(backend, testLogger())
	got, ok := agg2.Countdowns.Get(cd.ID)
	if !ok {
		t.Fatal("countdown lost in round trip")
	}
	if !got.TargetDate.Equal(target) {
		t.Errorf("target = %v, want %v", got.TargetDate, target)
	}
}
