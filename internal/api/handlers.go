package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"modulear/internal/apperr"
	"modulear/internal/backup"
	"modulear/internal/models"
	"modulear/internal/quiz"
	"modulear/internal/sse"
	"modulear/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	stores *store.Aggregate
	backup *backup.Service
	quiz   *quiz.Manager
	broker *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil when no SSE
// clients are served (tests, CLI contexts).
func NewHandler(stores *store.Aggregate, bk *backup.Service, qm *quiz.Manager, broker *sse.Broker) *Handler {
	return &Handler{stores: stores, backup: bk, quiz: qm, broker: broker}
}

// publish broadcasts an entity mutation to SSE clients.
func (h *Handler) publish(kind, action, id string) {
	if h.broker != nil {
		h.broker.Publish(sse.EntityEvent(kind, action, id))
	}
}

func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// --- Todos ---

func (h *Handler) ListTodos(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stores.Todos.List())
}

func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if !decodeValid(w, r, &req) {
		return
	}
	todo, err := h.stores.Todos.Create(req.Text)
	if err != nil {
		h.internalError(w, "create todo", err)
		return
	}
	h.publish(store.KeyTodos, "created", todo.ID)
	writeJSON(w, http.StatusCreated, todo)
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	var req UpdateTodoRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.stores.Todos.Update(id, store.TodoPatch{Text: req.Text, Completed: req.Completed}); err != nil {
		h.storeError(w, "update todo", err)
		return
	}
	todo, _ := h.stores.Todos.Get(id)
	h.publish(store.KeyTodos, "updated", id)
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, store.KeyTodos, h.stores.Todos.Delete)
}

// --- Diary ---

func (h *Handler) ListDiary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stores.Diary.List())
}

func (h *Handler) CreateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateDiaryRequest
	if !decodeValid(w, r, &req) {
		return
	}
	entry, err := h.stores.Diary.Create(req.Title, req.Content)
	if err != nil {
		h.internalError(w, "create diary entry", err)
		return
	}
	h.publish(store.KeyDiaryEntries, "created", entry.ID)
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) UpdateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	var req UpdateDiaryRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.stores.Diary.Update(id, req.Title, req.Content); err != nil {
		h.storeError(w, "update diary entry", err)
		return
	}
	entry, _ := h.stores.Diary.Get(id)
	h.publish(store.KeyDiaryEntries, "updated", id)
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, store.KeyDiaryEntries, h.stores.Diary.Delete)
}

// --- Countdowns ---

func (h *Handler) ListCountdowns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stores.Countdowns.List())
}

func (h *Handler) CreateCountdown(w http.ResponseWriter, r *http.Request) {
	var req CreateCountdownRequest
	if !decodeValid(w, r, &req) {
		return
	}
	cd, err := h.stores.Countdowns.Create(req.Title, req.TargetDate)
	if err != nil {
		h.internalError(w, "create countdown", err)
		return
	}
	h.publish(store.KeyCountdowns, "created", cd.ID)
	writeJSON(w, http.StatusCreated, cd)
}

func (h *Handler) DeleteCountdown(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, store.KeyCountdowns, h.stores.Countdowns.Delete)
}

// --- World clocks ---

func (h *Handler) ListClocks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stores.WorldClocks.List())
}

func (h *Handler) CreateClock(w http.ResponseWriter, r *http.Request) {
	var req CreateClockRequest
	if !decodeValid(w, r, &req) {
		return
	}
	clock, err := h.stores.WorldClocks.Create(req.City, req.Timezone, req.Label)
	if err != nil {
		h.internalError(w, "create clock", err)
		return
	}
	h.publish(store.KeyWorldClocks, "created", clock.ID)
	writeJSON(w, http.StatusCreated, clock)
}

func (h *Handler) UpdateClock(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	var req UpdateClockRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.stores.WorldClocks.SetLabel(id, req.Label); err != nil {
		h.storeError(w, "update clock", err)
		return
	}
	clock, _ := h.stores.WorldClocks.Get(id)
	h.publish(store.KeyWorldClocks, "updated", id)
	writeJSON(w, http.StatusOK, clock)
}

func (h *Handler) DeleteClock(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, store.KeyWorldClocks, h.stores.WorldClocks.Delete)
}

// --- Sticky notes ---

func (h *Handler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stores.StickyNotes.List())
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if !decodeValid(w, r, &req) {
		return
	}
	color := req.Color
	if color == "" {
		color = models.NoteYellow
	}
	note, err := h.stores.StickyNotes.Create(req.Content, color)
	if err != nil {
		h.internalError(w, "create note", err)
		return
	}
	h.publish(store.KeyStickyNotes, "created", note.ID)
	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	var req UpdateNoteRequest
	if !decodeValid(w, r, &req) {
		return
	}
	patch := store.StickyNotePatch{
		Content: req.Content,
		Color:   req.Color,
		Width:   req.Width,
		Height:  req.Height,
	}
	if err := h.stores.StickyNotes.Update(id, patch); err != nil {
		h.storeError(w, "update note", err)
		return
	}
	note, _ := h.stores.StickyNotes.Get(id)
	h.publish(store.KeyStickyNotes, "updated", id)
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, store.KeyStickyNotes, h.stores.StickyNotes.Delete)
}

// --- shared ---

// deleteEntity runs the common delete flow: 404 when the id is unknown,
// 204 and an SSE event on success.
func (h *Handler) deleteEntity(w http.ResponseWriter, r *http.Request, kind string, del func(id string) error) {
	id := urlID(r)
	if err := del(id); err != nil {
		h.storeError(w, "delete "+kind, err)
		return
	}
	h.publish(kind, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// storeError maps a failed store mutation onto the response: unknown
// ids become 404, anything else is an internal error.
func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.internalError(w, op, err)
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}
