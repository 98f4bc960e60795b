package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// To-dos.
	r.Get("/todos", h.ListTodos)
	r.Post("/todos", h.CreateTodo)
	r.Patch("/todos/{id}", h.UpdateTodo)
	r.Delete("/todos/{id}", h.DeleteTodo)

	// Diary.
	r.Get("/diary", h.ListDiary)
	r.Post("/diary", h.CreateDiaryEntry)
	r.Put("/diary/{id}", h.UpdateDiaryEntry)
	r.Delete("/diary/{id}", h.DeleteDiaryEntry)

	// Countdowns.
	r.Get("/countdowns", h.ListCountdowns)
	r.Post("/countdowns", h.CreateCountdown)
	r.Delete("/countdowns/{id}", h.DeleteCountdown)

	// World clocks.
	r.Get("/clocks", h.ListClocks)
	r.Post("/clocks", h.CreateClock)
	r.Patch("/clocks/{id}", h.UpdateClock)
	r.Delete("/clocks/{id}", h.DeleteClock)

	// Vocabulary.
	r.Get("/vocabulary", h.ListVocabulary)
	r.Post("/vocabulary", h.CreateVocabularyItem)
	r.Put("/vocabulary/{id}", h.UpdateVocabularyItem)
	r.Put("/vocabulary/{id}/mastery", h.SetMastery)
	r.Delete("/vocabulary/{id}", h.DeleteVocabularyItem)

	// Sticky notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Patch("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	// Quiz.
	r.Post("/quiz/start", h.StartQuiz)
	r.Get("/quiz", h.QuizState)
	r.Post("/quiz/reveal", h.RevealQuiz)
	r.Post("/quiz/answer", h.AnswerQuiz)
	r.Delete("/quiz", h.ExitQuiz)

	// Backup / restore.
	r.Get("/backup", h.ExportBackup)
	r.Post("/backup", h.ImportBackup)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
