package api

import (
	"errors"
	"net/http"

	"modulear/internal/quiz"
	"modulear/internal/store"
)

// StartQuiz handles POST /quiz/start. Starting requires enough
// vocabulary words; otherwise the machine stays in not-started and the
// caller gets a 409.
func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if !decodeValid(w, r, &req) {
		return
	}
	snap, err := h.quiz.Start(req.Direction)
	if err != nil {
		if errors.Is(err, quiz.ErrNotEnoughWords) {
			writeJSON(w, http.StatusConflict, errorBody("at least 5 vocabulary words are required"))
			return
		}
		h.internalError(w, "start quiz", err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// QuizState handles GET /quiz.
func (h *Handler) QuizState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.quiz.Snapshot())
}

// RevealQuiz handles POST /quiz/reveal.
func (h *Handler) RevealQuiz(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.quiz.Reveal()
	if err != nil {
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// AnswerQuiz handles POST /quiz/answer. Judging mutates the current
// item's mastery through the vocabulary store, so an SSE update goes
// out alongside the new machine state.
func (h *Handler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeValid(w, r, &req) {
		return
	}
	snap, err := h.quiz.Answer(*req.Correct)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrNoSession), errors.Is(err, quiz.ErrNotRevealed):
			writeJSON(w, http.StatusConflict, errorBody(err.Error()))
		default:
			h.internalError(w, "answer quiz", err)
		}
		return
	}
	h.publish(store.KeyVocabulary, "updated", "")
	writeJSON(w, http.StatusOK, snap)
}

// ExitQuiz handles DELETE /quiz: discards the in-flight session.
func (h *Handler) ExitQuiz(w http.ResponseWriter, _ *http.Request) {
	h.quiz.Exit()
	w.WriteHeader(http.StatusNoContent)
}
