package api

import (
	"net/http"

	"modulear/internal/store"
)

func (h *Handler) ListVocabulary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stores.Vocabulary.List())
}

func (h *Handler) CreateVocabularyItem(w http.ResponseWriter, r *http.Request) {
	var req CreateVocabularyRequest
	if !decodeValid(w, r, &req) {
		return
	}
	item, err := h.stores.Vocabulary.Create(req.Word, req.Definition, req.Example, req.Notes)
	if err != nil {
		h.internalError(w, "create vocabulary item", err)
		return
	}
	h.publish(store.KeyVocabulary, "created", item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateVocabularyItem(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	var req UpdateVocabularyRequest
	if !decodeValid(w, r, &req) {
		return
	}
	patch := store.VocabularyPatch{
		Word:       req.Word,
		Definition: req.Definition,
		Example:    req.Example,
		Notes:      req.Notes,
	}
	if err := h.stores.Vocabulary.Update(id, patch); err != nil {
		h.storeError(w, "update vocabulary item", err)
		return
	}
	item, _ := h.stores.Vocabulary.Get(id)
	h.publish(store.KeyVocabulary, "updated", id)
	writeJSON(w, http.StatusOK, item)
}

// SetMastery handles PUT /vocabulary/{id}/mastery. The store clamps
// the level into the valid range and stamps lastReviewed.
func (h *Handler) SetMastery(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	var req SetMasteryRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.stores.Vocabulary.SetMastery(id, req.Level); err != nil {
		h.storeError(w, "set mastery", err)
		return
	}
	item, _ := h.stores.Vocabulary.Get(id)
	h.publish(store.KeyVocabulary, "updated", id)
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteVocabularyItem(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, store.KeyVocabulary, h.stores.Vocabulary.Delete)
}
