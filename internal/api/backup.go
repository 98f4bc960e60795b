package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"modulear/internal/apperr"
	"modulear/internal/backup"
	"modulear/internal/sse"
)

// ExportBackup handles GET /backup: streams the backup document as a
// JSON download named after today's date, the way the original client
// did.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	data, digest, err := h.backup.ExportJSON()
	if err != nil {
		h.internalError(w, "export backup", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", backup.Filename(time.Now())))
	w.Header().Set("ETag", `"`+digest+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportBackup handles POST /backup. The body is the backup document
// itself. Validation failures leave durable state untouched and report
// 400; on success every store is reloaded and clients are told to
// refetch.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}

	doc, err := h.backup.Import(data)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		h.internalError(w, "import backup", err)
		return
	}

	if h.broker != nil {
		h.broker.Publish(sse.ReloadEvent())
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "restored",
		"takenAt": doc.Timestamp,
	})
}
