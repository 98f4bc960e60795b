package backup

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"modulear/internal/apperr"
	"modulear/internal/kvstore"
	"modulear/internal/store"
)

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
func (m *memBackend) Keys() ([]string, error)     { return nil, nil }
func (m *memBackend) Close() error                { return nil }

var _ kvstore.Backend = (*memBackend)(nil)

type reloadSpy struct{ calls int }

func (r *reloadSpy) Reload() { r.calls++ }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExportAbsentKeysAreNull(t *testing.T) {
	backend := newMemBackend()
	backend.data[store.KeyTodos] = `[{"id":"t1"}]`

	svc := NewService(backend, nil, testLogger())
	doc, err := svc.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if doc.Todos == nil || *doc.Todos != `[{"id":"t1"}]` {
		t.Errorf("todos = %v", doc.Todos)
	}
	if doc.DiaryEntries != nil {
		t.Error("absent diaryEntries should be nil")
	}
	if doc.Version != Version {
		t.Errorf("version = %q", doc.Version)
	}
	if _, err := time.Parse(time.RFC3339, doc.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", doc.Timestamp, err)
	}
}

func TestExportJSONRendersNullFields(t *testing.T) {
	svc := NewService(newMemBackend(), nil, testLogger())
	data, digest, err := svc.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if digest == "" {
		t.Error("empty digest")
	}
	if !strings.Contains(string(data), `"todos": null`) {
		t.Errorf("expected explicit null for todos:\n%s", data)
	}
}

func TestImportRoundTripPreservesBytes(t *testing.T) {
	backend := newMemBackend()
	backend.data[store.KeyVocabulary] = `[{"id":"w1","word":"saudade"}]`
	backend.data[store.KeyStickyNotes] = `[{"id":"n1","color":"yellow"}]`

	svc := NewService(backend, nil, testLogger())
	data, _, err := svc.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	restore := newMemBackend()
	spy := &reloadSpy{}
	restoreSvc := NewService(restore, spy, testLogger())
	if _, err := restoreSvc.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if restore.data[store.KeyVocabulary] != backend.data[store.KeyVocabulary] {
		t.Error("vocabulary string changed in transit")
	}
	if restore.data[store.KeyStickyNotes] != backend.data[store.KeyStickyNotes] {
		t.Error("stickyNotes string changed in transit")
	}
	if spy.calls != 1 {
		t.Errorf("reload calls = %d, want 1", spy.calls)
	}
}

func TestImportNullKeysLeaveDataAlone(t *testing.T) {
	backend := newMemBackend()
	backend.data[store.KeyDiaryEntries] = `[{"id":"d1","title":"keep me"}]`

	doc := map[string]any{
		"todos":     `[{"id":"t9"}]`,
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	data, _ := json.Marshal(doc)

	svc := NewService(backend, &reloadSpy{}, testLogger())
	if _, err := svc.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if backend.data[store.KeyDiaryEntries] != `[{"id":"d1","title":"keep me"}]` {
		t.Error("null diaryEntries overwrote existing data")
	}
	if backend.data[store.KeyTodos] != `[{"id":"t9"}]` {
		t.Error("present todos key not restored")
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `this is not json`},
		{"missing version", `{"timestamp":"2025-01-01T00:00:00Z"}`},
		{"missing timestamp", `{"version":"1.0.0"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := newMemBackend()
			backend.data[store.KeyTodos] = "untouched"
			spy := &reloadSpy{}
			svc := NewService(backend, spy, testLogger())

			_, err := svc.Import([]byte(tc.data))
			if !errors.Is(err, apperr.ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if backend.data[store.KeyTodos] != "untouched" {
				t.Error("rejected import mutated durable state")
			}
			if spy.calls != 0 {
				t.Error("rejected import triggered reload")
			}
		})
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
	if got := Filename(at); got != "modulear-backup-2025-03-09.json" {
		t.Errorf("Filename = %q", got)
	}
}
