// Package testutil provides shared test helpers for setting up
// key-value backends and entity stores.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"modulear/internal/kvstore"
	"modulear/internal/store"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSQLite creates a temporary SQLite backend that is automatically
// cleaned up.
func TestSQLite(t *testing.T) kvstore.Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modulear-test.db")
	backend, err := kvstore.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

// TestFS creates a temporary directory-backed backend.
func TestFS(t *testing.T) (string, kvstore.Backend) {
	t.Helper()
	dir := t.TempDir()
	backend, err := kvstore.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, backend
}

// TestStores builds an aggregate on a fresh SQLite backend.
func TestStores(t *testing.T) (*store.Aggregate, kvstore.Backend) {
	t.Helper()
	backend := TestSQLite(t)
	return store.NewAggregate(backend, Logger()), backend
}
