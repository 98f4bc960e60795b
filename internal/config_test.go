package internal

import (
	"log/slog"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverSQLite {
		t.Errorf("default driver = %q", cfg.Storage.Driver)
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth enabled by default")
	}
}

func TestStorageDriverValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Storage.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown driver accepted")
	}

	cfg.Storage.Driver = StorageDriverFS
	cfg.Storage.Path = "./data"
	if err := cfg.Validate(); err != nil {
		t.Errorf("fs driver rejected: %v", err)
	}

	// Empty driver normalises to sqlite.
	cfg = NewDefaultConfig()
	cfg.Storage.Driver = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverSQLite {
		t.Errorf("driver = %q after normalise", cfg.Storage.Driver)
	}
}

func TestAuthTokenModeRequiresToken(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = AuthModeToken
	if err := cfg.Validate(); err == nil {
		t.Error("token mode without token accepted")
	}

	cfg.Auth.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("token mode with token rejected: %v", err)
	}
	if !cfg.Auth.AuthEnabled() {
		t.Error("AuthEnabled false in token mode")
	}
}

func TestAuthModeValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "basic"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown auth mode accepted")
	}

	cfg.Auth.Mode = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Auth.Mode != AuthModeDisabled {
		t.Errorf("mode = %q after normalise", cfg.Auth.Mode)
	}
}

func TestLogLevelParsing(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.LogLevel = "debug"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.App.Level() != slog.LevelDebug {
		t.Errorf("Level = %v", cfg.App.Level())
	}

	cfg.App.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("bad log level accepted")
	}
}

func TestHTTPPortValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("port 0 accepted")
	}
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("port 70000 accepted")
	}
	cfg.App.HTTP.Port = 8080
	if err := cfg.Validate(); err != nil {
		t.Errorf("port 8080 rejected: %v", err)
	}
	if cfg.App.HTTP.Address() != ":8080" {
		t.Errorf("Address = %q", cfg.App.HTTP.Address())
	}
}
