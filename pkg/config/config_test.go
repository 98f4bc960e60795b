package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type plainConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "name: modulear\nport: 8080\n")

	var cfg plainConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "modulear" || cfg.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("CONFIG_TEST_TOKEN", "s3cret")
	path := writeConfig(t, "name: ${CONFIG_TEST_TOKEN}\n")

	var cfg plainConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "s3cret" {
		t.Errorf("name = %q, want expanded env value", cfg.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg plainConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "name: [unclosed\n")
	var cfg plainConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("expected parse error")
	}
}

var errTooSmall = errors.New("port too small")

type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port < 1024 {
		return errTooSmall
	}
	return nil
}

func TestLoadRunsValidation(t *testing.T) {
	path := writeConfig(t, "port: 80\n")
	var cfg validatedConfig
	err := Load(path, &cfg)
	if !errors.Is(err, errTooSmall) {
		t.Fatalf("err = %v, want validation failure", err)
	}

	path = writeConfig(t, "port: 8080\n")
	if err := Load(path, &cfg); err != nil {
		t.Errorf("Load valid: %v", err)
	}
}
