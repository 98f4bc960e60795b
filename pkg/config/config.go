// Package config loads YAML configuration files. Values may reference
// environment variables with ${VAR} syntax; they are expanded before
// parsing, which is how secrets such as the API auth token stay out of
// the file itself.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that check themselves
// after parsing.
type Validator interface {
	Validate() error
}

// Load reads filename, expands environment references, and unmarshals
// the result into target. When target implements Validator, a failed
// Validate rejects the whole load.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}
