// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// ValidationError aggregates the messages returned by Config.Validate into
// a single error suitable for startup failures.
type ValidationError struct {
	Path   string   // Config file path
	Errors []string // Validation errors
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}

	parts := []string{fmt.Sprintf("invalid config %s:", e.Path)}
	for _, msg := range e.Errors {
		parts = append(parts, "  - "+msg)
	}
	return strings.Join(parts, "\n")
}

// Validated loads a config file and fails when validation errors exist.
func Validated(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Path: path, Errors: errs}
	}
	return cfg, nil
}
