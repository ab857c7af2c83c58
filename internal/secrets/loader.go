package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when a secret has no usable value.
var ErrNotConfigured = errors.New("not configured")

// Source describes how to load an API key.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value, usually bound from an environment
	// variable or the .env file.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Hint is appended to the error when the secret is missing.
	Hint string
}

// Load returns the resolved secret. File wins over Value and the result is
// always trimmed. Missing secrets wrap ErrNotConfigured.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s file %q is empty: %w", name, file, ErrNotConfigured)
	}

	secret := strings.TrimSpace(src.Value)
	if secret != "" {
		return secret, nil
	}

	if hint := strings.TrimSpace(src.Hint); hint != "" {
		return "", fmt.Errorf("%s is %w (%s)", name, ErrNotConfigured, hint)
	}
	return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
}
