package apperror

import (
	"fmt"
	"strings"
)

// ProviderError is a failure reported by the external identity provider.
// The variant is decided where the provider call fails, so the translator
// classifies by type instead of inspecting error shapes.
type ProviderError struct {
	ProviderCode string // provider-native code, e.g. "auth/user-not-found"
	Message      string
}

// Error implements the error interface.
func (e ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ProviderCode
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a schema-validation failure carrying per-field errors.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
