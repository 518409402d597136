package types

import (
	"fmt"
	"strings"
)

// ValidationError rejects an edit before any state is mutated. It is
// returned to the caller as a value; the document is left unchanged.
type ValidationError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// nameDisallowed are characters that would corrupt mention markers if
// they appeared inside entity names.
const nameDisallowed = "[]()@#\n\r"

// ValidateName checks that an entity name is usable as a key and inside
// mention markers.
func ValidateName(field, name string) error {
	if name == "" {
		return &ValidationError{Field: field, Reason: "name must not be empty"}
	}
	if strings.ContainsAny(name, nameDisallowed) {
		return &ValidationError{
			Field:  field,
			Value:  name,
			Reason: "name must not contain any of \"[]()@#\" or line breaks",
		}
	}
	return nil
}
