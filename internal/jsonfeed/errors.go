package jsonfeed

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrNilDocument is returned when an entity is parsed from a nil document.
	ErrNilDocument = errors.New("nil document")

	// ErrMalformedField marks a present field whose value has the wrong shape.
	ErrMalformedField = errors.New("malformed field")

	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrExtensionName is returned when an extension name lacks the "_" prefix.
	ErrExtensionName = errors.New("extension name must start with '_'")
)

// FieldError records a structural problem with one field during parsing.
type FieldError struct {
	Entity string
	Key    string
	Value  any
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("[%s] key '%s' with value '%v': %v", e.Entity, e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError carries the complete list of violations found by a
// Validate call, including those of child entities.
type ValidationError struct {
	Entity string
	Errors []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "invalid " + strings.ToLower(e.entity())
	}
	return fmt.Sprintf("invalid %s: %s", strings.ToLower(e.entity()), strings.Join(e.Errors, "; "))
}

func (e *ValidationError) entity() string {
	if e == nil || e.Entity == "" {
		return "object"
	}
	return e.Entity
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
