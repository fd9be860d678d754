package interaction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is matched by every *OutOfRangeError.
	ErrOutOfRange = errors.New("index out of range")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownField is returned for field names the draft does not have.
	ErrUnknownField = errors.New("unknown field")
)

// OutOfRangeError reports an accordion index outside the constructed list.
// It indicates an integration bug, never a visitor mistake.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("accordion index %d out of range [0,%d)", e.Index, e.Len)
}

// Is lets errors.Is match ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// FieldError names one invalid draft field and why.
type FieldError struct {
	Field  Field  `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists the draft fields that blocked a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Field, f.Reason)
	}
	return "invalid contact draft: " + strings.Join(parts, "; ")
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Has reports whether field is among the invalid ones.
func (e *ValidationError) Has(field Field) bool {
	_, ok := e.Reason(field)
	return ok
}

// Reason returns the message for field, if it is invalid.
func (e *ValidationError) Reason(field Field) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Reason, true
		}
	}
	return "", false
}
