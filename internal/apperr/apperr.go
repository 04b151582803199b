// Package apperr holds the error taxonomy shared by every domain package.
// Handlers translate these into HTTP status codes; services and stores
// return them when an operation is rejected before or during its write.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports input that breaks an invariant of the entity.
type ValidationError struct {
	Entity     string
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e.Violations[f]
	}

	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, ", "))
}

// Invalid builds a ValidationError for a single field.
func Invalid(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Violations: map[string]string{field: reason}}
}

// ReferenceError reports a missing foreign target or a cross-entity mismatch.
type ReferenceError struct {
	Entity string
	Field  string
	ID     int64
	Reason string
}

func (e *ReferenceError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "does not exist"
	}

	if e.ID == 0 {
		return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, reason)
	}

	return fmt.Sprintf("%s.%s %d: %s", e.Entity, e.Field, e.ID, reason)
}

// Missing builds a ReferenceError for an id that points at nothing.
func Missing(entity, field string, id int64) *ReferenceError {
	return &ReferenceError{Entity: entity, Field: field, ID: id}
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
	}

	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsReference(err error) bool {
	var target *ReferenceError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
