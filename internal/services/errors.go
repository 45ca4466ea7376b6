// Package services defines the business logic for priorities, check-ins,
// public-records requests and the team roster. This file centralizes the
// service-level error values so callers can test them with errors.Is.
//
// Every specific error wraps one of four kinds (ErrNotFound, ErrInvalidID,
// ErrValidation, ErrConflict). Translation into HTTP status codes happens in
// the handler layer and only looks at the kind.
package services

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrNotFound indicates that the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an id cannot be parsed.
	ErrInvalidID = errors.New("invalid id format")

	// ErrValidation is returned when input fails a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an operation clashes with existing state.
	ErrConflict = errors.New("conflict")
)

// Priority errors.
var (
	ErrPriorityNotFound = fmt.Errorf("priority %w", ErrNotFound)
	ErrEmptyTitle       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown status", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
)

// Check-in errors.
var (
	ErrCheckInNotFound = fmt.Errorf("check-in %w", ErrNotFound)
	ErrInvalidMood     = fmt.Errorf("%w: unknown mood", ErrValidation)

	// ErrNoPriorities is returned when a submission has no non-empty title.
	ErrNoPriorities = fmt.Errorf("%w: at least one priority is required", ErrValidation)

	// ErrTooManyPriorities is returned when a submission has more than
	// MaxPrioritiesPerCheckIn non-empty titles.
	ErrTooManyPriorities = fmt.Errorf("%w: at most %d priorities per check-in", ErrValidation, MaxPrioritiesPerCheckIn)

	// ErrCheckInExists is returned when the user already checked in today.
	ErrCheckInExists = fmt.Errorf("%w: already checked in today", ErrConflict)
)

// Information request errors.
var (
	ErrRequestNotFound = fmt.Errorf("request %w", ErrNotFound)

	// ErrInvalidRequest is returned when a request form is incomplete or
	// uses an unknown enum value. The message names the offending field.
	ErrInvalidRequest = fmt.Errorf("%w: invalid request", ErrValidation)
)

// User errors.
var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// MaxPrioritiesPerCheckIn caps the priorities a single check-in may carry.
const MaxPrioritiesPerCheckIn = 3

// fieldError wraps ErrInvalidRequest with the name of the field at fault.
func fieldError(field, problem string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidRequest, field, problem)
}
