package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SlotConflictConstraint is the partial unique index guarding the
// one-blocking-booking-per-slot invariant. Inserts and updates that lose a
// race surface as unique violations on this constraint.
const SlotConflictConstraint = "bookings_slot_conflict_idx"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewSlotConflict reports that a venue slot already holds a blocking booking.
func NewSlotConflict(details map[string]any) error {
	return NewDomainError("SLOT_CONFLICT", "venue slot already booked", http.StatusConflict, details)
}

// NewInvalidTransition reports a status change not reachable from the
// current state.
func NewInvalidTransition(current, next string) error {
	return NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("cannot transition booking from %s to %s", current, next),
		http.StatusUnprocessableEntity,
		map[string]any{"current_status": current, "requested_status": next})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. pgx row misses map
// to NOT_FOUND; unique violations map to SLOT_CONFLICT or CONFLICT depending
// on the violated constraint. Everything else is an internal error.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == SlotConflictConstraint {
			if de, ok := NewSlotConflict(nil).(*DomainError); ok {
				return de
			}
		}
		if de, ok := NewConflict("duplicate value violates a unique constraint",
			map[string]any{"constraint": pgErr.ConstraintName}).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
