package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("record not found")
	ErrInvalidTransition      = errors.New("transition not allowed from current state")
	ErrConflictingActiveLease = errors.New("listing already has an active lease")
	ErrDuplicateApplication   = errors.New("an open application already exists for this listing and tenant")
	ErrOwnershipViolation     = errors.New("record is outside the caller's scope")
	ErrOptimisticConflict     = errors.New("record was modified concurrently")
	ErrValidation             = errors.New("request is invalid")
)

// TransitionError wraps ErrInvalidTransition with the attempted move so the
// caller can report the current (unchanged) state plus a reason.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: transition %s -> %s is not allowed", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError builds a TransitionError from typed statuses.
func NewTransitionError[S ~string](entity string, from, to S) *TransitionError {
	return &TransitionError{Entity: entity, From: string(from), To: string(to)}
}

// BulkPreconditionError reports an all-or-nothing batch rejection with the
// ids that failed ownership or state-precondition checks. No mutation has
// been applied when this error is returned.
type BulkPreconditionError struct {
	FailedIDs []int32
}

func (e *BulkPreconditionError) Error() string {
	return fmt.Sprintf("bulk precondition failed for ids %v", e.FailedIDs)
}
