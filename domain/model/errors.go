package model

import (
	"errors"
	"fmt"
)

var (
	// ErrSelectionInvalid reports operator input that is not a list of indices.
	ErrSelectionInvalid = errors.New("invalid selection")
	// ErrOperatorAbort reports that the operator ended the run at a prompt.
	ErrOperatorAbort = errors.New("aborted by operator")
)

// LookupFailure reports a failed or malformed inventory read.
type LookupFailure struct {
	Kind string
	Err  error
}

func (e *LookupFailure) Error() string {
	return fmt.Sprintf("lookup %s failed: %v", e.Kind, e.Err)
}

func (e *LookupFailure) Unwrap() error { return e.Err }

// SelectionOutOfRange reports an index outside the listing currently displayed.
type SelectionOutOfRange struct {
	Kind  string
	Index int
	Len   int
}

func (e *SelectionOutOfRange) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("selection %d out of range: no %s listed", e.Index, e.Kind)
	}
	return fmt.Sprintf("selection %d out of range for %s (valid 0..%d)", e.Index, e.Kind, e.Len-1)
}

// MutationFailure reports a failed remote write.
type MutationFailure struct {
	Operation string
	Err       error
}

func (e *MutationFailure) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *MutationFailure) Unwrap() error { return e.Err }
