package service

import (
	"errors"
	"fmt"
)

// Workflow error kinds. Every error returned by the admin workflows matches
// exactly one of these through errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrIdentityCreation  = errors.New("identity creation failed")
	ErrProfileCreation   = errors.New("profile creation failed")
	ErrEntityCreation    = errors.New("entity creation failed")
	ErrUpdateConflict    = errors.New("update conflict")
	ErrAuditWrite        = errors.New("audit write failed")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownEntityKind = errors.New("unknown entity kind")
)

// WorkflowError joins a workflow kind to the underlying cause so callers can
// match either one.
type WorkflowError struct {
	Op   string
	Kind error
	Err  error
}

func (e *WorkflowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *WorkflowError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func workflowError(op string, kind, err error) *WorkflowError {
	return &WorkflowError{Op: op, Kind: kind, Err: err}
}

func validationError(op, format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Op: op, Kind: ErrValidation, Err: fmt.Errorf(format, args...)}
}
