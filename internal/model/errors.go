package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed, duplicate, or out-of-range domain object.
	ErrValidation = errors.New("invalid project")
	// ErrReferentialIntegrity marks a reference to an entity that does not exist.
	ErrReferentialIntegrity = errors.New("unknown reference")
)

// ValidationError wraps a domain invariant violation. It is raised before
// scheduling and always aborts the whole conversion.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ReferentialIntegrityError wraps a relation, allocation, vacation, or
// custom-property reference that points at an unknown id.
type ReferentialIntegrityError struct {
	Msg string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReferentialIntegrity.Error(), e.Msg)
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrReferentialIntegrity }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func referencef(format string, args ...any) error {
	return &ReferentialIntegrityError{Msg: fmt.Sprintf(format, args...)}
}
