package model

import "errors"

var (
	// ErrNotFound reports a referenced id missing from its collection.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports an operation that would violate an invariant,
	// such as assigning an occupied room or re-recording a paid payment.
	ErrConflict = errors.New("conflict")
	// ErrValidation reports a malformed or missing required field.
	ErrValidation = errors.New("invalid input")
)
