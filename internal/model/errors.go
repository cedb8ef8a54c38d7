package model

import "errors"

// Conditions reported by the core operations. Callers match them with errors.Is.
var (
	ErrValidation            = errors.New("validation error")
	ErrDuplicateTerm         = errors.New("term already exists")
	ErrNotFound              = errors.New("term not found")
	ErrEmptyStore            = errors.New("word list is empty")
	ErrAlreadyPracticedToday = errors.New("already practiced today")
	ErrIO                    = errors.New("io failure")
)
