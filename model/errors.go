package model

import "errors"

var (
	// ErrOutOfRange is returned when an integer key falls outside the
	// addressed collection or view range.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidKey is returned for lookup keys of an unsupported shape.
	ErrInvalidKey = errors.New("invalid key")

	// ErrDetachedHandle is returned when a removed handle (index -1) is about
	// to be dereferenced into the engine.
	ErrDetachedHandle = errors.New("handle is detached")

	// ErrForeignHandle is returned when a handle owned by another model is
	// passed to a mutating operation.
	ErrForeignHandle = errors.New("handle belongs to a different model")
)
