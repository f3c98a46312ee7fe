package domain

import "errors"

var (
	// ErrNotFound indicates the id has no corresponding item on the remote
	// source.
	ErrNotFound = errors.New("item not found")

	// ErrMalformed indicates the remote response had an unexpected shape.
	ErrMalformed = errors.New("malformed response")
)
