package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrEntriesClosed         = errors.New("entries are closed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
