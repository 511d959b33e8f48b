package service

import "errors"

// Error taxonomy for the catalog layer. Handlers map these to HTTP statuses
// with errors.Is; everything else is treated as an internal error.
var (
	// ErrInvalidArgument marks bad caller input (short search query,
	// non-positive id, unknown trending window).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks an absent movie, favorite or history row.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists marks a duplicate favorite add.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUpstreamUnavailable marks a TMDB timeout, a non-2xx other than a
	// detail 404, or a malformed upstream payload.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
