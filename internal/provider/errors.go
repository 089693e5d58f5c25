package provider

import "errors"

var (
	// ErrNotFound means no source had data for the identifier.
	ErrNotFound = errors.New("not found")
	// ErrUpstreamUnavailable means every source in a chain failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNoData is returned by adapters for an empty result set.
	ErrNoData = errors.New("no data")
	// ErrMalformed is returned by adapters when a payload does not fit its schema.
	ErrMalformed = errors.New("malformed payload")
)
