package domain

import "errors"

var (
	// ErrNotFound signals a missing listing.
	ErrNotFound = errors.New("property not found")
	// ErrInvalidID signals a listing identifier that is not a positive integer.
	ErrInvalidID = errors.New("invalid property id")
	// ErrInvalidListing signals a listing that violates data invariants.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrSourceUnavailable signals that a read-only data source could not be read.
	ErrSourceUnavailable = errors.New("data source unavailable")
)
