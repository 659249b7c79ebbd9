package domain

import "errors"

// ErrNotFound is returned when a slot number is outside the configured range.
var ErrNotFound = errors.New("slot not found")

// ErrValidation is returned when an edit carries malformed input
// (negative counts, non-positive dosage, unparsable time).
var ErrValidation = errors.New("validation failed")

// ErrInsufficientStock is returned when a dispense or edit would drive
// the remaining tablet count negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidState is returned when the registry is seeded with a slot set
// that is not exactly {1..N}.
var ErrInvalidState = errors.New("invalid slot set")
