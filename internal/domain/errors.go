package domain

import "errors"

var (
	// ErrRecordNotFound is returned by catalog stores and caches when the
	// requested product does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrBasketOutOfSync means the basket references a product id that is
	// missing from the loaded catalog. This is an internal-consistency
	// failure, not a user-facing validation error.
	ErrBasketOutOfSync = errors.New("basket item missing from catalog")

	// ErrUnknownOrderField is returned when a field-change intent names a
	// field the order does not have.
	ErrUnknownOrderField = errors.New("unknown order field")
)
