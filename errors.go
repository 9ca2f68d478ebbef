package inventory

import "errors"

// Errors reported by ledger operations. They are wrapped with context,
// test them with errors.Is.
var (
	// ErrNotFound reports that a referenced product or invoice id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock reports that a sale exceeds the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidInput reports a negative price or quantity, or an empty required field.
	ErrInvalidInput = errors.New("invalid input")
)
