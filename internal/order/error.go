package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("transition not permitted from current state")

	// ErrStaleOrder means another writer changed the order between read and
	// write; the caller should reload and retry.
	ErrStaleOrder = errors.New("order was modified concurrently")

	// ErrValidation wraps input problems the caller can correct. Use
	// fmt.Errorf("%w: ...", ErrValidation) to attach detail.
	ErrValidation = errors.New("validation failed")
)
