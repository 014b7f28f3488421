package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInactive = errors.New("product is not active")

	// -- Validation & Input --
	ErrInvalidPrice       = errors.New("price must be greater than zero")
	ErrInvalidMOQ         = errors.New("minimum order quantity must be at least 1")
	ErrInvalidStock       = errors.New("stock quantity cannot be negative")
	ErrInvalidBulkPricing = errors.New("bulk pricing thresholds must be strictly increasing")
)
