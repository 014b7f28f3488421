package stock

// Status is the display-only classification of a product's stock level.
type Status string

const (
	StatusOutOfStock Status = "out_of_stock"
	StatusLowStock   Status = "low_stock"
	StatusInStock    Status = "in_stock"
	StatusOverstock  Status = "overstock"
)

// ReorderPoint is the low-stock threshold for a product with the given
// minimum order quantity.
func ReorderPoint(minOrderQuantity int) int {
	p := 2 * minOrderQuantity
	if p < 10 {
		p = 10
	}
	return p
}

// StatusFor derives the stock status for display. It never affects
// reservations.
func StatusFor(stockQuantity, minOrderQuantity int) Status {
	reorder := ReorderPoint(minOrderQuantity)

	switch {
	case stockQuantity == 0:
		return StatusOutOfStock
	case stockQuantity <= reorder:
		return StatusLowStock
	case stockQuantity > 10*reorder:
		return StatusOverstock
	default:
		return StatusInStock
	}
}
