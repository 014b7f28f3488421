package product

import "time"

// BulkPriceTier is one (threshold quantity, unit price) step of a product's
// volume pricing. Tiers are kept sorted by threshold ascending and
// thresholds are strictly increasing per product.
type BulkPriceTier struct {
	ID                uint    `json:"id"`
	ProductID         uint    `json:"product_id"`
	ThresholdQuantity int     `json:"threshold_quantity"`
	UnitPrice         float64 `json:"unit_price"`
}

type Product struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      *string         `json:"description,omitempty"`
	Price            float64         `json:"price"`
	WholesalePrice   float64         `json:"wholesale_price"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	StockQuantity    int             `json:"stock_quantity"`
	IsActive         bool            `json:"is_active"`
	BulkPricing      []BulkPriceTier `json:"bulk_pricing,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ListOptions struct {
	Search          string
	IncludeInactive bool
	InStockOnly     bool
	Limit           int32
	Page            int32
}
