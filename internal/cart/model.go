package cart

import (
	"time"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"

	"github.com/google/uuid"
)

// Owner identifies whose cart is being touched: a registered user id or a
// guest's session id. Exactly one side is set.
type Owner struct {
	UserID    *uint
	SessionID *uuid.UUID
}

func (o Owner) Valid() bool {
	return (o.UserID != nil) != (o.SessionID != nil)
}

// CartItem holds a requested product and quantity. UnitPriceAtAdd is
// advisory for display only; the authoritative price is recomputed at
// order-creation time.
type CartItem struct {
	ID             uint       `json:"id"`
	UserID         *uint      `json:"user_id,omitempty"`
	SessionID      *uuid.UUID `json:"session_id,omitempty"`
	ProductID      uint       `json:"product_id"`
	Quantity       int        `json:"quantity"`
	UnitPriceAtAdd float64    `json:"unit_price_at_add"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Product product.Product `json:"product"`
}
