// Package pricing resolves the quantity a buyer may order and the unit
// price they pay for it. Wholesale buyers are floored at the product's
// minimum order quantity; volume tiers discount the unit price once the
// quantity reaches a tier's threshold.
package pricing

import (
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"
)

// CustomerClass is the buyer classification that drives quantity floors and
// base prices.
type CustomerClass string

const (
	ClassGuest     CustomerClass = "GUEST"
	ClassRetail    CustomerClass = "RETAIL"
	ClassWholesale CustomerClass = "WHOLESALE"
)

// ClassForUserType maps a registered account's type to its customer class.
// Anything unrecognized (including the empty guest case) buys at guest terms.
func ClassForUserType(t user.UserType) CustomerClass {
	switch t {
	case user.TypeWholesale:
		return ClassWholesale
	case user.TypeRetail:
		return ClassRetail
	default:
		return ClassGuest
	}
}

// Quote is the resolved quantity and price for one order line.
type Quote struct {
	EffectiveQuantity int
	UnitPrice         float64
	LineTotal         float64
}

// Resolve computes the effective quantity and unit price for the requested
// quantity of p under the given customer class.
//
// Quantities below the floor are raised to it, never rejected; the floor is
// the product's minimum order quantity for wholesale buyers and 1 for
// everyone else. The unit price is the deepest bulk tier whose threshold the
// effective quantity reaches, falling back to the class base price when no
// tier qualifies.
func Resolve(p *product.Product, requestedQuantity int, class CustomerClass) (Quote, error) {
	if p == nil {
		return Quote{}, product.ErrProductNotFound
	}
	if !p.IsActive {
		return Quote{}, product.ErrProductInactive
	}

	qty := requestedQuantity
	floor := 1
	if class == ClassWholesale && p.MinOrderQuantity > floor {
		floor = p.MinOrderQuantity
	}
	if qty < floor {
		qty = floor
	}

	unitPrice := basePrice(p, class)
	// Tiers are sorted by threshold ascending; the last one that the
	// quantity reaches wins.
	for _, tier := range p.BulkPricing {
		if tier.ThresholdQuantity <= qty {
			unitPrice = tier.UnitPrice
		}
	}

	return Quote{
		EffectiveQuantity: qty,
		UnitPrice:         unitPrice,
		LineTotal:         utils.Round2(unitPrice * float64(qty)),
	}, nil
}

func basePrice(p *product.Product, class CustomerClass) float64 {
	if class == ClassWholesale {
		return p.WholesalePrice
	}
	return p.Price
}
