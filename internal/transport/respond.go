package transport

import (
	"errors"
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/address"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/cart"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/order"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/payment"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/stock"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"
)

func respondJSON(w http.ResponseWriter, payload any, code int) {
	utils.WriteJSON(w, payload, code)
}

// respondError maps domain errors onto HTTP status codes. Validation
// problems carry their message verbatim so the caller can display a
// corrective hint.
func respondError(w http.ResponseWriter, err error) {
	var code int

	switch {
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, payment.ErrUnknownMethod),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidOwner),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidMOQ),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrInvalidBulkPricing),
		errors.Is(err, product.ErrProductInactive):
		code = http.StatusBadRequest

	case errors.Is(err, user.ErrInvalidCredentials):
		code = http.StatusUnauthorized

	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, address.ErrUnauthenticated):
		code = http.StatusForbidden

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, address.ErrAddressNotFound):
		code = http.StatusNotFound

	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrStaleOrder),
		errors.Is(err, user.ErrEmailExists):
		code = http.StatusConflict

	default:
		code = http.StatusInternalServerError
	}

	utils.WriteJSONError(w, err.Error(), code)
}
