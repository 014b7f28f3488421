package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/address"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/cart"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/order"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/payment"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/stock"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Validation", order.ErrValidation, http.StatusBadRequest},
		{"WrappedValidation", fmt.Errorf("%w: shipping address is required", order.ErrValidation), http.StatusBadRequest},
		{"UnknownPaymentMethod", payment.ErrUnknownMethod, http.StatusBadRequest},
		{"InvalidQuantity", cart.ErrInvalidQuantity, http.StatusBadRequest},
		{"InactiveProduct", product.ErrProductInactive, http.StatusBadRequest},
		{"BadCredentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Unauthorized", order.ErrUnauthorized, http.StatusForbidden},
		{"Unauthenticated", address.ErrUnauthenticated, http.StatusForbidden},
		{"OrderNotFound", order.ErrOrderNotFound, http.StatusNotFound},
		{"ProductNotFound", product.ErrProductNotFound, http.StatusNotFound},
		{"CartEmpty", cart.ErrCartEmpty, http.StatusNotFound},
		{"AddressNotFound", address.ErrAddressNotFound, http.StatusNotFound},
		{"InsufficientStock", stock.ErrInsufficientStock, http.StatusConflict},
		{"InvalidTransition", order.ErrInvalidTransition, http.StatusConflict},
		{"StaleOrder", order.ErrStaleOrder, http.StatusConflict},
		{"EmailExists", user.ErrEmailExists, http.StatusConflict},
		{"Unmapped", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)

			var body map[string]string
			err := json.Unmarshal(rec.Body.Bytes(), &body)
			assert.NoError(t, err)
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, map[string]int{"count": 3}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}
