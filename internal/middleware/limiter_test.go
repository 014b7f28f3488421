package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRateTier(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		tier   string
	}{
		{"Login", http.MethodPost, "/api/auth/login", "strict"},
		{"Register", http.MethodPost, "/api/auth/register", "strict"},
		{"Checkout", http.MethodPost, "/api/orders", "strict"},
		{"ListOrders", http.MethodGet, "/api/orders", "general"},
		{"BrowseProducts", http.MethodGet, "/api/products", "read"},
		{"ProductDetail", http.MethodGet, "/api/products/3", "read"},
		{"CreateProduct", http.MethodPost, "/api/admin/products", "general"},
		{"Cart", http.MethodGet, "/api/cart", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			_, _, tier := resolveRateTier(req)
			assert.Equal(t, tt.tier, tier)
		})
	}
}

func TestRateLimitMiddleware_BurstThenThrottle(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// The strict tier's burst is exhausted by hammering the same identity.
	var last int
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimitMiddleware_SeparateIdentities(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
