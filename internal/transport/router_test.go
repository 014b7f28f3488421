package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/metrics"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRouter wires the router with nil services. Only routes whose handlers
// never run (health check, middleware rejections) and the metrics snapshot
// are safe to hit.
func testRouter(stats *metrics.Store) http.Handler {
	return NewRouter(Handlers{
		Users:     &UserHandler{},
		Products:  &ProductHandler{},
		Carts:     &CartHandler{},
		Orders:    &OrderHandler{},
		Addresses: &AddressHandler{},
		Metrics:   NewMetricsHandler(stats),
	}, stats)
}

func TestRouter_HealthCheck(t *testing.T) {
	stats := metrics.NewStore()
	router := testRouter(stats)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, uint64(1), stats.RequestsServed.Load())
}

func TestRouter_ProtectedRouteRejectsAnonymous(t *testing.T) {
	router := testRouter(metrics.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminSubtreeRejectsNonAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	router := testRouter(metrics.NewStore())

	token, err := user.GenerateJWT(7, "USER", "RETAIL", "karim@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminMetricsSnapshot(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	stats := metrics.NewStore()
	stats.OrdersCreated.Add(2)
	router := testRouter(stats)

	token, err := user.GenerateJWT(1, "ADMIN", "RETAIL", "admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orders_created":2`)
}
