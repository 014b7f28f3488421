package transport

import (
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/metrics"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Users     *UserHandler
	Products  *ProductHandler
	Carts     *CartHandler
	Orders    *OrderHandler
	Addresses *AddressHandler
	Metrics   *MetricsHandler
}

// NewRouter wires the full HTTP surface. Auth runs on every request so
// handlers can distinguish guests from registered users; the admin subtree
// additionally demands an admin role.
func NewRouter(h Handlers, stats *metrics.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.AccessLogMiddleware)
	r.Use(countRequests(stats))
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Users.Register)
		r.Post("/auth/login", h.Users.Login)

		r.Get("/products", h.Products.List)
		r.Get("/products/{id}", h.Products.Get)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Carts.Get)
			r.Post("/items", h.Carts.Add)
			r.Put("/items/{productID}", h.Carts.UpdateQuantity)
			r.Delete("/items/{productID}", h.Carts.Remove)
			r.Delete("/", h.Carts.Clear)
		})

		r.Post("/orders", h.Orders.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/orders", h.Orders.List)
			r.Get("/orders/{id}", h.Orders.Get)

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", h.Addresses.List)
				r.Post("/", h.Addresses.Create)
				r.Delete("/{id}", h.Addresses.Delete)
				r.Put("/{id}/default", h.Addresses.SetDefault)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/users", h.Users.ListUsers)

			r.Post("/products", h.Products.Create)
			r.Put("/products/{id}", h.Products.Update)
			r.Put("/products/{id}/stock", h.Products.SetStock)
			r.Get("/products/low-stock", h.Products.LowStock)

			r.Get("/orders", h.Orders.List)
			r.Get("/orders/{id}", h.Orders.Get)
			r.Patch("/orders/{id}/status", h.Orders.UpdateStatus)
			r.Post("/orders/{id}/payment/verify", h.Orders.VerifyPayment)
			r.Put("/orders/{id}/items", h.Orders.UpdateItems)

			r.Get("/metrics", h.Metrics.Snapshot)
		})
	})

	return r
}

func countRequests(stats *metrics.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stats.RequestsServed.Inc()
			next.ServeHTTP(w, r)
		})
	}
}
