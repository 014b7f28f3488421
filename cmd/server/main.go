package main

import (
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/address"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/cart"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/config"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/db"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/metrics"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/order"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/stock"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/transport"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	stats := metrics.NewStore()
	ledger := stock.NewLedger()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	orderRepo := order.NewRepository(database, ledger)
	orderSvc := order.NewService(orderRepo, productRepo, stats)

	router := transport.NewRouter(transport.Handlers{
		Users:     transport.NewUserHandler(userSvc),
		Products:  transport.NewProductHandler(productSvc),
		Carts:     transport.NewCartHandler(cartSvc),
		Orders:    transport.NewOrderHandler(orderSvc, cartSvc, addressSvc),
		Addresses: transport.NewAddressHandler(addressSvc),
		Metrics:   transport.NewMetricsHandler(stats),
	}, stats)

	logger.L().Info("🚀 server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
