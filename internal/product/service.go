package product

import (
	"context"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/metrics"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error)
	GetList(ctx context.Context, opts ListOptions) ([]Product, int64, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*Product, error)
	SetStock(ctx context.Context, id uint, quantity int) error
	LowStockReport(ctx context.Context) ([]Product, error)
}

type CreateProductInput struct {
	Name             string
	Description      *string
	Price            float64
	WholesalePrice   float64
	MinOrderQuantity int
	StockQuantity    int
	IsActive         bool
	BulkPricing      []BulkPriceTier
}

type UpdateProductInput struct {
	Name             *string
	Description      *string
	Price            *float64
	WholesalePrice   *float64
	MinOrderQuantity *int
	IsActive         *bool
	BulkPricing      []BulkPriceTier
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	return s.repo.GetByID(ctx, id, onlyActive)
}

func (s *service) GetList(ctx context.Context, opts ListOptions) ([]Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductList"),
	)

	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	timer := metrics.StartTimer()
	products, total, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", timer.Duration()),
		)
		return nil, 0, err
	}

	log.Debug("product list fetched",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", timer.Duration()),
	)

	return products, total, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx)

	if err := validatePricing(input.Price, input.WholesalePrice, input.MinOrderQuantity, input.BulkPricing); err != nil {
		return nil, err
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	p := &Product{
		Name:             input.Name,
		Slug:             utils.Slugify(input.Name),
		Description:      input.Description,
		Price:            input.Price,
		WholesalePrice:   input.WholesalePrice,
		MinOrderQuantity: input.MinOrderQuantity,
		StockQuantity:    input.StockQuantity,
		IsActive:         input.IsActive,
		BulkPricing:      input.BulkPricing,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.String("name", input.Name), zap.Error(err))
		return nil, err
	}

	log.Info("product created",
		zap.Uint("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int("tiers", len(p.BulkPricing)),
	)

	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateProductInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
		p.Slug = utils.Slugify(*input.Name)
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.WholesalePrice != nil {
		p.WholesalePrice = *input.WholesalePrice
	}
	if input.MinOrderQuantity != nil {
		p.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.BulkPricing != nil {
		p.BulkPricing = input.BulkPricing
	}

	if err := validatePricing(p.Price, p.WholesalePrice, p.MinOrderQuantity, p.BulkPricing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) SetStock(ctx context.Context, id uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidStock
	}
	return s.repo.SetStock(ctx, id, quantity)
}

func (s *service) LowStockReport(ctx context.Context) ([]Product, error) {
	return s.repo.LowStock(ctx)
}

func validatePricing(price, wholesalePrice float64, moq int, tiers []BulkPriceTier) error {
	if price <= 0 || wholesalePrice <= 0 {
		return ErrInvalidPrice
	}
	if moq < 1 {
		return ErrInvalidMOQ
	}

	prev := 0
	for _, t := range tiers {
		if t.UnitPrice <= 0 {
			return ErrInvalidPrice
		}
		if t.ThresholdQuantity <= prev {
			return ErrInvalidBulkPricing
		}
		prev = t.ThresholdQuantity
	}

	return nil
}
