package cart

import (
	"context"
	"errors"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/pricing"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"

	"go.uber.org/zap"
)

// Service defines the session-scoped cart. Everything here is advisory UX:
// stock and price are re-validated authoritatively at order creation.
type Service interface {
	AddToCart(ctx context.Context, owner Owner, productID uint, quantity int, class pricing.CustomerClass) (*CartItem, error)
	GetCart(ctx context.Context, owner Owner, class pricing.CustomerClass) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, owner Owner, productID uint, quantity int, class pricing.CustomerClass) error
	RemoveFromCart(ctx context.Context, owner Owner, productID uint) error
	ClearCart(ctx context.Context, owner Owner) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) AddToCart(ctx context.Context, owner Owner, productID uint, quantity int, class pricing.CustomerClass) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if !owner.Valid() {
		return nil, ErrInvalidOwner
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID, true)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Clamp to the class quantity floor and price the line for display.
	quote, err := pricing.Resolve(p, quantity, class)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByProduct(ctx, owner, productID)
	if err != nil {
		return nil, err
	}

	finalQty := quote.EffectiveQuantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.StockQuantity < finalQty {
		log.Warn("add to cart exceeds stock",
			zap.Int("requested", finalQty),
			zap.Int("stock", p.StockQuantity),
		)
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		if err := s.repo.UpdateQuantity(ctx, existing.ID, finalQty); err != nil {
			return nil, err
		}
		existing.Quantity = finalQty
		existing.Product = *p
		return existing, nil
	}

	item := &CartItem{
		UserID:         owner.UserID,
		SessionID:      owner.SessionID,
		ProductID:      productID,
		Quantity:       finalQty,
		UnitPriceAtAdd: quote.UnitPrice,
		Product:        *p,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *service) GetCart(ctx context.Context, owner Owner, class pricing.CustomerClass) ([]CartItem, error) {
	if !owner.Valid() {
		return nil, ErrInvalidOwner
	}

	items, err := s.repo.GetItems(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Refresh the advisory price so the cart shows current terms.
	for i := range items {
		quote, err := pricing.Resolve(&items[i].Product, items[i].Quantity, class)
		if err == nil {
			items[i].UnitPriceAtAdd = quote.UnitPrice
		}
	}

	return items, nil
}

func (s *service) UpdateQuantity(ctx context.Context, owner Owner, productID uint, quantity int, class pricing.CustomerClass) error {
	if !owner.Valid() {
		return ErrInvalidOwner
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID, true)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	quote, err := pricing.Resolve(p, quantity, class)
	if err != nil {
		return err
	}
	if p.StockQuantity < quote.EffectiveQuantity {
		return ErrInsufficientStock
	}

	existing, err := s.repo.GetItemByProduct(ctx, owner, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}

	return s.repo.UpdateQuantity(ctx, existing.ID, quote.EffectiveQuantity)
}

func (s *service) RemoveFromCart(ctx context.Context, owner Owner, productID uint) error {
	if !owner.Valid() {
		return ErrInvalidOwner
	}
	return s.repo.RemoveItem(ctx, owner, productID)
}

func (s *service) ClearCart(ctx context.Context, owner Owner) error {
	if !owner.Valid() {
		return ErrInvalidOwner
	}
	return s.repo.Clear(ctx, owner)
}
