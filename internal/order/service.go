package order

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/metrics"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/payment"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/pricing"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/product"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"

	"go.uber.org/zap"
)

// Fee policy. Shipping is a flat fee waived above the free-shipping
// threshold; tax is a flat percentage of the subtotal.
const (
	taxRate               = 0.05
	shippingFlatFee       = 100.0
	freeShippingThreshold = 5000.0
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetOrders(ctx context.Context, filter *FilterInput, sort *SortInput, limit, page *int32) ([]*Order, int64, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)

	// Admin operations. Each re-validates the caller's role from context;
	// upstream gating is never trusted.
	UpdateStatus(ctx context.Context, orderID uint, target Status, reason *string) (*Order, error)
	VerifyPayment(ctx context.Context, orderID uint, outcome PaymentStatus, note *string) (*Order, error)
	UpdateItems(ctx context.Context, orderID uint, edits []ItemEdit) (*Order, error)
}

type CartLineInput struct {
	ProductID uint
	Quantity  int
}

type CreateOrderInput struct {
	Lines            []CartLineInput
	Guest            *GuestInfo
	ShippingAddress  Address
	BillingAddress   *Address
	PaymentMethod    string
	PaymentReference *string
	Notes            *string
}

// ItemEdit overwrites the quantity and unit-price snapshot of an existing
// order line.
type ItemEdit struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
}

type service struct {
	repo        Repository
	productRepo product.Repository
	stats       *metrics.Store
}

func NewService(repo Repository, productRepo product.Repository, stats *metrics.Store) Service {
	return &service{repo: repo, productRepo: productRepo, stats: stats}
}

// CreateOrder validates a submitted cart and produces the persisted Order
// aggregate. Reservation and persistence share one transaction, so either
// every line's stock commits together with the order or nothing does.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int("line_count", len(input.Lines)),
	)

	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}

	userID, class, err := resolveIdentity(ctx, input.Guest)
	if err != nil {
		return nil, err
	}

	if err := validateAddress(&input.ShippingAddress, "shipping"); err != nil {
		return nil, err
	}
	billing := input.ShippingAddress
	if input.BillingAddress != nil {
		if err := validateAddress(input.BillingAddress, "billing"); err != nil {
			return nil, err
		}
		billing = *input.BillingAddress
	}

	method, err := payment.ParseMethod(input.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	reference := input.PaymentReference
	if method.Manual() {
		if reference == nil || len(strings.TrimSpace(*reference)) < payment.MinReferenceLen {
			return nil, fmt.Errorf("%w: %s requires a transaction reference of at least %d characters",
				ErrValidation, method, payment.MinReferenceLen)
		}
	}

	items, subtotal, err := s.buildItems(ctx, input.Lines, class)
	if err != nil {
		return nil, err
	}

	shipping := shippingFlatFee
	if subtotal >= freeShippingThreshold {
		shipping = 0
	}
	tax := utils.Round2(subtotal * taxRate)

	paymentStatus := PaymentPending
	if method.Manual() {
		paymentStatus = PaymentPendingVerification
	}

	o := &Order{
		OrderNumber:      utils.GenerateOrderNumber(),
		UserID:           userID,
		Guest:            input.Guest,
		Items:            items,
		ShippingAddress:  input.ShippingAddress,
		BillingAddress:   billing,
		PaymentMethod:    method,
		PaymentReference: reference,
		Notes:            input.Notes,
		Subtotal:         subtotal,
		Shipping:         shipping,
		Tax:              tax,
		Total:            utils.Round2(subtotal + shipping + tax),
		Status:           StatusPending,
		PaymentStatus:    paymentStatus,
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Warn("order creation failed", zap.Error(err))
		return nil, err
	}

	if s.stats != nil {
		s.stats.OrdersCreated.Inc()
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("customer_class", string(class)),
		zap.String("payment_method", string(method)),
		zap.Float64("total", o.Total),
	)

	return o, nil
}

// buildItems resolves quantity and price for every cart line and snapshots
// product name and unit price. Duplicate lines for one product are merged
// before resolution; the result is sorted by ascending product id so
// reservations take row locks in a deterministic order.
func (s *service) buildItems(ctx context.Context, lines []CartLineInput, class pricing.CustomerClass) ([]OrderItem, float64, error) {
	merged := make(map[uint]int, len(lines))
	for _, line := range lines {
		merged[line.ProductID] += line.Quantity
	}

	productIDs := make([]uint, 0, len(merged))
	for id := range merged {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	items := make([]OrderItem, 0, len(productIDs))
	subtotal := 0.0

	for _, id := range productIDs {
		p, err := s.productRepo.GetByID(ctx, id, true)
		if err != nil {
			return nil, 0, fmt.Errorf("product %d: %w", id, err)
		}

		quote, err := pricing.Resolve(p, merged[id], class)
		if err != nil {
			return nil, 0, fmt.Errorf("product %d: %w", id, err)
		}

		items = append(items, OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   quote.UnitPrice,
			Quantity:    quote.EffectiveQuantity,
			LineTotal:   quote.LineTotal,
		})
		subtotal = utils.Round2(subtotal + quote.LineTotal)
	}

	return items, subtotal, nil
}

func (s *service) GetOrders(ctx context.Context, filter *FilterInput, sortInput *SortInput, limit, page *int32) ([]*Order, int64, error) {
	l := int32(20)
	if limit != nil && *limit > 0 && *limit <= 100 {
		l = *limit
	}
	p := int32(1)
	if page != nil && *page > 0 {
		p = *page
	}

	// Non-admin callers only ever see their own orders.
	var userScope *uint
	if !callerIsAdmin(ctx) {
		id, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			return nil, 0, ErrUnauthorized
		}
		userScope = &id
	}

	orders, err := s.repo.FetchOrders(ctx, filter, sortInput, userScope, l, (p-1)*l)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountOrders(ctx, filter, userScope)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !callerIsAdmin(ctx) {
		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok || o.UserID == nil || *o.UserID != userID {
			return nil, ErrUnauthorized
		}
	}

	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, target Status, reason *string) (*Order, error) {
	log := logger.FromCtx(ctx)

	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if target == StatusCancelled && (reason == nil || strings.TrimSpace(*reason) == "") {
		return nil, fmt.Errorf("%w: cancellation requires a reason", ErrValidation)
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(o.Status, target); err != nil {
		return nil, err
	}

	if err := s.repo.TransitionStatusTx(ctx, o, target, reason); err != nil {
		return nil, err
	}

	if target == StatusCancelled && s.stats != nil {
		s.stats.OrdersCancelled.Inc()
	}

	log.Info("order status updated",
		zap.Uint("order_id", o.ID),
		zap.String("status", string(target)),
	)

	return o, nil
}

func (s *service) VerifyPayment(ctx context.Context, orderID uint, outcome PaymentStatus, note *string) (*Order, error) {
	log := logger.FromCtx(ctx)

	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if outcome != PaymentPaid && outcome != PaymentFailed {
		return nil, fmt.Errorf("%w: verification outcome must be PAID or FAILED", ErrValidation)
	}
	if outcome == PaymentFailed && (note == nil || strings.TrimSpace(*note) == "") {
		return nil, fmt.Errorf("%w: rejecting a payment requires a reason", ErrValidation)
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ValidatePaymentTransition(o.PaymentStatus, outcome); err != nil {
		return nil, err
	}

	if err := s.repo.VerifyPaymentTx(ctx, o, outcome, note, adminID); err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.PaymentsVerified.Inc()
	}

	log.Info("payment verification recorded",
		zap.Uint("order_id", o.ID),
		zap.String("outcome", string(outcome)),
		zap.Uint("verified_by", adminID),
	)

	return o, nil
}

// UpdateItems overwrites the quantity/price snapshot of existing lines while
// the order is still PENDING, recomputes the totals, and reconciles stock
// for the quantity deltas. Lines not mentioned in edits keep their snapshot.
func (s *service) UpdateItems(ctx context.Context, orderID uint, edits []ItemEdit) (*Order, error) {
	log := logger.FromCtx(ctx)

	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("%w: no item edits supplied", ErrValidation)
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != StatusPending {
		return nil, fmt.Errorf("%w: items may only be edited while PENDING (current %s)",
			ErrInvalidTransition, o.Status)
	}

	byProduct := make(map[uint]*OrderItem, len(o.Items))
	for i := range o.Items {
		byProduct[o.Items[i].ProductID] = &o.Items[i]
	}

	deltas := make(map[uint]int)
	for _, edit := range edits {
		item, ok := byProduct[edit.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d is not on this order", ErrValidation, edit.ProductID)
		}
		if edit.Quantity < 1 || edit.UnitPrice <= 0 {
			return nil, fmt.Errorf("%w: product %d has invalid quantity or price", ErrValidation, edit.ProductID)
		}

		// Accumulate so repeated edits of one line net out against the
		// original snapshot quantity, not against each other.
		deltas[edit.ProductID] += edit.Quantity - item.Quantity
		item.Quantity = edit.Quantity
		item.UnitPrice = edit.UnitPrice
		item.LineTotal = utils.Round2(edit.UnitPrice * float64(edit.Quantity))
	}

	subtotal := 0.0
	for _, item := range o.Items {
		subtotal = utils.Round2(subtotal + item.LineTotal)
	}
	o.Subtotal = subtotal
	o.Shipping = shippingFlatFee
	if subtotal >= freeShippingThreshold {
		o.Shipping = 0
	}
	o.Tax = utils.Round2(subtotal * taxRate)
	o.Total = utils.Round2(subtotal + o.Shipping + o.Tax)

	if err := s.repo.ReplaceItemsTx(ctx, o, deltas); err != nil {
		return nil, err
	}

	log.Info("order items updated",
		zap.Uint("order_id", o.ID),
		zap.Int("edited_lines", len(edits)),
		zap.Float64("total", o.Total),
	)

	return o, nil
}

// resolveIdentity extracts the caller's identity from context or validates
// the supplied guest info. Registered users never pass guest info; guests
// must supply name and mobile.
func resolveIdentity(ctx context.Context, guest *GuestInfo) (*uint, pricing.CustomerClass, error) {
	if id, ok := utils.GetUserIDFromContext(ctx); ok {
		if guest != nil {
			return nil, "", fmt.Errorf("%w: registered users cannot check out as guests", ErrValidation)
		}
		userType := user.UserType(utils.GetUserTypeFromContext(ctx))
		return &id, pricing.ClassForUserType(userType), nil
	}

	if guest == nil {
		return nil, "", fmt.Errorf("%w: guest checkout requires guest info", ErrValidation)
	}
	if strings.TrimSpace(guest.Name) == "" || strings.TrimSpace(guest.Mobile) == "" {
		return nil, "", fmt.Errorf("%w: guest name and mobile are required", ErrValidation)
	}

	return nil, pricing.ClassGuest, nil
}

func validateAddress(a *Address, label string) error {
	if strings.TrimSpace(a.Name) == "" ||
		strings.TrimSpace(a.Phone) == "" ||
		strings.TrimSpace(a.Line1) == "" ||
		strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("%w: %s address needs name, phone, line1 and city", ErrValidation, label)
	}
	return nil
}

func callerIsAdmin(ctx context.Context) bool {
	return user.IsAdminRole(user.Role(utils.GetUserRoleFromContext(ctx)))
}

// requireAdmin re-validates the role claim for a state-mutating call and
// returns the acting admin's id.
func requireAdmin(ctx context.Context) (uint, error) {
	if !callerIsAdmin(ctx) {
		return 0, ErrUnauthorized
	}
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return 0, ErrUnauthorized
	}
	return id, nil
}
