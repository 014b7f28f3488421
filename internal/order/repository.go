package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/stock"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	FetchOrders(ctx context.Context, filter *FilterInput, sort *SortInput, userScope *uint, limit, offset int32) ([]*Order, error)
	CountOrders(ctx context.Context, filter *FilterInput, userScope *uint) (int64, error)

	// TransitionStatusTx persists a fulfillment transition with an
	// optimistic check on updated_at. A CANCELLED target restores stock
	// for every item inside the same transaction.
	TransitionStatusTx(ctx context.Context, o *Order, target Status, reason *string) error

	// VerifyPaymentTx records an admin verification outcome, again under
	// the optimistic updated_at check.
	VerifyPaymentTx(ctx context.Context, o *Order, outcome PaymentStatus, note *string, adminID uint) error

	// ReplaceItemsTx overwrites the item snapshot and totals, reconciling
	// stock for quantity deltas in the same transaction.
	ReplaceItemsTx(ctx context.Context, o *Order, deltas map[uint]int) error
}

type repository struct {
	db     *sql.DB
	ledger stock.Ledger
}

func NewRepository(db *sql.DB, ledger stock.Ledger) Repository {
	return &repository{db: db, ledger: ledger}
}

const orderColumns = `id, order_number, user_id,
		guest_name, guest_mobile, guest_email, guest_company,
		shipping_name, shipping_phone, shipping_line1, shipping_line2, shipping_city, shipping_postal_code, shipping_country,
		billing_name, billing_phone, billing_line1, billing_line2, billing_city, billing_postal_code, billing_country,
		payment_method, payment_reference, payment_verified_at, payment_verified_by, payment_note, notes,
		subtotal, shipping_fee, tax, total, status, payment_status, cancel_reason, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }, o *Order) error {
	var guestName, guestMobile sql.NullString
	var guestEmail, guestCompany *string

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&guestName, &guestMobile, &guestEmail, &guestCompany,
		&o.ShippingAddress.Name, &o.ShippingAddress.Phone, &o.ShippingAddress.Line1, &o.ShippingAddress.Line2,
		&o.ShippingAddress.City, &o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.BillingAddress.Name, &o.BillingAddress.Phone, &o.BillingAddress.Line1, &o.BillingAddress.Line2,
		&o.BillingAddress.City, &o.BillingAddress.PostalCode, &o.BillingAddress.Country,
		&o.PaymentMethod, &o.PaymentReference, &o.PaymentVerifiedAt, &o.PaymentVerifiedBy, &o.PaymentNote, &o.Notes,
		&o.Subtotal, &o.Shipping, &o.Tax, &o.Total, &o.Status, &o.PaymentStatus, &o.CancelReason,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if guestName.Valid {
		o.Guest = &GuestInfo{
			Name:        guestName.String,
			Mobile:      guestMobile.String,
			Email:       guestEmail,
			CompanyName: guestCompany,
		}
	}
	return nil
}

// CreateOrderTx reserves stock for every line and persists the order, all
// within a single transaction. Items must already be sorted by ascending
// product id; reservations happen in that order so concurrent orders never
// deadlock on row locks. Any failed reservation rolls the whole order back.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range o.Items {
		if err := r.ledger.Reserve(ctx, tx, item.ProductID, item.Quantity); err != nil {
			log.Warn("stock reservation failed",
				zap.Uint("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			return fmt.Errorf("product %d: %w", item.ProductID, err)
		}
	}

	var guestName, guestMobile, guestEmail, guestCompany *string
	if o.Guest != nil {
		guestName = &o.Guest.Name
		guestMobile = &o.Guest.Mobile
		guestEmail = o.Guest.Email
		guestCompany = o.Guest.CompanyName
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id,
			guest_name, guest_mobile, guest_email, guest_company,
			shipping_name, shipping_phone, shipping_line1, shipping_line2, shipping_city, shipping_postal_code, shipping_country,
			billing_name, billing_phone, billing_line1, billing_line2, billing_city, billing_postal_code, billing_country,
			payment_method, payment_reference, notes,
			subtotal, shipping_fee, tax, total, status, payment_status
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10,$11,$12,$13,
			$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29
		)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.UserID,
		guestName, guestMobile, guestEmail, guestCompany,
		o.ShippingAddress.Name, o.ShippingAddress.Phone, o.ShippingAddress.Line1, o.ShippingAddress.Line2,
		o.ShippingAddress.City, o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
		o.BillingAddress.Name, o.BillingAddress.Phone, o.BillingAddress.Line1, o.BillingAddress.Line2,
		o.BillingAddress.City, o.BillingAddress.PostalCode, o.BillingAddress.Country,
		o.PaymentMethod, o.PaymentReference, o.Notes,
		o.Subtotal, o.Shipping, o.Tax, o.Total, o.Status, o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("db: failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, line_total)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`,
			o.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.LineTotal,
		).Scan(&item.ID)
		if err != nil {
			log.Error("db: failed to insert order item",
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID,
	), &o)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repository) fetchItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, line_total
		FROM order_items WHERE order_id = $1 ORDER BY product_id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.UnitPrice, &it.Quantity, &it.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func buildOrderWhere(filter *FilterInput, userScope *uint) (string, []any) {
	clauses := []string{}
	args := []any{}
	pos := 1

	if userScope != nil {
		clauses = append(clauses, fmt.Sprintf("o.user_id = $%d", pos))
		args = append(args, *userScope)
		pos++
	}
	if filter != nil {
		if filter.Search != nil && *filter.Search != "" {
			clauses = append(clauses, fmt.Sprintf("(o.id::text ILIKE $%d OR o.order_number ILIKE $%d)", pos, pos))
			args = append(args, "%"+*filter.Search+"%")
			pos++
		}
		if filter.Status != nil {
			clauses = append(clauses, fmt.Sprintf("o.status = $%d", pos))
			args = append(args, *filter.Status)
			pos++
		}
		if filter.PaymentStatus != nil {
			clauses = append(clauses, fmt.Sprintf("o.payment_status = $%d", pos))
			args = append(args, *filter.PaymentStatus)
			pos++
		}
		if filter.DateFrom != nil {
			clauses = append(clauses, fmt.Sprintf("o.created_at >= $%d", pos))
			args = append(args, *filter.DateFrom)
			pos++
		}
		if filter.DateTo != nil {
			clauses = append(clauses, fmt.Sprintf("o.created_at <= $%d", pos))
			args = append(args, *filter.DateTo)
			pos++
		}
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}
	return where, args
}

func orderByClause(sort *SortInput) string {
	field := "o.created_at"
	dir := "DESC"

	if sort != nil {
		switch sort.Field {
		case SortFieldTotal:
			field = "o.total"
		case SortFieldStatus:
			field = "o.status"
		case SortFieldCreatedAt:
			field = "o.created_at"
		}
		if sort.Direction == SortAsc {
			dir = "ASC"
		}
	}

	return fmt.Sprintf("ORDER BY %s %s", field, dir)
}

func (r *repository) FetchOrders(ctx context.Context, filter *FilterInput, sort *SortInput, userScope *uint, limit, offset int32) ([]*Order, error) {
	where, args := buildOrderWhere(filter, userScope)
	pos := len(args) + 1

	query := fmt.Sprintf(
		"SELECT "+orderColumns+" FROM orders o %s %s LIMIT $%d OFFSET $%d",
		where, orderByClause(sort), pos, pos+1,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.fetchItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}

	return orders, nil
}

func (r *repository) CountOrders(ctx context.Context, filter *FilterInput, userScope *uint) (int64, error) {
	where, args := buildOrderWhere(filter, userScope)

	var total int64
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM orders o %s", where), args...,
	).Scan(&total)
	return total, err
}

func (r *repository) TransitionStatusTx(ctx context.Context, o *Order, target Status, reason *string) error {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The updated_at condition makes a concurrent writer lose cleanly
	// instead of silently overwriting the first transition.
	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, cancel_reason = COALESCE($2, cancel_reason), updated_at = NOW()
		WHERE id = $3 AND updated_at = $4
		RETURNING updated_at
	`, target, reason, o.ID, o.UpdatedAt).Scan(&o.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrStaleOrder
	}
	if err != nil {
		return err
	}

	if target == StatusCancelled {
		for _, item := range o.Items {
			if err := r.ledger.Restore(ctx, tx, item.ProductID, item.Quantity); err != nil {
				log.Error("failed to restore stock on cancellation",
					zap.Uint("order_id", o.ID),
					zap.Uint("product_id", item.ProductID),
					zap.Error(err),
				)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	o.Status = target
	if reason != nil {
		o.CancelReason = reason
	}
	return nil
}

func (r *repository) VerifyPaymentTx(ctx context.Context, o *Order, outcome PaymentStatus, note *string, adminID uint) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET payment_status = $1, payment_verified_at = NOW(), payment_verified_by = $2,
			payment_note = $3, updated_at = NOW()
		WHERE id = $4 AND updated_at = $5
		RETURNING payment_verified_at, updated_at
	`, outcome, adminID, note, o.ID, o.UpdatedAt).Scan(&o.PaymentVerifiedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrStaleOrder
	}
	if err != nil {
		return err
	}

	o.PaymentStatus = outcome
	o.PaymentVerifiedBy = &adminID
	o.PaymentNote = note
	return nil
}

// ReplaceItemsTx rewrites the item snapshot with o.Items and the already
// recomputed totals. deltas maps product id to (new quantity - old
// quantity); positive deltas reserve stock, negative deltas restore it.
func (r *repository) ReplaceItemsTx(ctx context.Context, o *Order, deltas map[uint]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET subtotal = $1, shipping_fee = $2, tax = $3, total = $4, updated_at = NOW()
		WHERE id = $5 AND updated_at = $6
		RETURNING updated_at
	`, o.Subtotal, o.Shipping, o.Tax, o.Total, o.ID, o.UpdatedAt).Scan(&o.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrStaleOrder
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE order_id = $1`, o.ID,
	); err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, line_total)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`,
			o.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.LineTotal,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	// Ascending product id keeps the lock order consistent with creation.
	for _, item := range o.Items {
		delta, ok := deltas[item.ProductID]
		if !ok || delta == 0 {
			continue
		}
		if delta > 0 {
			err = r.ledger.Reserve(ctx, tx, item.ProductID, delta)
		} else {
			err = r.ledger.Restore(ctx, tx, item.ProductID, -delta)
		}
		if err != nil {
			return fmt.Errorf("product %d: %w", item.ProductID, err)
		}
	}

	return tx.Commit()
}
