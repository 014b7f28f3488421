// Package stock tracks available quantity per product. Reservations are
// conditional updates so concurrent orders against the same product
// serialize at the database; the ledger never oversells.
package stock

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so ledger operations can
// join an order's transaction or run standalone.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Ledger interface {
	// Reserve atomically checks and decrements available stock. It returns
	// ErrInsufficientStock when fewer than quantity units remain; exactly
	// one of two concurrent reservations for the last unit succeeds.
	Reserve(ctx context.Context, db DBTX, productID uint, quantity int) error

	// Restore atomically increments available stock. The caller is
	// responsible for calling it exactly once per cancelled order; the
	// ledger does not deduplicate.
	Restore(ctx context.Context, db DBTX, productID uint, quantity int) error
}

type ledger struct{}

func NewLedger() Ledger {
	return ledger{}
}

func (ledger) Reserve(ctx context.Context, db DBTX, productID uint, quantity int) error {
	res, err := db.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`, quantity, productID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is missing or the conditional check failed;
		// both mean the reservation cannot be honored.
		var exists bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}

	return nil
}

func (ledger) Restore(ctx context.Context, db DBTX, productID uint, quantity int) error {
	res, err := db.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}

	return nil
}
