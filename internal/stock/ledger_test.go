package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Reserve(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ledger := NewLedger()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WithArgs(5, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ledger.Reserve(ctx, db, 1, 5)
		assert.NoError(t, err)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		// Conditional update matches no row, but the product exists.
		mock.ExpectExec(`UPDATE products`).
			WithArgs(100, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := ledger.Reserve(ctx, db, 1, 100)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("ProductMissing", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WithArgs(1, uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := ledger.Reserve(ctx, db, 99, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WillReturnError(errors.New("db error"))

		err := ledger.Reserve(ctx, db, 1, 1)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Restore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ledger := NewLedger()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WithArgs(5, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ledger.Restore(ctx, db, 1, 5)
		assert.NoError(t, err)
	})

	t.Run("ProductMissing", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products`).
			WithArgs(5, uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ledger.Restore(ctx, db, 99, 5)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderPoint(t *testing.T) {
	assert.Equal(t, 10, ReorderPoint(1))
	assert.Equal(t, 10, ReorderPoint(5))
	assert.Equal(t, 12, ReorderPoint(6))
	assert.Equal(t, 24, ReorderPoint(12))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		moq  int
		want Status
	}{
		{"OutOfStock", 0, 1, StatusOutOfStock},
		{"LowAtReorderPoint", 10, 1, StatusLowStock},
		{"LowBelowReorderPoint", 3, 1, StatusLowStock},
		{"InStock", 11, 1, StatusInStock},
		{"InStockAtUpperBound", 100, 1, StatusInStock},
		{"Overstock", 101, 1, StatusOverstock},
		{"WholesaleReorderScalesWithMOQ", 24, 12, StatusLowStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.qty, tt.moq))
		})
	}
}
