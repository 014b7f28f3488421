package cart

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()
	userID := uint(7)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "session_id", "product_id", "quantity", "unit_price_at_add",
		"created_at", "updated_at",
		"p_id", "p_name", "p_price", "p_wholesale_price", "p_min_order_quantity", "p_stock_quantity", "p_is_active",
	}).AddRow(1, userID, nil, 3, 2, 100.0, now, now, 3, "Ceramic Mug", 100.0, 85.0, 12, 200, true)

	mock.ExpectQuery(`SELECT (.+) FROM cart_items c JOIN products p ON p\.id = c\.product_id WHERE c\.user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(rows)

	items, err := repo.GetItems(ctx, Owner{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(3), items[0].ProductID)
	assert.Equal(t, "Ceramic Mug", items[0].Product.Name)
	assert.Equal(t, 200, items[0].Product.StockQuantity)
}

func TestRepository_GetItemByProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	sessionID := uuid.New()
	owner := Owner{SessionID: &sessionID}

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM cart_items WHERE product_id = \$1 AND session_id = \$2`).
			WithArgs(uint(3), sessionID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "session_id", "product_id", "quantity", "unit_price_at_add", "created_at", "updated_at",
			}).AddRow(1, nil, sessionID, 3, 2, 100.0, now, now))

		item, err := repo.GetItemByProduct(ctx, owner, 3)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM cart_items`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "session_id", "product_id", "quantity", "unit_price_at_add", "created_at", "updated_at",
			}))

		item, err := repo.GetItemByProduct(ctx, owner, 99)
		assert.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()
	userID := uint(7)

	mock.ExpectQuery(`INSERT INTO cart_items`).
		WithArgs(&userID, (*uuid.UUID)(nil), uint(3), 2, 100.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	item := &CartItem{UserID: &userID, ProductID: 3, Quantity: 2, UnitPriceAtAdd: 100}
	err = repo.CreateItem(context.Background(), item)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), item.ID)
}

func TestRepository_UpdateQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cart_items`).
			WithArgs(5, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateQuantity(ctx, 1, 5))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cart_items`).
			WithArgs(5, uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateQuantity(ctx, 99, 5), ErrCartItemNotFound)
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := uint(7)
	owner := Owner{UserID: &userID}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM cart_items WHERE product_id = \$1 AND user_id = \$2`).
			WithArgs(uint(3), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RemoveItem(ctx, owner, 3))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM cart_items`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.RemoveItem(ctx, owner, 99), ErrCartItemNotFound)
	})
}

func TestRepository_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	sessionID := uuid.New()

	mock.ExpectExec(`DELETE FROM cart_items WHERE session_id = \$1`).
		WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.Clear(context.Background(), Owner{SessionID: &sessionID}))
}
