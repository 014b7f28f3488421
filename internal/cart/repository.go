package cart

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	GetItems(ctx context.Context, owner Owner) ([]CartItem, error)
	GetItemByProduct(ctx context.Context, owner Owner, productID uint) (*CartItem, error)
	CreateItem(ctx context.Context, item *CartItem) error
	UpdateQuantity(ctx context.Context, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, owner Owner, productID uint) error
	Clear(ctx context.Context, owner Owner) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// ownerClause builds the WHERE fragment selecting the owner's rows.
func ownerClause(owner Owner, startPos int) (string, []any) {
	if owner.UserID != nil {
		return fmt.Sprintf("user_id = $%d", startPos), []any{*owner.UserID}
	}
	return fmt.Sprintf("session_id = $%d", startPos), []any{*owner.SessionID}
}

func (r *repository) GetItems(ctx context.Context, owner Owner) ([]CartItem, error) {
	clause, args := ownerClause(owner, 1)

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT c.id, c.user_id, c.session_id, c.product_id, c.quantity, c.unit_price_at_add,
			c.created_at, c.updated_at,
			p.id, p.name, p.price, p.wholesale_price, p.min_order_quantity, p.stock_quantity, p.is_active
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.%s
		ORDER BY c.created_at ASC
	`, clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.SessionID, &it.ProductID, &it.Quantity, &it.UnitPriceAtAdd,
			&it.CreatedAt, &it.UpdatedAt,
			&it.Product.ID, &it.Product.Name, &it.Product.Price, &it.Product.WholesalePrice,
			&it.Product.MinOrderQuantity, &it.Product.StockQuantity, &it.Product.IsActive,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetItemByProduct(ctx context.Context, owner Owner, productID uint) (*CartItem, error) {
	clause, args := ownerClause(owner, 2)

	var it CartItem
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, user_id, session_id, product_id, quantity, unit_price_at_add, created_at, updated_at
		FROM cart_items
		WHERE product_id = $1 AND %s
	`, clause), append([]any{productID}, args...)...).Scan(
		&it.ID, &it.UserID, &it.SessionID, &it.ProductID, &it.Quantity, &it.UnitPriceAtAdd,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, item *CartItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, session_id, product_id, quantity, unit_price_at_add)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		item.UserID, item.SessionID, item.ProductID, item.Quantity, item.UnitPriceAtAdd,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *repository) UpdateQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, owner Owner, productID uint) error {
	clause, args := ownerClause(owner, 2)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM cart_items WHERE product_id = $1 AND %s`, clause),
		append([]any{productID}, args...)...,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, owner Owner) error {
	clause, args := ownerClause(owner, 1)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM cart_items WHERE %s`, clause), args...,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartEmpty
	}

	return nil
}
