package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]Product, int64, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	SetStock(ctx context.Context, id uint, quantity int) error
	LowStock(ctx context.Context) ([]Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, slug, description, price, wholesale_price,
		min_order_quantity, stock_quantity, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.WholesalePrice,
		&p.MinOrderQuantity, &p.StockQuantity, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *repository) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}

	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadBulkPricing(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) loadBulkPricing(ctx context.Context, p *Product) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, threshold_quantity, unit_price
		FROM bulk_price_tiers
		WHERE product_id = $1
		ORDER BY threshold_quantity ASC
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t BulkPriceTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.ThresholdQuantity, &t.UnitPrice); err != nil {
			return err
		}
		p.BulkPricing = append(p.BulkPricing, t)
	}

	return rows.Err()
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, int64, error) {
	where := "WHERE 1=1"
	args := []any{}
	argPos := 1

	if !opts.IncludeInactive {
		where += " AND is_active = TRUE"
	}
	if opts.InStockOnly {
		where += " AND stock_quantity > 0"
	}
	if opts.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+opts.Search+"%")
		argPos++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT "+productColumns+" FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, argPos, argPos+1,
	)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range products {
		if err := r.loadBulkPricing(ctx, &products[i]); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, description, price, wholesale_price,
			min_order_quantity, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Slug, p.Description, p.Price, p.WholesalePrice,
		p.MinOrderQuantity, p.StockQuantity, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("db: failed to insert product", zap.String("name", p.Name), zap.Error(err))
		return err
	}

	if err := insertTiers(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4,
			wholesale_price = $5, min_order_quantity = $6, is_active = $7,
			updated_at = NOW()
		WHERE id = $8
	`,
		p.Name, p.Slug, p.Description, p.Price,
		p.WholesalePrice, p.MinOrderQuantity, p.IsActive, p.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrProductNotFound
	}

	// Tiers are replaced wholesale; the set is small per product.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bulk_price_tiers WHERE product_id = $1`, p.ID,
	); err != nil {
		return err
	}
	if err := insertTiers(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func insertTiers(ctx context.Context, tx *sql.Tx, p *Product) error {
	for i := range p.BulkPricing {
		t := &p.BulkPricing[i]
		t.ProductID = p.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO bulk_price_tiers (product_id, threshold_quantity, unit_price)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.ID, t.ThresholdQuantity, t.UnitPrice).Scan(&t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) SetStock(ctx context.Context, id uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock_quantity = $1, updated_at = NOW() WHERE id = $2
	`, quantity, id)
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

// LowStock returns active products at or below their reorder point
// (max(2 * MOQ, 10)).
func (r *repository) LowStock(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = TRUE
		  AND stock_quantity <= GREATEST(2 * min_order_quantity, 10)
		ORDER BY stock_quantity ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
