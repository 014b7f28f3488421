package address

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrAddressNotFound = errors.New("address not found")

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	ClearDefault(ctx context.Context, userID uint) error
	SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `id, user_id, name, phone, address_line1, address_line2,
		city, postal_code, country, is_default, is_active`

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Line1, &a.Line2,
			&a.City, &a.PostalCode, &a.Country, &a.IsDefault, &a.IsActive,
		); err != nil {
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	var a Address
	err := r.db.QueryRowContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE id = $1 AND is_active = TRUE
	`, id).Scan(
		&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Line1, &a.Line2,
		&a.City, &a.PostalCode, &a.Country, &a.IsDefault, &a.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	addr.ID = uuid.New()
	addr.IsActive = true

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO addresses (id, user_id, name, phone, address_line1, address_line2,
			city, postal_code, country, is_default, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		addr.ID, addr.UserID, addr.Name, addr.Phone, addr.Line1, addr.Line2,
		addr.City, addr.PostalCode, addr.Country, addr.IsDefault, addr.IsActive,
	)
	return err
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *repository) ClearDefault(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, userID)
	return err
}

func (r *repository) SetDefault(ctx context.Context, userID uint, addressID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET is_default = TRUE
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
	`, addressID, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}

	return nil
}
