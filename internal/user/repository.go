package user

import (
	"context"
	"database/sql"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
	List(ctx context.Context, limit, offset int32) ([]User, error)
}

type CreateUserParams struct {
	Email       string
	Password    string
	Name        string
	Role        Role
	UserType    UserType
	CompanyName *string
	Mobile      *string
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, name, role, user_type, company_name, mobile)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, password_hash, name, role, user_type, company_name, mobile, created_at
	`,
		params.Email, params.Password, params.Name,
		params.Role, params.UserType, params.CompanyName, params.Mobile,
	).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name,
		&u.Role, &u.UserType, &u.CompanyName, &u.Mobile, &u.CreatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", params.Email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, user_type, company_name, mobile, created_at
		FROM users WHERE email = $1
	`, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name,
		&u.Role, &u.UserType, &u.CompanyName, &u.Mobile, &u.CreatedAt,
	)

	return u, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, user_type, company_name, mobile, created_at
		FROM users WHERE id = $1
	`, id).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name,
		&u.Role, &u.UserType, &u.CompanyName, &u.Mobile, &u.CreatedAt,
	)

	return u, err
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, password_hash, name, role, user_type, company_name, mobile, created_at
		FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Password, &u.Name,
			&u.Role, &u.UserType, &u.CompanyName, &u.Mobile, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
