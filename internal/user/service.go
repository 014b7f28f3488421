package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetUserByID(ctx context.Context, id uint) (User, error)
	ListUsers(ctx context.Context, limit, offset int32) ([]User, error)
}

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	UserType    UserType
	CompanyName *string
	Mobile      *string
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return "", User{}, errors.New("email, password and name are required")
	}
	if input.UserType == "" {
		input.UserType = TypeRetail
	}
	if !ValidUserType(input.UserType) {
		return "", User{}, fmt.Errorf("invalid user type: %s", input.UserType)
	}
	// Wholesale accounts carry a company identity.
	if input.UserType == TypeWholesale && (input.CompanyName == nil || *input.CompanyName == "") {
		return "", User{}, errors.New("company name is required for wholesale accounts")
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Email:       input.Email,
		Password:    hashed,
		Name:        input.Name,
		Role:        RoleUser,
		UserType:    input.UserType,
		CompanyName: input.CompanyName,
		Mobile:      input.Mobile,
	})
	if err != nil {
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), string(u.UserType), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
		zap.String("user_type", string(u.UserType)),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.Uint("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), string(u.UserType), u.Email)
	return token, u, err
}

func (s *service) GetUserByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context, limit, offset int32) ([]User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
