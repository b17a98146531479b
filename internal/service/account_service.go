package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pharmacy-pos/internal/auth"
	"github.com/spec-kit/pharmacy-pos/internal/config"
	"github.com/spec-kit/pharmacy-pos/internal/domain"
	"github.com/spec-kit/pharmacy-pos/internal/repository"
	apperrors "github.com/spec-kit/pharmacy-pos/pkg/util"
)

// AccountService implements admin-side account administration.
type AccountService struct {
	accounts   repository.AccountRepository
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts, bcryptCost: cfg.Auth.BcryptCost}
}

// List returns every account.
func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx)
}

// Create provisions an account with an explicit role.
func (s *AccountService) Create(ctx context.Context, username, email, password string, role domain.Role) (*domain.Account, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.AccountStatusActive,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SetStatus activates or deactivates an account. A deactivated account keeps
// its issued tokens but fails principal resolution on the next request.
func (s *AccountService) SetStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": id})
		}
		return nil, err
	}

	account.Status = status
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
