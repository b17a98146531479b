package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
	"github.com/spec-kit/pharmacy-pos/internal/repository"
)

// Resolution failures.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account inactive")
)

// Resolver derives an authenticated principal from a verified subject id.
type Resolver struct {
	accounts repository.AccountRepository
}

// NewResolver constructs a resolver over the account store.
func NewResolver(accounts repository.AccountRepository) *Resolver {
	return &Resolver{accounts: accounts}
}

// Resolve loads the account and projects it onto a Principal. A principal is
// never built for a missing or non-active account.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) (*domain.Principal, error) {
	account, err := r.accounts.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if account.Status != domain.AccountStatusActive {
		return nil, ErrAccountInactive
	}
	return domain.PrincipalFromAccount(account), nil
}
