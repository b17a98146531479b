package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

type fakeAccountRepo struct {
	byID map[string]*domain.Account
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.byID[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := f.byID[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range f.byID {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range f.byID {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(f.byID))
	for _, account := range f.byID {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func TestResolver_Resolve(t *testing.T) {
	repo := &fakeAccountRepo{byID: map[string]*domain.Account{
		"active-1": {
			ID:           "active-1",
			Username:     "amina",
			Email:        "amina@pharmacy.test",
			PasswordHash: "hash",
			Role:         domain.RoleAdmin,
			Status:       domain.AccountStatusActive,
		},
		"inactive-1": {
			ID:       "inactive-1",
			Username: "former",
			Email:    "former@pharmacy.test",
			Role:     domain.RoleStaff,
			Status:   domain.AccountStatusInactive,
		},
	}}
	resolver := NewResolver(repo)

	t.Run("active account", func(t *testing.T) {
		principal, err := resolver.Resolve(context.Background(), "active-1")
		require.NoError(t, err)
		assert.Equal(t, "active-1", principal.ID)
		assert.Equal(t, "amina", principal.Username)
		assert.Equal(t, domain.RoleAdmin, principal.Role)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "inactive-1")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}
