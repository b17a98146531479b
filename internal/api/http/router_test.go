package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/pharmacy-pos/internal/api/http/handlers"
	"github.com/spec-kit/pharmacy-pos/internal/auth"
	"github.com/spec-kit/pharmacy-pos/internal/config"
	"github.com/spec-kit/pharmacy-pos/internal/domain"
	"github.com/spec-kit/pharmacy-pos/internal/observability"
	"github.com/spec-kit/pharmacy-pos/internal/persistence"
	"github.com/spec-kit/pharmacy-pos/internal/repository"
	"github.com/spec-kit/pharmacy-pos/internal/service"
)

const testSecret = "test-secret"

type memAccountRepo struct {
	byID map[string]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byID: map[string]*domain.Account{}}
}

func (m *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = account.Username
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.byID[account.ID] = account
	return nil
}

func (m *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := m.byID[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[account.ID] = account
	return nil
}

func (m *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (m *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range m.byID {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range m.byID {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(m.byID))
	for _, account := range m.byID {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

type memResetRepo struct {
	tokens map[string]string
}

func (m *memResetRepo) Create(_ context.Context, token, accountID string, _ time.Duration) error {
	m.tokens[token] = accountID
	return nil
}

func (m *memResetRepo) Consume(_ context.Context, token string) (string, error) {
	accountID, ok := m.tokens[token]
	if !ok {
		return "", repository.ErrResetTokenInvalid
	}
	delete(m.tokens, token)
	return accountID, nil
}

type testEnv struct {
	app  *fiber.App
	repo *memAccountRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               testSecret,
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}

	repo := newMemAccountRepo()
	seed := func(username, email, password string, role domain.Role, status domain.AccountStatus) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), &domain.Account{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Status:       status,
		}))
	}
	seed("root", "root@pharmacy.test", "root-pass", domain.RoleAdmin, domain.AccountStatusActive)
	seed("clerk", "clerk@pharmacy.test", "clerk-pass", domain.RoleStaff, domain.AccountStatusActive)
	seed("ghost", "ghost@pharmacy.test", "ghost-pass", domain.RoleStaff, domain.AccountStatusInactive)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AccountRepo:       repo,
		PasswordResetRepo: &memResetRepo{tokens: map[string]string{}},
	})
	accountService := service.NewAccountService(cfg, repo)

	resolver := auth.NewResolver(repo)
	middleware := auth.NewMiddleware(authService.TokenManager(), resolver)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		AuthMiddleware: middleware,
	})

	return &testEnv{app: app, repo: repo}
}

func (e *testEnv) request(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code, envelope.Error.Message
}

func decodeAuth(t *testing.T, resp *http.Response) (token string, user *domain.Principal) {
	t.Helper()
	var envelope struct {
		Data struct {
			Token string            `json:"token"`
			User  *domain.Principal `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data.Token, envelope.Data.User
}

func signedToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestLogin_AdminSuccess(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "root@pharmacy.test", "password": "root-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, user := decodeAuth(t, resp)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	me := env.request(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "root@pharmacy.test", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	code, message := decodeError(t, resp)
	assert.Equal(t, "UNAUTHENTICATED", code)
	assert.Equal(t, "Invalid email or password", message)
}

func TestLogin_InactiveAccount(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ghost@pharmacy.test", "password": "ghost-pass",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, message := decodeError(t, resp)
	assert.Equal(t, "Your account is inactive. Please contact admin.", message)
}

func TestGate_MissingOrBadHeader(t *testing.T) {
	env := newTestEnv(t)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc123",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := env.app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			_, message := decodeError(t, resp)
			assert.Equal(t, "Not authorized to access this route", message)
		})
	}
}

func TestGate_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	expired := signedToken(t, testSecret, "root", time.Now().Add(-time.Minute))
	resp := env.request(t, http.MethodGet, "/auth/me", expired, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, message := decodeError(t, resp)
	assert.Equal(t, "Not authorized to access this route", message)
}

func TestGate_TamperedToken(t *testing.T) {
	env := newTestEnv(t)

	forged := signedToken(t, "attacker-secret", "root", time.Now().Add(time.Hour))
	resp := env.request(t, http.MethodGet, "/auth/me", forged, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The gate never says whether it was the signature, expiry or format.
	_, message := decodeError(t, resp)
	assert.Equal(t, "Not authorized to access this route", message)
}

func TestGate_UnknownSubject(t *testing.T) {
	env := newTestEnv(t)

	orphan := signedToken(t, testSecret, "deleted-account", time.Now().Add(time.Hour))
	resp := env.request(t, http.MethodGet, "/auth/me", orphan, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, message := decodeError(t, resp)
	assert.Equal(t, "No user found with this id", message)
}

func TestGate_DeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)

	token := signedToken(t, testSecret, "ghost", time.Now().Add(time.Hour))
	resp := env.request(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, message := decodeError(t, resp)
	assert.Equal(t, "Your account is inactive. Please contact admin.", message)
}

func TestAccounts_StaffForbidden(t *testing.T) {
	env := newTestEnv(t)

	login := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "clerk@pharmacy.test", "password": "clerk-pass",
	})
	require.Equal(t, http.StatusOK, login.StatusCode)
	token, _ := decodeAuth(t, login)

	resp := env.request(t, http.MethodGet, "/accounts/", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	code, message := decodeError(t, resp)
	assert.Equal(t, "FORBIDDEN", code)
	assert.Equal(t, "User role staff is not authorized to access this route", message)
}

func TestAccounts_AdminLifecycle(t *testing.T) {
	env := newTestEnv(t)

	login := env.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "root@pharmacy.test", "password": "root-pass",
	})
	token, _ := decodeAuth(t, login)

	list := env.request(t, http.MethodGet, "/accounts/", token, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)

	created := env.request(t, http.MethodPost, "/accounts/", token, map[string]string{
		"username": "newadmin", "email": "newadmin@pharmacy.test",
		"password": "secret", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)

	// Deactivate the clerk; its existing token must stop resolving.
	clerkToken := signedToken(t, testSecret, "clerk", time.Now().Add(time.Hour))
	me := env.request(t, http.MethodGet, "/auth/me", clerkToken, nil)
	require.Equal(t, http.StatusOK, me.StatusCode)

	patched := env.request(t, http.MethodPatch, "/accounts/clerk/status", token, map[string]string{
		"status": "INACTIVE",
	})
	require.Equal(t, http.StatusOK, patched.StatusCode)

	me = env.request(t, http.MethodGet, "/auth/me", clerkToken, nil)
	require.Equal(t, http.StatusUnauthorized, me.StatusCode)
	_, message := decodeError(t, me)
	assert.Equal(t, "Your account is inactive. Please contact admin.", message)
}

func TestRegister_DefaultsToStaff(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "newhire", "email": "newhire@pharmacy.test", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token, user := decodeAuth(t, resp)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleStaff, user.Role)

	dup := env.request(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "other", "email": "newhire@pharmacy.test", "password": "secret",
	})
	require.Equal(t, http.StatusConflict, dup.StatusCode)
}
