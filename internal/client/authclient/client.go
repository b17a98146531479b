package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/spec-kit/pharmacy-pos/internal/api/dto"
	"github.com/spec-kit/pharmacy-pos/internal/client/session"
	"github.com/spec-kit/pharmacy-pos/internal/config"
	"github.com/spec-kit/pharmacy-pos/internal/domain"
	apperrors "github.com/spec-kit/pharmacy-pos/pkg/util"
)

const (
	msgLoginTimeout = "Login request timed out. Please check your network connection."
	msgAuthFailed   = "Authentication failed"
)

// Client performs the dashboard's auth exchanges and keeps the session store
// in sync. Calls are independent; two racing logins leave the store reflecting
// whichever response landed last.
type Client struct {
	baseURL      string
	http         *http.Client
	store        session.Store
	loginTimeout time.Duration
}

// New builds a client over the given session store.
func New(cfg config.ClientConfig, store session.Store) *Client {
	return &Client{
		baseURL:      cfg.APIBaseURL,
		http:         &http.Client{},
		store:        store,
		loginTimeout: cfg.LoginTimeout(),
	}
}

// RegisterInput holds the registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Login exchanges credentials for a token, persists the session and returns
// it. The exchange is bounded by the configured login timeout.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()

	auth, err := c.postAuth(ctx, "/auth/login", dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", nil, apperrors.NewTimeout(msgLoginTimeout)
		}
		return "", nil, err
	}

	if err := c.store.Save(auth.Token, auth.User); err != nil {
		return "", nil, err
	}
	return auth.Token, auth.User, nil
}

// Register creates an account and persists the returned session. Unlike
// Login it carries no deadline of its own.
func (c *Client) Register(ctx context.Context, input RegisterInput) (string, *domain.Principal, error) {
	auth, err := c.postAuth(ctx, "/auth/register", dto.RegisterRequest{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return "", nil, err
	}

	if err := c.store.Save(auth.Token, auth.User); err != nil {
		return "", nil, err
	}
	return auth.Token, auth.User, nil
}

// CurrentPrincipal returns the authenticated principal, or nil when there is
// no usable session. With no stored token it answers immediately with no
// network call. A stored token the server no longer accepts is cleared
// silently; callers must treat nil as "not logged in", not as an error.
func (c *Client) CurrentPrincipal(ctx context.Context) (*domain.Principal, error) {
	token, _, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err := c.Logout(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var envelope struct {
		Data struct {
			User *domain.Principal `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	return envelope.Data.User, nil
}

// Logout clears the stored session. It never calls the network and is safe to
// call on an already-empty store.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) postAuth(ctx context.Context, path string, payload any) (*dto.AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}
		return nil, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewAuthRejected(rejectionMessage(resp.Body))
	}

	var envelope struct {
		Data dto.AuthResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	return &envelope.Data, nil
}

// rejectionMessage pulls the server's message out of the error envelope,
// falling back to a generic one when the body is unparsable.
func rejectionMessage(body io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil || envelope.Error.Message == "" {
		return msgAuthFailed
	}
	return envelope.Error.Message
}
