package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
	apperrors "github.com/spec-kit/pharmacy-pos/pkg/util"
)

const principalKey = "auth_principal"

// Messages surfaced by the gate. Token failures all map to the generic message
// so callers cannot probe which verification step rejected them.
const (
	msgNotAuthorized   = "Not authorized to access this route"
	msgNoUserFound     = "No user found with this id"
	msgAccountInactive = "Your account is inactive. Please contact admin."
)

// Middleware validates bearer tokens and attaches principals to the request.
type Middleware struct {
	tokens   *TokenManager
	resolver *Resolver
}

// NewMiddleware constructs the request gate.
func NewMiddleware(tokens *TokenManager, resolver *Resolver) *Middleware {
	return &Middleware{tokens: tokens, resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated(msgNotAuthorized)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated(msgNotAuthorized)
	}

	subjectID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated(msgNotAuthorized)
	}

	principal, err := m.resolver.Resolve(c.UserContext(), subjectID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountNotFound):
			return apperrors.NewUnauthenticated(msgNoUserFound)
		case errors.Is(err, ErrAccountInactive):
			return apperrors.NewUnauthenticated(msgAccountInactive)
		default:
			return apperrors.MapError(err)
		}
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
