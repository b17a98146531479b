package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-pos/internal/api/dto"
	"github.com/spec-kit/pharmacy-pos/internal/domain"
	"github.com/spec-kit/pharmacy-pos/internal/service"
	apperrors "github.com/spec-kit/pharmacy-pos/pkg/util"
)

// AccountsHandler exposes admin-only account administration.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// List handles GET /accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accounts.List(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, dto.NewAccountResponse(account))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"accounts": items}})
}

// Create handles POST /accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	var req dto.AccountCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}

	account, err := h.accounts.Create(c.UserContext(), req.Username, req.Email, req.Password, role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"account": dto.NewAccountResponse(account)},
	})
}

// SetStatus handles PATCH /accounts/:id/status.
func (h *AccountsHandler) SetStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.AccountStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	status := domain.AccountStatus(req.Status)
	if status != domain.AccountStatusActive && status != domain.AccountStatusInactive {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	account, err := h.accounts.SetStatus(c.UserContext(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"account": dto.NewAccountResponse(account)},
	})
}
