package query

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the read-only wallet endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a query handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance returns the authenticated account's committed balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	balance, err := h.service.Balance(c.UserContext(), accountID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "account not found")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"balance": balance})
}

// Transactions returns the authenticated account's transfer history.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	transactions, err := h.service.Transactions(c.UserContext(), accountID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "account not found")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": transactions})
}
