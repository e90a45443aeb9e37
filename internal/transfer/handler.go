package transfer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wallet-api/wallet_api/internal/ledger"
)

// Handler exposes the transfer HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// transferRequest keeps the amount raw so the integer-type contract can be
// enforced before the engine is invoked.
type transferRequest struct {
	Receiver string          `json:"receiver"`
	Amount   json.RawMessage `json:"amount"`
}

// Transfer moves funds from the authenticated account to the named receiver.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid request, please provide both receiver and amount")
	}
	if req.Receiver == "" || len(req.Amount) == 0 {
		return fiber.NewError(http.StatusBadRequest, "Invalid request, please provide both receiver and amount")
	}

	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid amount provided, please ensure the correct type is used.")
	}

	senderID, _ := c.Locals("account_id").(string)
	if senderID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := h.service.Transfer(c.UserContext(), senderID, req.Receiver, amount); err != nil {
		switch {
		case errors.Is(err, ErrInvalidReceiver):
			return fiber.NewError(http.StatusBadRequest, "Invalid User Provided")
		case errors.Is(err, ledger.ErrInvalidAmount):
			return fiber.NewError(http.StatusForbidden, "Transfer amount must be greater than zero.")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusForbidden, "Insufficient funds for transfer")
		default:
			return fiber.NewError(http.StatusInternalServerError, "Unable to complete transaction")
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": "True"})
}
