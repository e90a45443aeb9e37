package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wallet-api/wallet_api/internal/config"
	"github.com/wallet-api/wallet_api/internal/middleware"
	"github.com/wallet-api/wallet_api/internal/query"
	"github.com/wallet-api/wallet_api/internal/transfer"
)

// RegisterWalletRoutes wires the authenticated wallet endpoints. The transfer
// route additionally carries idempotency protection when Redis is available.
func RegisterWalletRoutes(r fiber.Router, th *transfer.Handler, qh *query.Handler, cache *redis.Client, cfg config.Config, logger *slog.Logger) {
	if cache != nil {
		r.Post("/transfer", middleware.Idempotency(cache, cfg.IdempotencyTTL, logger), th.Transfer)
	} else {
		r.Post("/transfer", th.Transfer)
	}
	r.Get("/balance", qh.Balance)
	r.Get("/transactions", qh.Transactions)
}
