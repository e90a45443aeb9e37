package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wallet-api/wallet_api/internal/config"
	"github.com/wallet-api/wallet_api/internal/identity"
	"github.com/wallet-api/wallet_api/internal/ledger"
	"github.com/wallet-api/wallet_api/internal/middleware"
	"github.com/wallet-api/wallet_api/internal/notification"
	"github.com/wallet-api/wallet_api/internal/query"
	"github.com/wallet-api/wallet_api/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes. Store may be
// pre-built (tests seed it with accounts); when nil it is derived from DB, or
// falls back to the in-memory store in development.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
	Store  ledger.Store
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil && d.Store == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	store := d.Store
	if store == nil {
		if d.DB != nil {
			store = ledger.NewPostgresStore(d.DB)
		} else {
			store = ledger.NewMemory()
		}
	}

	gate := identity.NewService(store, d.Logger)
	notifier := notification.NewLoggerNotifier(d.Logger)
	transferSvc := transfer.NewService(store, notifier, d.Logger)
	querySvc := query.NewService(store)

	transferHandler := transfer.NewHandler(transferSvc)
	queryHandler := query.NewHandler(querySvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Every wallet operation requires Basic credentials; the rate limiter
	// sits in front so guessing is throttled before bcrypt runs.
	wallet := app.Group("/wallet",
		middleware.AuthRateLimit(d.Cache, d.Cfg.AuthRateLimit),
		middleware.BasicAuth(gate),
	)
	RegisterWalletRoutes(wallet, transferHandler, queryHandler, d.Cache, d.Cfg, d.Logger)

	return nil
}
