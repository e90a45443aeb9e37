package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wallet-api/wallet_api/internal/logging"
)

func setupIdempotentApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var calls int
	app.Post("/transfer", func(c *fiber.Ctx) error {
		calls++
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": "True", "calls": calls})
	})
	app.Get("/balance", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, cleanup
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app, cleanup := setupIdempotentApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/transfer", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestIdempotencyReplaysResponseWithoutSecondExecution(t *testing.T) {
	app, cleanup := setupIdempotentApp(t)
	defer cleanup()

	post := func() []byte {
		req := httptest.NewRequest(fiber.MethodPost, "/transfer", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "transfer-abc123")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected status %d got %d", fiber.StatusOK, resp.StatusCode)
		}
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		return payload
	}

	first := post()
	second := post()

	// The replay must be byte-identical, proving the handler did not run again.
	if string(first) != string(second) {
		t.Fatalf("expected replayed payload %s got %s", first, second)
	}
}

func TestIdempotencyGetBypassed(t *testing.T) {
	app, cleanup := setupIdempotentApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodGet, "/balance", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET should not require an idempotency key, got %d", resp.StatusCode)
	}
}
