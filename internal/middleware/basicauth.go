package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wallet-api/wallet_api/internal/identity"
)

const basicRealm = `Basic realm="wallet"`

// BasicAuth resolves HTTP Basic credentials through the access gate and
// stores the authenticated account id in request locals. Handlers read the
// id from there and pass it to services as an explicit argument.
func BasicAuth(gate *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := basicCredentials(c)
		if !ok {
			c.Set(fiber.HeaderWWWAuthenticate, basicRealm)
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}

		accountID, err := gate.Authenticate(c.UserContext(), username, password)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, basicRealm)
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}

		c.Locals("account_id", accountID)
		c.Locals("account_username", username)
		return c.Next()
	}
}

// basicCredentials parses the Authorization header without verifying anything.
func basicCredentials(c *fiber.Ctx) (username, password string, ok bool) {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "basic ") {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(authz[len("Basic "):]))
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}
