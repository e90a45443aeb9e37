package identity

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/wallet-api/wallet_api/internal/ledger"
)

// ErrUnauthenticated is returned for any credential mismatch. Unknown
// usernames and wrong passwords are deliberately indistinguishable.
var ErrUnauthenticated = errors.New("invalid credentials")

// Service is the access gate: it resolves inbound credentials to an account
// id. Downstream services only ever see the resolved id.
type Service struct {
	store  ledger.Store
	logger *slog.Logger
}

// NewService creates a new access gate.
func NewService(store ledger.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Authenticate verifies the username/password pair against the stored bcrypt
// hash and returns the account id on success.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	account, err := s.store.AccountByUsername(ctx, username)
	if err != nil {
		s.logFailure(username)
		return "", ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		s.logFailure(username)
		return "", ErrUnauthenticated
	}

	return account.ID, nil
}

// HashPassword produces the credential hash stored at provisioning time.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func (s *Service) logFailure(username string) {
	if s.logger != nil {
		s.logger.Debug("unauthorised access attempt", "username", username)
	}
}
