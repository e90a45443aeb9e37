package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wallet-api/wallet_api/internal/ledger"
)

func seedCredentials(t *testing.T, store ledger.Store, username, password string) ledger.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	account := ledger.Account{ID: uuid.NewString(), Username: username, PasswordHash: hash}
	if err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func TestAuthenticate(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store, nil)
	ctx := context.Background()

	account := seedCredentials(t, store, "user1", "secret")

	id, err := svc.Authenticate(ctx, "user1", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id != account.ID {
		t.Fatalf("expected account id %s, got %s", account.ID, id)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store, nil)

	seedCredentials(t, store, "user1", "secret")

	if _, err := svc.Authenticate(context.Background(), "user1", "invalid_password"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewService(ledger.NewMemory(), nil)

	if _, err := svc.Authenticate(context.Background(), "invalid_user", "password"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("itsasecret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("itsasecret")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}
