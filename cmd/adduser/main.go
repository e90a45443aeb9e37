// Command adduser provisions a wallet account with an opening balance.
// Provisioning is the only path that sets a balance outright; from then on
// the balance only moves through transfers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-api/wallet_api/internal/identity"
	"github.com/wallet-api/wallet_api/internal/infra"
	"github.com/wallet-api/wallet_api/internal/ledger"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL (defaults to DATABASE_URL)")
		username    = flag.String("username", "", "username of the account to be added")
		password    = flag.String("password", "", "password of the account to be added")
		balance     = flag.Int64("balance", 0, "opening balance in the smallest currency unit")
	)
	flag.Parse()

	if err := run(*databaseURL, *username, *password, *balance); err != nil {
		fmt.Fprintf(os.Stderr, "adduser: %v\n", err)
		os.Exit(1)
	}
}

func run(databaseURL, username, password string, balance int64) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	if balance < 0 {
		return fmt.Errorf("opening balance must not be negative")
	}

	hash, err := identity.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := infra.NewPostgresPool(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	store := ledger.NewPostgresStore(db)
	account := ledger.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Balance:      balance,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.CreateAccount(ctx, account); err != nil {
		return err
	}

	fmt.Printf("created account %s (%s) with balance %d\n", account.Username, account.ID, account.Balance)
	return nil
}
