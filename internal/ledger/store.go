package ledger

import (
	"context"
	"errors"
)

var (
	// ErrAccountNotFound occurs when an account id or username does not resolve.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists occurs when provisioning collides with an existing username.
	ErrAccountExists = errors.New("account already exists")

	// ErrInsufficientFunds occurs when the sender's balance at the serialization
	// point cannot cover the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")

	// ErrInvalidAmount occurs when a transfer amount is zero or negative.
	ErrInvalidAmount = errors.New("transfer amount must be greater than zero")

	// ErrStoreFailure indicates the atomic commit unit failed for an
	// infrastructure reason. The unit is rolled back in full before this is
	// returned, so callers may safely retry.
	ErrStoreFailure = errors.New("unable to complete transaction")
)

// Store is the contract implemented by wallet storage backends. Balances are
// only ever mutated through Transfer, which applies relative deltas inside a
// single atomic unit of work; there is no way to set a balance outright from
// the transfer path.
type Store interface {
	// CreateAccount provisions a new account with its opening balance.
	CreateAccount(ctx context.Context, account Account) error

	AccountByUsername(ctx context.Context, username string) (Account, error)
	AccountByID(ctx context.Context, id string) (Account, error)

	// Balance reads the current committed balance. A transfer that has not
	// fully committed is never observable here.
	Balance(ctx context.Context, id string) (int64, error)

	// Transfer moves amount from sender to receiver and appends exactly one
	// ledger record, all within one atomic unit: either every step takes
	// effect or none do. The sender's balance check and debit happen at a
	// single serialization point, so two concurrent transfers can never
	// jointly overdraw an account.
	Transfer(ctx context.Context, senderID, receiverID string, amount int64) (Record, error)

	// TransactionsFor returns every committed record where the account is
	// sender or receiver, in commit order. An account with no history gets
	// an empty slice, not an error.
	TransactionsFor(ctx context.Context, id string) ([]Record, error)
}
