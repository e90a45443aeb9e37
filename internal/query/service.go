package query

import (
	"context"
	"time"

	"github.com/wallet-api/wallet_api/internal/ledger"
)

// Transaction is the caller-facing view of a ledger record, with account ids
// resolved to usernames.
type Transaction struct {
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver"`
	Amount   int64     `json:"amount"`
	Date     time.Time `json:"date"`
}

// Service answers read-only balance and history questions for one
// authenticated account. It never mutates the store and only ever observes
// committed state.
type Service struct {
	store ledger.Store
}

// NewService constructs a query service.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// Balance returns the current committed balance for the account.
func (s *Service) Balance(ctx context.Context, accountID string) (int64, error) {
	return s.store.Balance(ctx, accountID)
}

// Transactions returns every committed record where the account is sender or
// receiver, in commit order. An account with no history gets an empty slice.
func (s *Service) Transactions(ctx context.Context, accountID string) ([]Transaction, error) {
	records, err := s.store.TransactionsFor(ctx, accountID)
	if err != nil {
		return nil, err
	}

	usernames := make(map[string]string, 2)
	resolve := func(id string) (string, error) {
		if name, ok := usernames[id]; ok {
			return name, nil
		}
		account, err := s.store.AccountByID(ctx, id)
		if err != nil {
			return "", err
		}
		usernames[id] = account.Username
		return account.Username, nil
	}

	transactions := make([]Transaction, 0, len(records))
	for _, record := range records {
		sender, err := resolve(record.SenderID)
		if err != nil {
			return nil, err
		}
		receiver, err := resolve(record.ReceiverID)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, Transaction{
			Sender:   sender,
			Receiver: receiver,
			Amount:   record.Amount,
			Date:     record.CreatedAt,
		})
	}
	return transactions, nil
}
