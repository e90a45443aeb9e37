package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wallet-api/wallet_api/internal/ledger"
	"github.com/wallet-api/wallet_api/internal/notification"
)

// ErrInvalidReceiver indicates the receiver identifier does not resolve to an
// existing account. Nothing is mutated when this is returned.
var ErrInvalidReceiver = errors.New("invalid user provided")

// Service validates and executes transfers between accounts. The sender is
// always an explicit, already-authenticated account id; the service never
// reads caller identity from ambient state.
type Service struct {
	store    ledger.Store
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a transfer service.
func NewService(store ledger.Store, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Receipt acknowledges a committed transfer.
type Receipt struct {
	Record      ledger.Record
	CompletedAt time.Time
}

// Transfer moves amount from the authenticated sender to the account named by
// receiver (a username). Validation short-circuits before any atomic unit of
// work opens; once the store commit runs, it either fully applies or fully
// rolls back. Self-transfers are permitted and net to zero while still
// producing a ledger record.
func (s *Service) Transfer(ctx context.Context, senderID, receiver string, amount int64) (Receipt, error) {
	if amount <= 0 {
		return Receipt{}, ledger.ErrInvalidAmount
	}

	receiverAccount, err := s.store.AccountByUsername(ctx, receiver)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return Receipt{}, ErrInvalidReceiver
		}
		return Receipt{}, s.storeFailure("resolve receiver", err)
	}

	record, err := s.store.Transfer(ctx, senderID, receiverAccount.ID, amount)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrInvalidAmount):
			return Receipt{}, err
		default:
			// Includes a sender row vanishing mid-flight; the unit has
			// already rolled back by the time the store reports it.
			return Receipt{}, s.storeFailure("commit transfer", err)
		}
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: receiverAccount.Username,
			Body:        fmt.Sprintf("You received %d from account %s", amount, senderID),
		})
	}

	return Receipt{Record: record, CompletedAt: time.Now().UTC()}, nil
}

// storeFailure logs the underlying cause and returns the opaque taxonomy
// error; infrastructure detail never crosses the service boundary.
func (s *Service) storeFailure(op string, err error) error {
	if s.logger != nil {
		s.logger.Error("transaction failed", "op", op, "error", err)
	}
	return ledger.ErrStoreFailure
}
