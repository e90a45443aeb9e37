package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wallet-api/wallet_api/internal/ledger"
	"github.com/wallet-api/wallet_api/internal/notification"
)

type testNotifier struct {
	last notification.Message
	sent int
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	n.sent++
	return nil
}

func seedAccount(t *testing.T, store ledger.Store, username string, balance int64) ledger.Account {
	t.Helper()
	account := ledger.Account{ID: uuid.NewString(), Username: username, Balance: balance}
	if err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("create account %s: %v", username, err)
	}
	return account
}

func TestTransferSuccess(t *testing.T) {
	store := ledger.NewMemory()
	notifier := &testNotifier{}
	svc := NewService(store, notifier, nil)
	ctx := context.Background()

	sender := seedAccount(t, store, "user4", 500)
	receiver := seedAccount(t, store, "user5", 0)

	receipt, err := svc.Transfer(ctx, sender.ID, "user5", 50)
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if receipt.Record.SenderID != sender.ID || receipt.Record.ReceiverID != receiver.ID || receipt.Record.Amount != 50 {
		t.Fatalf("unexpected record: %+v", receipt.Record)
	}

	senderBalance, _ := store.Balance(ctx, sender.ID)
	receiverBalance, _ := store.Balance(ctx, receiver.ID)
	if senderBalance != 450 || receiverBalance != 50 {
		t.Fatalf("unexpected balances: %d, %d", senderBalance, receiverBalance)
	}

	if notifier.sent != 1 || notifier.last.Destination != "user5" {
		t.Fatalf("expected one notification to user5, got %+v", notifier.last)
	}
}

func TestTransferInvalidReceiver(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	sender := seedAccount(t, store, "user1", 100)

	if _, err := svc.Transfer(ctx, sender.ID, "invalid_user", 50); !errors.Is(err, ErrInvalidReceiver) {
		t.Fatalf("expected invalid receiver, got %v", err)
	}

	balance, _ := store.Balance(ctx, sender.ID)
	if balance != 100 {
		t.Fatalf("sender balance changed after rejection, got %d", balance)
	}
}

func TestTransferInvalidAmountValue(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	sender := seedAccount(t, store, "user2", 500)
	seedAccount(t, store, "user4", 500)

	for _, amount := range []int64{0, -50} {
		if _, err := svc.Transfer(ctx, sender.ID, "user4", amount); !errors.Is(err, ledger.ErrInvalidAmount) {
			t.Fatalf("amount %d: expected invalid amount, got %v", amount, err)
		}
	}

	history, err := store.TransactionsFor(ctx, sender.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("rejected amounts produced %d records", len(history))
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	store := ledger.NewMemory()
	notifier := &testNotifier{}
	svc := NewService(store, notifier, nil)
	ctx := context.Background()

	sender := seedAccount(t, store, "user1", 0)
	seedAccount(t, store, "user5", 0)

	if _, err := svc.Transfer(ctx, sender.ID, "user5", 50); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	balance, _ := store.Balance(ctx, sender.ID)
	if balance != 0 {
		t.Fatalf("sender balance changed, got %d", balance)
	}
	if notifier.sent != 0 {
		t.Fatalf("rejected transfer sent a notification")
	}
}

func TestTransferStoreFailureIsOpaque(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	sender := seedAccount(t, store, "user4", 500)
	seedAccount(t, store, "user5", 0)

	cause := errors.New("connection reset")
	ledger.FailNextTransfer(store, cause)

	_, err := svc.Transfer(ctx, sender.ID, "user5", 50)
	if !errors.Is(err, ledger.ErrStoreFailure) {
		t.Fatalf("expected store failure, got %v", err)
	}
	if errors.Is(err, cause) {
		t.Fatalf("store detail leaked through the service boundary")
	}

	senderBalance, _ := store.Balance(ctx, sender.ID)
	if senderBalance != 500 {
		t.Fatalf("failed commit mutated balance, got %d", senderBalance)
	}
}

func TestTransferToSelf(t *testing.T) {
	store := ledger.NewMemory()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	account := seedAccount(t, store, "user4", 500)

	if _, err := svc.Transfer(ctx, account.ID, "user4", 50); err != nil {
		t.Fatalf("self transfer: %v", err)
	}

	balance, _ := store.Balance(ctx, account.ID)
	if balance != 500 {
		t.Fatalf("self transfer changed balance, got %d", balance)
	}
}
