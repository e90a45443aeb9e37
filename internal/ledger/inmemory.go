package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore keeps all state behind one RWMutex, which serves as the
// serializing transaction boundary: a transfer holds the write lock from
// balance check through record append, so readers never see a half-applied
// transfer and concurrent transfers are totally ordered.
type memoryStore struct {
	mu         sync.RWMutex
	accounts   map[string]Account
	byUsername map[string]string
	records    []Record
	commitErr  error
}

// NewMemory creates a concurrency-safe in-memory store useful for unit tests.
func NewMemory() Store {
	return &memoryStore{
		accounts:   make(map[string]Account),
		byUsername: make(map[string]string),
	}
}

func (s *memoryStore) CreateAccount(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUsername[account.Username]; exists {
		return ErrAccountExists
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	s.accounts[account.ID] = account
	s.byUsername[account.Username] = account.ID
	return nil
}

func (s *memoryStore) AccountByUsername(_ context.Context, username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return s.accounts[id], nil
}

func (s *memoryStore) AccountByID(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (s *memoryStore) Balance(_ context.Context, id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return account.Balance, nil
}

func (s *memoryStore) Transfer(_ context.Context, senderID, receiverID string, amount int64) (Record, error) {
	if amount <= 0 {
		return Record{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.accounts[senderID]
	if !ok {
		return Record{}, ErrAccountNotFound
	}
	receiver, ok := s.accounts[receiverID]
	if !ok {
		return Record{}, ErrAccountNotFound
	}

	if sender.Balance < amount {
		return Record{}, ErrInsufficientFunds
	}

	// Armed by test fault injection: abort before anything is applied, the
	// way a rolled-back transaction leaves no trace.
	if s.commitErr != nil {
		err := s.commitErr
		s.commitErr = nil
		return Record{}, err
	}

	if senderID == receiverID {
		// Self-transfer: net zero, still recorded.
		receiver = sender
	} else {
		sender.Balance -= amount
		receiver.Balance += amount
		s.accounts[senderID] = sender
	}
	s.accounts[receiverID] = receiver

	record := Record{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *memoryStore) TransactionsFor(_ context.Context, id string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[id]; !ok {
		return nil, ErrAccountNotFound
	}
	records := make([]Record, 0)
	for _, record := range s.records {
		if record.SenderID == id || record.ReceiverID == id {
			records = append(records, record)
		}
	}
	return records, nil
}
