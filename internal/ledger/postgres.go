package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresStore persists accounts and transfer records in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateAccount inserts a new account row with its opening balance.
func (s *PostgresStore) CreateAccount(ctx context.Context, account Account) error {
	id, err := uuid.Parse(account.ID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO accounts (id, username, password_hash, balance, created_at)
        VALUES ($1, $2, $3, $4, $5)`, id, account.Username, account.PasswordHash, account.Balance, account.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrAccountExists
	}
	return err
}

// AccountByUsername fetches an account by its unique username.
func (s *PostgresStore) AccountByUsername(ctx context.Context, username string) (Account, error) {
	row := s.db.QueryRow(ctx, `SELECT id, username, password_hash, balance, created_at
        FROM accounts WHERE username = $1`, username)
	return scanAccount(row)
}

// AccountByID fetches an account by identifier.
func (s *PostgresStore) AccountByID(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT id, username, password_hash, balance, created_at
        FROM accounts WHERE id = $1`, accountID)
	return scanAccount(row)
}

// Balance reads the committed balance for an account.
func (s *PostgresStore) Balance(ctx context.Context, id string) (int64, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return 0, ErrAccountNotFound
	}
	var balance int64
	if err := s.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return balance, nil
}

// Transfer executes the atomic commit unit: both account rows are locked in
// ascending id order (so mirror-image transfers cannot deadlock), the sender's
// balance is re-checked under the lock, both deltas are applied and exactly one
// record appended, then everything commits or everything rolls back.
func (s *PostgresStore) Transfer(ctx context.Context, senderID, receiverID string, amount int64) (Record, error) {
	if amount <= 0 {
		return Record{}, ErrInvalidAmount
	}

	sender, err := uuid.Parse(senderID)
	if err != nil {
		return Record{}, ErrAccountNotFound
	}
	receiver, err := uuid.Parse(receiverID)
	if err != nil {
		return Record{}, ErrAccountNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Record{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	senderBalance, err := lockAccounts(ctx, tx, sender, receiver)
	if err != nil {
		return Record{}, err
	}
	if senderBalance < amount {
		return Record{}, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`, amount, receiver); err != nil {
		return Record{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`, amount, sender); err != nil {
		return Record{}, err
	}

	record := Record{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := tx.Exec(ctx, `INSERT INTO transfers (id, sender_id, receiver_id, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)`, uuid.MustParse(record.ID), sender, receiver, record.Amount, record.CreatedAt); err != nil {
		return Record{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, err
	}

	return record, nil
}

// TransactionsFor lists committed records touching the account, oldest first.
// Ordering follows the transfers sequence column, i.e. commit order.
func (s *PostgresStore) TransactionsFor(ctx context.Context, id string) ([]Record, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	rows, err := s.db.Query(ctx, `SELECT id, sender_id, receiver_id, amount, created_at
        FROM transfers WHERE sender_id = $1 OR receiver_id = $1 ORDER BY seq`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			recID    uuid.UUID
			sender   uuid.UUID
			receiver uuid.UUID
			record   Record
		)
		if err := rows.Scan(&recID, &sender, &receiver, &record.Amount, &record.CreatedAt); err != nil {
			return nil, err
		}
		record.ID = recID.String()
		record.SenderID = sender.String()
		record.ReceiverID = receiver.String()
		record.CreatedAt = record.CreatedAt.UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

// lockAccounts acquires row locks on both accounts in ascending id order and
// returns the sender's balance as read under the lock. A self-transfer locks
// the single row once.
func lockAccounts(ctx context.Context, tx pgx.Tx, sender, receiver uuid.UUID) (int64, error) {
	const lockQuery = `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`

	first, second := sender, receiver
	if receiver.String() < sender.String() {
		first, second = receiver, sender
	}

	var firstBalance int64
	if err := tx.QueryRow(ctx, lockQuery, first).Scan(&firstBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	if second == first {
		return firstBalance, nil
	}

	var secondBalance int64
	if err := tx.QueryRow(ctx, lockQuery, second).Scan(&secondBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	if first == sender {
		return firstBalance, nil
	}
	return secondBalance, nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		id      uuid.UUID
		account Account
	)
	if err := row.Scan(&id, &account.Username, &account.PasswordHash, &account.Balance, &account.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	account.ID = id.String()
	account.CreatedAt = account.CreatedAt.UTC()
	return account, nil
}
