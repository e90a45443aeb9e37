package ledger

import "time"

// Account holds a wallet owner's identity and committed balance. Balance is
// denominated in the smallest currency unit and never goes below zero.
type Account struct {
	ID           string
	Username     string
	PasswordHash []byte
	Balance      int64
	CreatedAt    time.Time
}

// Record is an immutable ledger entry describing one committed transfer.
// A record exists iff the transfer committed; rejected attempts leave no trace.
type Record struct {
	ID         string
	SenderID   string
	ReceiverID string
	Amount     int64
	CreatedAt  time.Time
}
