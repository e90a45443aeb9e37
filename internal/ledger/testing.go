package ledger

// SeedBalance is a test helper that sets an account balance directly when
// using the in-memory store.
func SeedBalance(s Store, id string, amount int64) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		account := mem.accounts[id]
		account.Balance = amount
		mem.accounts[id] = account
	}
}

// FailNextTransfer arms a one-shot commit failure on the in-memory store. The
// next Transfer call aborts with err after validation, leaving balances and
// the ledger untouched.
func FailNextTransfer(s Store, err error) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.commitErr = err
	}
}
