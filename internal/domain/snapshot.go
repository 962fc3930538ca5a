package domain

// AccountEntry ties a ledger entry to the account it belongs to inside a
// snapshot.
type AccountEntry struct {
	AccountNumber int64
	LedgerEntry
}

// Snapshot is a complete, consistent copy of ledger state for persistence
// sinks. Customers are ordered by id, accounts and entries by account
// opening order, entries within an account in append order.
type Snapshot struct {
	Customers []Customer
	Accounts  []AccountRecord
	Entries   []AccountEntry
}
