package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-ledger/internal/domain"
)

// BaseAccountNumber is the first account number the engine hands out.
const BaseAccountNumber = 10000001

// account is engine-private mutable state. Balance is only ever changed by
// applyDeposit/applyWithdraw, each of which appends exactly one entry and
// re-checks the running-sum invariant under the account mutex.
type account struct {
	mu             sync.Mutex
	number         int64
	accType        domain.AccountType
	overdraftLimit decimal.Decimal
	ownerID        int64
	openedAt       time.Time

	openingBalance decimal.Decimal
	balance        decimal.Decimal
	history        []domain.LedgerEntry
	// signed sum of history; balance must equal openingBalance + sum
	sum       decimal.Decimal
	corrupted bool
}

func (a *account) applyDeposit(amount decimal.Decimal, counterparty int64, now time.Time) (domain.LedgerEntry, error) {
	if a.corrupted {
		return domain.LedgerEntry{}, domain.ErrLedgerCorrupted
	}

	a.balance = a.balance.Add(amount)
	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Kind:         domain.EntryKindDeposit,
		Amount:       amount,
		BalanceAfter: a.balance,
		Counterparty: counterparty,
		Timestamp:    now,
	}
	a.append(entry)
	if err := a.checkInvariant(); err != nil {
		return domain.LedgerEntry{}, err
	}
	return entry, nil
}

func (a *account) applyWithdraw(amount decimal.Decimal, counterparty int64, now time.Time) (domain.LedgerEntry, error) {
	if a.corrupted {
		return domain.LedgerEntry{}, domain.ErrLedgerCorrupted
	}
	if !a.accType.CanWithdraw(a.balance, amount, a.overdraftLimit) {
		return domain.LedgerEntry{}, a.accType.DenialError()
	}

	a.balance = a.balance.Sub(amount)
	entry := domain.LedgerEntry{
		ID:           uuid.New(),
		Kind:         domain.EntryKindWithdraw,
		Amount:       amount,
		BalanceAfter: a.balance,
		Counterparty: counterparty,
		Timestamp:    now,
	}
	a.append(entry)
	if err := a.checkInvariant(); err != nil {
		return domain.LedgerEntry{}, err
	}
	return entry, nil
}

func (a *account) append(entry domain.LedgerEntry) {
	a.history = append(a.history, entry)
	a.sum = a.sum.Add(entry.Signed())
}

func (a *account) checkInvariant() error {
	if !a.balance.Equal(a.openingBalance.Add(a.sum)) {
		a.corrupted = true
		return domain.ErrLedgerCorrupted
	}
	return nil
}

// Engine owns the account table and orchestrates every balance mutation.
// Deposit and withdraw serialize on the single target account; transfer
// locks both accounts in ascending account-number order so two transfers
// moving funds in opposite directions cannot deadlock.
type Engine struct {
	registry *Registry

	mu         sync.RWMutex
	nextNumber int64
	accounts   map[int64]*account
	// account numbers in opening order, for deterministic snapshots
	order []int64

	now func() time.Time
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry:   registry,
		nextNumber: BaseAccountNumber,
		accounts:   make(map[int64]*account),
		now:        time.Now,
	}
}

// Registry exposes the customer registry the engine validates ownership
// against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// OpenAccount allocates the next account number, creates the account with
// the given opening balance and links it to the customer. The opening
// balance is taken as-is; only deposits and withdrawals are sign-checked.
func (e *Engine) OpenAccount(customerID int64, accountType string, initialBalance decimal.Decimal) (int64, error) {
	if _, err := e.registry.Customer(customerID); err != nil {
		return 0, err
	}
	accType, err := domain.ParseAccountType(accountType)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	number := e.nextNumber
	e.nextNumber++
	e.accounts[number] = &account{
		number:         number,
		accType:        accType,
		overdraftLimit: accType.OverdraftLimit(),
		ownerID:        customerID,
		openedAt:       e.now(),
		openingBalance: initialBalance,
		balance:        initialBalance,
	}
	e.order = append(e.order, number)
	e.mu.Unlock()

	if err := e.registry.LinkAccount(customerID, number); err != nil {
		return 0, err
	}
	return number, nil
}

// Deposit credits the account and appends one Deposit entry.
func (e *Engine) Deposit(customerID, accountNumber int64, amount decimal.Decimal) (domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return domain.LedgerEntry{}, domain.ErrInvalidAmount
	}
	acct, err := e.authorizedAccount(customerID, accountNumber)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.applyDeposit(amount, 0, e.now())
}

// Withdraw debits the account under its type's policy and appends one
// Withdraw entry. Policy denials leave the balance unchanged.
func (e *Engine) Withdraw(customerID, accountNumber int64, amount decimal.Decimal) (domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return domain.LedgerEntry{}, domain.ErrInvalidAmount
	}
	acct, err := e.authorizedAccount(customerID, accountNumber)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.applyWithdraw(amount, 0, e.now())
}

// Transfer moves amount between two accounts as one atomic unit: the
// withdraw on from and the deposit on to happen under both account locks,
// each entry tagged with the other account as counterparty. The funds
// pre-check uses the plain balance, so current accounts cannot spend
// overdraft on outbound transfers even though a direct withdrawal would
// allow it.
func (e *Engine) Transfer(customerID, fromNumber, toNumber int64, amount decimal.Decimal) (domain.LedgerEntry, domain.LedgerEntry, error) {
	var none domain.LedgerEntry

	if !amount.IsPositive() {
		return none, none, domain.ErrInvalidAmount
	}
	from, err := e.authorizedAccount(customerID, fromNumber)
	if err != nil {
		return none, none, err
	}
	if fromNumber == toNumber {
		return none, none, domain.ErrSameAccount
	}

	e.mu.RLock()
	to, ok := e.accounts[toNumber]
	e.mu.RUnlock()
	if !ok {
		return none, none, domain.ErrTargetNotFound
	}

	first, second := from, to
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.corrupted || to.corrupted {
		return none, none, domain.ErrLedgerCorrupted
	}
	if from.balance.LessThan(amount) {
		return none, none, domain.ErrInsufficientFunds
	}

	now := e.now()
	out, err := from.applyWithdraw(amount, toNumber, now)
	if err != nil {
		return none, none, err
	}
	in, err := to.applyDeposit(amount, fromNumber, now)
	if err != nil {
		return none, none, err
	}
	return out, in, nil
}

// BalanceOf is an ownership-checked balance read.
func (e *Engine) BalanceOf(customerID, accountNumber int64) (decimal.Decimal, error) {
	acct, err := e.authorizedAccount(customerID, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.balance, nil
}

// TransactionsOf returns a copy of the account's history in append order.
func (e *Engine) TransactionsOf(customerID, accountNumber int64) ([]domain.LedgerEntry, error) {
	acct, err := e.authorizedAccount(customerID, accountNumber)
	if err != nil {
		return nil, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	return append([]domain.LedgerEntry(nil), acct.history...), nil
}

// AccountsOf lists the customer's accounts with current balances, in
// account-opening order.
func (e *Engine) AccountsOf(customerID int64) ([]domain.AccountSummary, error) {
	customer, err := e.registry.Customer(customerID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AccountSummary, 0, len(customer.AccountNumbers))
	for _, number := range customer.AccountNumbers {
		e.mu.RLock()
		acct, ok := e.accounts[number]
		e.mu.RUnlock()
		if !ok {
			continue
		}
		acct.mu.Lock()
		out = append(out, domain.AccountSummary{
			AccountNumber: acct.number,
			Balance:       acct.balance,
		})
		acct.mu.Unlock()
	}
	return out, nil
}

// Snapshot copies the full ledger state for persistence sinks. Each
// account is copied under its own lock, so no record is torn mid-mutation.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.RLock()
	numbers := append([]int64(nil), e.order...)
	accounts := make([]*account, 0, len(numbers))
	for _, number := range numbers {
		accounts = append(accounts, e.accounts[number])
	}
	e.mu.RUnlock()

	snap := domain.Snapshot{Customers: e.registry.Customers()}
	for _, acct := range accounts {
		acct.mu.Lock()
		snap.Accounts = append(snap.Accounts, domain.AccountRecord{
			AccountNumber:  acct.number,
			Type:           acct.accType,
			Balance:        acct.balance,
			OverdraftLimit: acct.overdraftLimit,
			CustomerID:     acct.ownerID,
			OpenedAt:       acct.openedAt,
		})
		for _, entry := range acct.history {
			snap.Entries = append(snap.Entries, domain.AccountEntry{
				AccountNumber: acct.number,
				LedgerEntry:   entry,
			})
		}
		acct.mu.Unlock()
	}
	return snap
}

// authorizedAccount resolves an account number after verifying the
// customer exists and owns it.
func (e *Engine) authorizedAccount(customerID, accountNumber int64) (*account, error) {
	if _, err := e.registry.Customer(customerID); err != nil {
		return nil, err
	}
	if !e.registry.OwnsAccount(customerID, accountNumber) {
		return nil, domain.ErrNotOwner
	}

	e.mu.RLock()
	acct, ok := e.accounts[accountNumber]
	e.mu.RUnlock()
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}
