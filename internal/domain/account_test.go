package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAccountType(t *testing.T) {
	cases := []struct {
		raw  string
		want AccountType
		ok   bool
	}{
		{"savings", AccountTypeSavings, true},
		{"current", AccountTypeCurrent, true},
		{"  Savings ", AccountTypeSavings, true},
		{"CURRENT", AccountTypeCurrent, true},
		{"checking", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := ParseAccountType(tc.raw)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseAccountType(%q): unexpected error %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseAccountType(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			continue
		}
		if err != ErrInvalidAccountType {
			t.Fatalf("ParseAccountType(%q): expected ErrInvalidAccountType, got %v", tc.raw, err)
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	overdraft := decimal.NewFromInt(100000)

	cases := []struct {
		name    string
		typ     AccountType
		balance int64
		amount  int64
		want    bool
	}{
		{"savings within balance", AccountTypeSavings, 100, 100, true},
		{"savings above balance", AccountTypeSavings, 100, 101, false},
		{"savings zero balance", AccountTypeSavings, 0, 1, false},
		{"current within balance", AccountTypeCurrent, 100, 100, true},
		{"current into overdraft", AccountTypeCurrent, 100, 100100, true},
		{"current beyond overdraft", AccountTypeCurrent, 100, 100101, false},
		{"current already negative", AccountTypeCurrent, -100000, 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.typ.CanWithdraw(decimal.NewFromInt(tc.balance), decimal.NewFromInt(tc.amount), overdraft)
			if got != tc.want {
				t.Fatalf("CanWithdraw(%d, %d) = %v, want %v", tc.balance, tc.amount, got, tc.want)
			}
		})
	}
}

func TestDenialError(t *testing.T) {
	if AccountTypeSavings.DenialError() != ErrInsufficientFunds {
		t.Fatal("savings denial must be insufficient funds")
	}
	if AccountTypeCurrent.DenialError() != ErrOverdraftExceeded {
		t.Fatal("current denial must be overdraft exceeded")
	}
}

func TestEntryDetails(t *testing.T) {
	cases := []struct {
		entry LedgerEntry
		want  string
	}{
		{LedgerEntry{Kind: EntryKindDeposit}, "Self Deposit"},
		{LedgerEntry{Kind: EntryKindDeposit, Counterparty: 10000002}, "Received From 10000002"},
		{LedgerEntry{Kind: EntryKindWithdraw}, "Self Withdrawn"},
		{LedgerEntry{Kind: EntryKindWithdraw, Counterparty: 10000002}, "Transferred to 10000002"},
	}
	for _, tc := range cases {
		if got := tc.entry.Details(); got != tc.want {
			t.Fatalf("Details() = %q, want %q", got, tc.want)
		}
	}
}

func TestEntrySigned(t *testing.T) {
	amount := decimal.NewFromInt(75)
	in := LedgerEntry{Kind: EntryKindDeposit, Amount: amount}
	out := LedgerEntry{Kind: EntryKindWithdraw, Amount: amount}

	if !in.Signed().Equal(amount) {
		t.Fatalf("deposit signed = %s, want %s", in.Signed(), amount)
	}
	if !out.Signed().Equal(amount.Neg()) {
		t.Fatalf("withdraw signed = %s, want %s", out.Signed(), amount.Neg())
	}
}
