// Package ledger provides the double-entry book of accounts for one agent.
//
// Accounts are append-only: movements are never edited or removed, and the
// balance is always a pure function of the full movement history.
package ledger

import (
	"errors"
	"fmt"
)

// ErrUnknownAccount is returned when a posting references an account code
// that does not exist in the book.
var ErrUnknownAccount = errors.New("unknown account")

// AccountClass is the top-level category of an account, following the
// single-digit class prefix of the chart of accounts.
type AccountClass int

const (
	ClassAsset      AccountClass = 1
	ClassLiability  AccountClass = 2
	ClassEquity     AccountClass = 3
	ClassRevenue    AccountClass = 4
	ClassExpense    AccountClass = 5
	ClassCostOfSale AccountClass = 6
	ClassProduction AccountClass = 7
)

// Side selects the debit or credit column of a posting.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// BalanceSide distinguishes the three possible outcomes of balancing an
// account. A zero balance is its own outcome, not a degenerate debit or
// credit balance.
type BalanceSide string

const (
	BalanceDebit  BalanceSide = "debit"
	BalanceCredit BalanceSide = "credit"
	BalanceZero   BalanceSide = "zero"
)

// Movement is one debit/credit pair in an account's history.
type Movement struct {
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// Balance is the result of totalling an account's movement history.
// Net is always non-negative; Side says which column it sits on.
type Balance struct {
	TotalDebit  float64     `json:"total_debit"`
	TotalCredit float64     `json:"total_credit"`
	Net         float64     `json:"net"`
	Side        BalanceSide `json:"side"`
}

// Account is a single ledger line with an append-only movement history.
type Account struct {
	Code      string
	Name      string
	Class     AccountClass
	movements []Movement
}

// NewAccount creates an empty account.
func NewAccount(code, name string, class AccountClass) *Account {
	return &Account{Code: code, Name: name, Class: class}
}

// Record appends a movement. Both columns must be non-negative.
func (a *Account) Record(debit, credit float64) error {
	if debit < 0 || credit < 0 {
		return fmt.Errorf("account %s: movement columns must be non-negative (debit=%v credit=%v)",
			a.Code, debit, credit)
	}
	a.movements = append(a.movements, Movement{Debit: debit, Credit: credit})
	return nil
}

// Movements returns a copy of the movement history in insertion order.
func (a *Account) Movements() []Movement {
	out := make([]Movement, len(a.movements))
	copy(out, a.movements)
	return out
}

// Balance totals the movement history. It is a pure read: calling it
// repeatedly without intervening Record calls yields identical results.
func (a *Account) Balance() Balance {
	var totalDebit, totalCredit float64
	for _, m := range a.movements {
		totalDebit += m.Debit
		totalCredit += m.Credit
	}

	net := totalCredit - totalDebit
	b := Balance{TotalDebit: totalDebit, TotalCredit: totalCredit}

	switch {
	case net > 0:
		b.Side = BalanceCredit
		b.Net = net
	case net < 0:
		b.Side = BalanceDebit
		b.Net = -net
	default:
		b.Side = BalanceZero
		b.Net = 0
	}

	return b
}
