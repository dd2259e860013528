package ledger

import "fmt"

// Book owns the accounts of one agent, keyed by account code.
// It is built once from a chart of accounts and never grows afterwards:
// a posting that references a missing code is a data error, not a trigger
// to create the account.
type Book struct {
	accounts map[string]*Account
	codes    []string // insertion order of the chart, for stable iteration
}

// NewBook creates a book with one empty account per chart entry.
func NewBook(chart Chart) *Book {
	b := &Book{accounts: make(map[string]*Account, len(chart.Entries))}
	for _, e := range chart.Entries {
		b.accounts[e.Code] = NewAccount(e.Code, e.Name, e.Class)
		b.codes = append(b.codes, e.Code)
	}
	return b
}

// Account looks up an account by code.
func (b *Book) Account(code string) (*Account, error) {
	acc, ok := b.accounts[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
	}
	return acc, nil
}

// Post records an amount on one side of the account with the given code.
func (b *Book) Post(code string, side Side, amount float64) error {
	acc, err := b.Account(code)
	if err != nil {
		return err
	}
	if side == SideDebit {
		return acc.Record(amount, 0)
	}
	return acc.Record(0, amount)
}

// Codes returns the account codes in chart order.
func (b *Book) Codes() []string {
	out := make([]string, len(b.codes))
	copy(out, b.codes)
	return out
}

// ProfitStatement is the operational result of a book at one tax rate.
type ProfitStatement struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	GrossProfit  float64 `json:"gross_profit"`
	Tax          float64 `json:"tax"`
	NetProfit    float64 `json:"net_profit"`
}

// OperationalProfit sums revenue-class credit balances minus cost-class
// debit balances and applies the tax rate to the gross result. It is a pure
// read of account state.
func (b *Book) OperationalProfit(taxRate float64) ProfitStatement {
	var revenue, cost float64
	for _, code := range b.codes {
		acc := b.accounts[code]
		bal := acc.Balance()
		switch acc.Class {
		case ClassRevenue:
			if bal.Side == BalanceCredit {
				revenue += bal.Net
			} else if bal.Side == BalanceDebit {
				revenue -= bal.Net
			}
		case ClassExpense, ClassCostOfSale, ClassProduction:
			if bal.Side == BalanceDebit {
				cost += bal.Net
			} else if bal.Side == BalanceCredit {
				cost -= bal.Net
			}
		}
	}

	gross := revenue - cost
	tax := gross * taxRate

	return ProfitStatement{
		TotalRevenue: revenue,
		TotalCost:    cost,
		GrossProfit:  gross,
		Tax:          tax,
		NetProfit:    gross - tax,
	}
}
