package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_RecordRejectsNegative(t *testing.T) {
	acc := NewAccount("1105", "Cash and banks", ClassAsset)

	assert.Error(t, acc.Record(-1, 0))
	assert.Error(t, acc.Record(0, -5))
	assert.NoError(t, acc.Record(0, 0))
}

func TestAccount_BalanceThreeOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		movements []Movement
		side      BalanceSide
		net       float64
	}{
		{"debit balance", []Movement{{Debit: 100}, {Credit: 50}}, BalanceDebit, 50},
		{"credit balance", []Movement{{Debit: 30}, {Credit: 100}}, BalanceCredit, 70},
		{"exact zero", []Movement{{Debit: 80}, {Credit: 80}}, BalanceZero, 0},
		{"empty history", nil, BalanceZero, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccount("1105", "Cash and banks", ClassAsset)
			for _, m := range tt.movements {
				require.NoError(t, acc.Record(m.Debit, m.Credit))
			}

			bal := acc.Balance()
			assert.Equal(t, tt.side, bal.Side)
			assert.Equal(t, tt.net, bal.Net)
		})
	}
}

func TestAccount_BalanceIdempotent(t *testing.T) {
	acc := NewAccount("4135", "Revenue from merchandise", ClassRevenue)
	require.NoError(t, acc.Record(0, 100))
	require.NoError(t, acc.Record(25, 0))

	first := acc.Balance()
	second := acc.Balance()
	assert.Equal(t, first, second, "balance must be a pure function of history")
}

func TestAccount_HistoryAppendOnly(t *testing.T) {
	acc := NewAccount("1105", "Cash and banks", ClassAsset)
	require.NoError(t, acc.Record(10, 0))

	// Mutating the returned copy must not affect the account.
	ms := acc.Movements()
	ms[0].Debit = 999
	assert.Equal(t, 10.0, acc.Movements()[0].Debit)
}

func TestBook_PostUnknownAccount(t *testing.T) {
	book := NewBook(DefaultChart())

	err := book.Post("9999", SideDebit, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestBook_PostAndBalance(t *testing.T) {
	book := NewBook(DefaultChart())

	require.NoError(t, book.Post("1105", SideDebit, 100))
	require.NoError(t, book.Post("4135", SideCredit, 100))

	cash, err := book.Account("1105")
	require.NoError(t, err)
	assert.Equal(t, BalanceDebit, cash.Balance().Side)
	assert.Equal(t, 100.0, cash.Balance().Net)
}

func TestBook_OperationalProfit(t *testing.T) {
	book := NewBook(DefaultChart())

	// Sell for 100 with a cost of 60.
	require.NoError(t, book.Post("1105", SideDebit, 100))
	require.NoError(t, book.Post("4135", SideCredit, 100))
	require.NoError(t, book.Post("6135", SideDebit, 60))
	require.NoError(t, book.Post("1435", SideCredit, 60))

	stmt := book.OperationalProfit(0.35)
	assert.InDelta(t, 100.0, stmt.TotalRevenue, 1e-9)
	assert.InDelta(t, 60.0, stmt.TotalCost, 1e-9)
	assert.InDelta(t, 40.0, stmt.GrossProfit, 1e-9)
	assert.InDelta(t, 14.0, stmt.Tax, 1e-9)
	assert.InDelta(t, 26.0, stmt.NetProfit, 1e-9)

	// Pure read: repeated calls agree.
	assert.Equal(t, stmt, book.OperationalProfit(0.35))
}

func TestDefaultChart_ClassesMatchCodePrefix(t *testing.T) {
	for _, e := range DefaultChart().Entries {
		assert.Equal(t, string(e.Code[0]), string(rune('0'+int(e.Class))),
			"account %s class should match its leading digit", e.Code)
	}
}
