package reports

import (
	"testing"

	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	a := agents.New("nct-plant", agents.MarketDomestic, ledger.DefaultChart(), nil, nil)
	require.NoError(t, a.Book.Post("4120", ledger.SideCredit, 100))
	require.NoError(t, a.Book.Post("6120", ledger.SideDebit, 60))

	s := Summarize(a, 0.35)

	assert.Equal(t, "nct-plant", s.Agent)
	assert.Equal(t, "domestic", s.Market)
	assert.InDelta(t, 100.0, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 60.0, s.TotalCost, 1e-9)
	assert.InDelta(t, 40.0, s.GrossProfit, 1e-9)
	assert.InDelta(t, 14.0, s.Tax, 1e-9)
	assert.InDelta(t, 26.0, s.NetProfit, 1e-9)

	// Summarize is a pure read.
	assert.Equal(t, s, Summarize(a, 0.35))
}

func TestSummarize_EmptyBook(t *testing.T) {
	a := agents.New("zf-plant", agents.MarketFreeZone, ledger.DefaultChart(), nil, nil)
	s := Summarize(a, 0.20)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.NetProfit)
	assert.Equal(t, "free_zone", s.Market)
}
