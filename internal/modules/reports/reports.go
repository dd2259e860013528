// Package reports turns an agent's book into the financial statement
// summary returned by the search API. Rendering is left to callers.
package reports

import (
	"github.com/ftzlab/ftzsim/internal/modules/agents"
)

// Summary is one agent's after-tax statement for a single evaluation.
type Summary struct {
	Agent        string  `json:"agent"`
	Market       string  `json:"market"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	GrossProfit  float64 `json:"gross_profit"`
	Tax          float64 `json:"tax"`
	NetProfit    float64 `json:"net_profit"`
}

// Summarize reads the agent's operational profit at the given tax rate.
// Pure read; calling it twice without intervening postings yields the
// same figures.
func Summarize(a *agents.Agent, taxRate float64) Summary {
	stmt := a.Book.OperationalProfit(taxRate)
	return Summary{
		Agent:        a.Name,
		Market:       string(a.MarketType()),
		TotalRevenue: stmt.TotalRevenue,
		TotalCost:    stmt.TotalCost,
		GrossProfit:  stmt.GrossProfit,
		Tax:          stmt.Tax,
		NetProfit:    stmt.NetProfit,
	}
}
