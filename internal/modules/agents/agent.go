// Package agents composes a ledger book and an inventory into one simulated
// firm. Domestic and free-zone firms share identical mechanics; the market
// type is a tag that selects which price and template rows apply.
package agents

import (
	"github.com/ftzlab/ftzsim/internal/modules/inventory"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
)

// MarketType designates where an agent operates.
type MarketType string

const (
	MarketDomestic MarketType = "domestic"
	MarketFreeZone MarketType = "free_zone"
)

// Agent is one simulated firm. Agents are created fresh per plan
// evaluation; nothing carries across evaluations.
type Agent struct {
	Name      string
	Market    MarketType
	Book      *ledger.Book
	Inventory *inventory.Inventory

	sells    map[string]bool
	produces map[string]bool
}

// New builds an agent with an empty book (one account per chart entry) and
// an empty inventory.
func New(name string, market MarketType, chart ledger.Chart, sells, produces []string) *Agent {
	a := &Agent{
		Name:      name,
		Market:    market,
		Book:      ledger.NewBook(chart),
		Inventory: inventory.New(),
		sells:     make(map[string]bool, len(sells)),
		produces:  make(map[string]bool, len(produces)),
	}
	for _, g := range sells {
		a.sells[g] = true
	}
	for _, g := range produces {
		a.produces[g] = true
	}
	return a
}

// MarketType reports the agent's market tag.
func (a *Agent) MarketType() MarketType {
	return a.Market
}

// Sells reports whether the agent trades the named good.
func (a *Agent) Sells(good string) bool {
	return a.sells[good]
}

// Produces reports whether the agent manufactures the named good.
func (a *Agent) Produces(good string) bool {
	return a.produces[good]
}

// PurchaseGood records the arrival of purchased stock as a new lot.
// Ledger postings for the purchase happen via the template path, not here.
func (a *Agent) PurchaseGood(good string, quantity, unitCost float64, modality inventory.Modality, origin string) error {
	return a.Inventory.AddLot(good, quantity, unitCost, modality, origin)
}

// SellGood withdraws sold stock per the good's costing method and returns
// the cost of goods sold for the caller to post as a cost-side entry.
func (a *Agent) SellGood(good string, quantity float64, filter inventory.Filter) (float64, error) {
	return a.Inventory.RemoveLot(good, quantity, filter)
}
