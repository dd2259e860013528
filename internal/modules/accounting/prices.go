// Package accounting provides the transfer-price schedule, the posting
// templates and the resolver that turns classified events into balanced
// ledger entries on both agents' books.
package accounting

import (
	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/goods"
)

// PriceKey selects a transfer price row.
type PriceKey struct {
	Seller agents.MarketType `json:"seller"`
	Buyer  agents.MarketType `json:"buyer"`
	Role   goods.Role        `json:"role"`
}

// PriceSchedule maps (seller market, buyer market, good role) to a unit
// price. Misses are not errors: the good's base price applies.
type PriceSchedule map[PriceKey]float64

// UnitPrice resolves the unit price for a trade. A missing row falls back
// to the good's base price by design.
func (s PriceSchedule) UnitPrice(seller, buyer agents.MarketType, g *goods.Good) float64 {
	if price, ok := s[PriceKey{Seller: seller, Buyer: buyer, Role: g.Role}]; ok {
		return price
	}
	return g.Price
}

// DefaultPriceSchedule returns the transfer prices the model was calibrated
// with: raw materials at 20, intermediates at 80, finals at 100, with the
// free-zone entity invoicing finals into the domestic market at 90.
func DefaultPriceSchedule() PriceSchedule {
	s := PriceSchedule{}
	for _, seller := range []agents.MarketType{agents.MarketDomestic, agents.MarketFreeZone} {
		for _, buyer := range []agents.MarketType{agents.MarketDomestic, agents.MarketFreeZone} {
			s[PriceKey{seller, buyer, goods.RoleRawMaterial}] = 20
			s[PriceKey{seller, buyer, goods.RoleIntermediate}] = 80
			s[PriceKey{seller, buyer, goods.RoleFinal}] = 100
		}
	}
	s[PriceKey{agents.MarketFreeZone, agents.MarketDomestic, goods.RoleFinal}] = 90
	return s
}
