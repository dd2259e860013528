// Package goods provides the goods catalogue and role classification.
//
// A good's role (raw material, intermediate, final, independent) is derived
// from the input-dependency graph declared by the goods themselves and drives
// which price and posting-template rows apply to its trades.
package goods

import (
	"errors"
	"fmt"
)

// ErrDanglingInputReference is returned when a good declares an input that is
// not present in the goods list.
var ErrDanglingInputReference = errors.New("dangling input reference")

// Role classifies a good inside the production graph
type Role string

const (
	RoleRawMaterial  Role = "raw_material"
	RoleIntermediate Role = "intermediate"
	RoleFinal        Role = "final"
	RoleIndependent  Role = "independent"
)

// VATStatus is the value-added-tax treatment of a good
type VATStatus string

const (
	VATTaxed    VATStatus = "taxed"
	VATExempt   VATStatus = "exempt"
	VATExcluded VATStatus = "excluded"
)

// Good describes one tradeable or producible good.
// Inputs maps input good names to the quantity required per unit produced.
// Role is assigned once per model run by Classify.
type Good struct {
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Tariff    float64            `json:"tariff"`
	VATRate   float64            `json:"vat_rate"`
	VATStatus VATStatus          `json:"vat_status"`
	Inputs    map[string]float64 `json:"inputs,omitempty"`
	Role      Role               `json:"role,omitempty"`
}

// EffectiveVATRate returns the rate actually charged for the good.
// Exempt and excluded goods carry a zero rate regardless of VATRate.
func (g *Good) EffectiveVATRate() float64 {
	if g.VATStatus == VATExempt || g.VATStatus == VATExcluded {
		return 0
	}
	return g.VATRate
}

// Catalogue is a name-indexed set of goods.
type Catalogue map[string]*Good

// NewCatalogue indexes goods by name.
func NewCatalogue(goods []*Good) Catalogue {
	c := make(Catalogue, len(goods))
	for _, g := range goods {
		c[g.Name] = g
	}
	return c
}

// Get looks a good up by name.
func (c Catalogue) Get(name string) (*Good, error) {
	g, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown good %q", name)
	}
	return g, nil
}
