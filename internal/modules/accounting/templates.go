package accounting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ftzlab/ftzsim/internal/modules/goods"
)

// ErrNoTemplate is returned when no posting template exists for a good
// role / operation pair.
var ErrNoTemplate = errors.New("no template for good role/operation")

// Canonical operation keys. Lookups are exact-match on trimmed keys;
// schedules may additionally carry label-specific buckets (for example
// "sale_self_produced") that refine the base operation.
const (
	OpPurchase   = "purchase"
	OpSale       = "sale"
	OpProduction = "production"
)

// ValueSelector names the concrete value substituted into a template line.
type ValueSelector string

const (
	SelectorPrice        ValueSelector = "price"
	SelectorCost         ValueSelector = "cost"
	SelectorVATAmount    ValueSelector = "vat_amount"
	SelectorPriceWithVAT ValueSelector = "price_with_vat"
)

// TemplateLine posts one selector's value to one account.
type TemplateLine struct {
	Account  string        `json:"account"`
	Selector ValueSelector `json:"selector"`
}

// Template is the debit and credit sides of one balanced operation.
// The template designer must keep the two sides equal for every value
// assignment; the engine does not auto-balance.
type Template struct {
	Debit  []TemplateLine `json:"debit"`
	Credit []TemplateLine `json:"credit"`
}

type templateKey struct {
	role      goods.Role
	operation string
}

// TemplateSchedule maps (good role, operation) to a posting template.
type TemplateSchedule struct {
	templates map[templateKey]Template
}

// NewTemplateSchedule creates an empty schedule.
func NewTemplateSchedule() *TemplateSchedule {
	return &TemplateSchedule{templates: make(map[templateKey]Template)}
}

// Add registers a template. Operation keys are trimmed; registering the
// same key twice overwrites.
func (s *TemplateSchedule) Add(role goods.Role, operation string, tpl Template) {
	s.templates[templateKey{role: role, operation: strings.TrimSpace(operation)}] = tpl
}

// Lookup finds the template for a role/operation pair, exact-match.
func (s *TemplateSchedule) Lookup(role goods.Role, operation string) (Template, error) {
	tpl, ok := s.templates[templateKey{role: role, operation: strings.TrimSpace(operation)}]
	if !ok {
		return Template{}, fmt.Errorf("%w: role=%s operation=%s", ErrNoTemplate, role, operation)
	}
	return tpl, nil
}

// Has reports whether a template is registered for the pair.
func (s *TemplateSchedule) Has(role goods.Role, operation string) bool {
	_, ok := s.templates[templateKey{role: role, operation: strings.TrimSpace(operation)}]
	return ok
}

// Each visits every registered template.
func (s *TemplateSchedule) Each(fn func(role goods.Role, operation string, tpl Template)) {
	for k, tpl := range s.templates {
		fn(k.role, k.operation, tpl)
	}
}

// Values carries the concrete figures of one resolved operation.
type Values struct {
	Price     float64 // total price, excluding VAT
	Cost      float64 // cost of goods sold / consumed
	VATAmount float64
}

// Resolve substitutes a selector with its concrete value.
func (v Values) Resolve(sel ValueSelector) (float64, error) {
	switch sel {
	case SelectorPrice:
		return v.Price, nil
	case SelectorCost:
		return v.Cost, nil
	case SelectorVATAmount:
		return v.VATAmount, nil
	case SelectorPriceWithVAT:
		return v.Price + v.VATAmount, nil
	default:
		return 0, fmt.Errorf("unknown value selector %q", sel)
	}
}

// DefaultTemplates returns the built-in posting templates against the
// default chart. Self-produced final goods flow through the manufacturing
// accounts (4120/6120/1430); purchased goods through the merchandise
// accounts (4135/6135/1435).
func DefaultTemplates() *TemplateSchedule {
	s := NewTemplateSchedule()

	merchandiseSale := func(inventoryAccount string) Template {
		return Template{
			Debit: []TemplateLine{
				{Account: "1105", Selector: SelectorPriceWithVAT},
				{Account: "6135", Selector: SelectorCost},
			},
			Credit: []TemplateLine{
				{Account: "4135", Selector: SelectorPrice},
				{Account: "2408", Selector: SelectorVATAmount},
				{Account: inventoryAccount, Selector: SelectorCost},
			},
		}
	}
	purchase := func(inventoryAccount string) Template {
		return Template{
			Debit: []TemplateLine{
				{Account: inventoryAccount, Selector: SelectorPrice},
				{Account: "2408", Selector: SelectorVATAmount},
			},
			Credit: []TemplateLine{
				{Account: "1105", Selector: SelectorPriceWithVAT},
			},
		}
	}
	production := func(outputAccount, inputAccount string) Template {
		return Template{
			Debit: []TemplateLine{
				{Account: "71", Selector: SelectorCost},
				{Account: outputAccount, Selector: SelectorCost},
			},
			Credit: []TemplateLine{
				{Account: inputAccount, Selector: SelectorCost},
				{Account: "71", Selector: SelectorCost},
			},
		}
	}

	s.Add(goods.RoleRawMaterial, OpPurchase, purchase("1405"))
	s.Add(goods.RoleRawMaterial, OpSale, merchandiseSale("1405"))

	s.Add(goods.RoleIntermediate, OpPurchase, purchase("1410"))
	s.Add(goods.RoleIntermediate, OpSale, merchandiseSale("1410"))
	s.Add(goods.RoleIntermediate, OpProduction, production("1410", "1405"))

	s.Add(goods.RoleFinal, OpPurchase, purchase("1435"))
	s.Add(goods.RoleFinal, "sale_self_produced", Template{
		Debit: []TemplateLine{
			{Account: "1105", Selector: SelectorPriceWithVAT},
			{Account: "6120", Selector: SelectorCost},
		},
		Credit: []TemplateLine{
			{Account: "4120", Selector: SelectorPrice},
			{Account: "2408", Selector: SelectorVATAmount},
			{Account: "1430", Selector: SelectorCost},
		},
	})
	s.Add(goods.RoleFinal, "sale_purchased", merchandiseSale("1435"))
	s.Add(goods.RoleFinal, OpSale, merchandiseSale("1435"))
	s.Add(goods.RoleFinal, OpProduction, production("1430", "1410"))

	s.Add(goods.RoleIndependent, OpPurchase, purchase("1435"))
	s.Add(goods.RoleIndependent, OpSale, merchandiseSale("1435"))

	return s
}
