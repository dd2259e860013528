package planning

import (
	"fmt"

	"github.com/ftzlab/ftzsim/internal/modules/accounting"
	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/goods"
	"github.com/ftzlab/ftzsim/internal/modules/inventory"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
	"github.com/ftzlab/ftzsim/internal/modules/operations"
)

// ActionKind distinguishes the two decision-to-action shapes.
type ActionKind string

const (
	ActionTrade      ActionKind = "trade"
	ActionProduction ActionKind = "production"
)

// ActionSpec binds one plan index to a concrete trade or production
// definition. Flags follow the 0/1 decision encoding.
type ActionSpec struct {
	Kind            ActionKind                `json:"kind"`
	Seller          string                    `json:"seller,omitempty"`
	Buyer           string                    `json:"buyer,omitempty"`
	Producer        string                    `json:"producer,omitempty"`
	Good            string                    `json:"good"`
	Amount          float64                   `json:"amount"`
	TemporaryExport int                       `json:"temporary_export,omitempty"`
	DomesticateVAT  int                       `json:"domesticate_vat,omitempty"`
	VATStatus       goods.VATStatus           `json:"vat_status,omitempty"`
	Mode            operations.ProductionMode `json:"mode,omitempty"`
}

// LotSpec is one opening inventory lot of an agent.
type LotSpec struct {
	Good     string             `json:"good"`
	Quantity float64            `json:"quantity"`
	UnitCost float64            `json:"unit_cost"`
	Modality inventory.Modality `json:"modality,omitempty"`
	Origin   string             `json:"origin,omitempty"`
}

// AgentSpec describes one of the two firms of a scenario.
type AgentSpec struct {
	Name           string                             `json:"name"`
	Market         agents.MarketType                  `json:"market"`
	TaxRate        float64                            `json:"tax_rate"`
	Sells          []string                           `json:"sells,omitempty"`
	Produces       []string                           `json:"produces,omitempty"`
	CostingMethods map[string]inventory.CostingMethod `json:"costing_methods,omitempty"`
	OpeningLots    []LotSpec                          `json:"opening_lots,omitempty"`
}

// PriceRow overrides one transfer price of the default schedule.
type PriceRow struct {
	Seller    agents.MarketType `json:"seller"`
	Buyer     agents.MarketType `json:"buyer"`
	Role      goods.Role        `json:"role"`
	UnitPrice float64           `json:"unit_price"`
}

// Scenario is the full decision-to-action configuration of one search run:
// goods, the two firms, schedules and the ordered action list. It is
// supplied by the caller and treated as read-only during the run.
type Scenario struct {
	Goods     []*goods.Good `json:"goods"`
	Chart     ledger.Chart  `json:"chart,omitempty"`
	Agents    []AgentSpec   `json:"agents"`
	PriceRows []PriceRow    `json:"price_rows,omitempty"`
	Actions   []ActionSpec  `json:"actions"`

	// Templates override the built-in posting templates. Not part of the
	// JSON surface; API runs always post with the default schedule.
	Templates *accounting.TemplateSchedule `json:"-"`

	catalogue goods.Catalogue
	prices    accounting.PriceSchedule
	prepared  bool
}

// prepare classifies the goods once, applies defaults and validates the
// action list. Idempotent; every Search run calls it first.
func (sc *Scenario) prepare() error {
	if sc.prepared {
		return nil
	}
	if len(sc.Agents) != 2 {
		return fmt.Errorf("scenario needs exactly two agents, got %d", len(sc.Agents))
	}
	if len(sc.Actions) == 0 {
		return fmt.Errorf("scenario has no actions")
	}

	if err := goods.Classify(sc.Goods); err != nil {
		return err
	}
	sc.catalogue = goods.NewCatalogue(sc.Goods)

	if len(sc.Chart.Entries) == 0 {
		sc.Chart = ledger.DefaultChart()
	}
	if sc.Templates == nil {
		sc.Templates = accounting.DefaultTemplates()
	}
	sc.prices = accounting.DefaultPriceSchedule()
	for _, row := range sc.PriceRows {
		sc.prices[accounting.PriceKey{Seller: row.Seller, Buyer: row.Buyer, Role: row.Role}] = row.UnitPrice
	}

	names := make(map[string]bool, len(sc.Agents))
	for _, a := range sc.Agents {
		if a.Name == "" {
			return fmt.Errorf("agent with empty name")
		}
		if a.Market != agents.MarketDomestic && a.Market != agents.MarketFreeZone {
			return fmt.Errorf("agent %s: unknown market %q", a.Name, a.Market)
		}
		names[a.Name] = true
	}

	for i, action := range sc.Actions {
		if _, err := sc.catalogue.Get(action.Good); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		switch action.Kind {
		case ActionTrade:
			if !names[action.Seller] || !names[action.Buyer] {
				return fmt.Errorf("action %d: unknown trade parties %q -> %q", i, action.Seller, action.Buyer)
			}
		case ActionProduction:
			if !names[action.Producer] {
				return fmt.Errorf("action %d: unknown producer %q", i, action.Producer)
			}
		default:
			return fmt.Errorf("action %d: unknown kind %q", i, action.Kind)
		}
	}

	sc.prepared = true
	return nil
}

// newAgents builds a fresh, independent agent pair with the scenario's
// costing methods and opening stock. Called once per plan evaluation.
func (sc *Scenario) newAgents() (map[string]*agents.Agent, error) {
	byName := make(map[string]*agents.Agent, len(sc.Agents))
	for _, spec := range sc.Agents {
		a := agents.New(spec.Name, spec.Market, sc.Chart, spec.Sells, spec.Produces)
		for good, method := range spec.CostingMethods {
			if err := a.Inventory.SetCostingMethod(good, method); err != nil {
				return nil, fmt.Errorf("agent %s: %w", spec.Name, err)
			}
		}
		for _, lot := range spec.OpeningLots {
			if err := a.Inventory.AddLot(lot.Good, lot.Quantity, lot.UnitCost, lot.Modality, lot.Origin); err != nil {
				return nil, fmt.Errorf("agent %s: %w", spec.Name, err)
			}
		}
		byName[spec.Name] = a
	}
	return byName, nil
}

// Default scenario parties.
const (
	AgentDomestic = "nct"
	AgentFreeZone = "zf"
)

// DefaultScenario returns the calibrated two-firm model: the domestic
// firm ships raw material into the free zone, the zone firm refines it
// into an intermediate and sells it back, and the domestic firm finishes
// and sells the final good. Opening stock is generous enough that every
// decision subset is feasible.
func DefaultScenario(domesticRate, zoneRate float64) *Scenario {
	raw := &goods.Good{Name: "raw", Price: 20, VATRate: 0.19, VATStatus: goods.VATTaxed}
	intermediate := &goods.Good{Name: "intermediate", Price: 80, VATRate: 0.19, VATStatus: goods.VATTaxed,
		Inputs: map[string]float64{"raw": 1}}
	final := &goods.Good{Name: "final", Price: 100, VATRate: 0.19, VATStatus: goods.VATTaxed,
		Inputs: map[string]float64{"intermediate": 1}}

	return &Scenario{
		Goods: []*goods.Good{raw, intermediate, final},
		Agents: []AgentSpec{
			{
				Name:     AgentDomestic,
				Market:   agents.MarketDomestic,
				TaxRate:  domesticRate,
				Sells:    []string{"raw", "final"},
				Produces: []string{"final"},
				OpeningLots: []LotSpec{
					{Good: "raw", Quantity: 1000, UnitCost: 10, Modality: inventory.ModalityDefinitive, Origin: inventory.OriginLocal},
					{Good: "intermediate", Quantity: 100, UnitCost: 60, Modality: inventory.ModalityDefinitive, Origin: inventory.OriginLocal},
					{Good: "final", Quantity: 100, UnitCost: 70, Modality: inventory.ModalityDefinitive, Origin: inventory.OriginLocal},
				},
			},
			{
				Name:     AgentFreeZone,
				Market:   agents.MarketFreeZone,
				TaxRate:  zoneRate,
				Sells:    []string{"intermediate"},
				Produces: []string{"intermediate"},
				OpeningLots: []LotSpec{
					{Good: "raw", Quantity: 100, UnitCost: 15, Modality: inventory.ModalityDefinitive, Origin: inventory.OriginLocal},
					{Good: "intermediate", Quantity: 100, UnitCost: 50, Modality: inventory.ModalityDefinitive, Origin: inventory.OriginLocal},
				},
			},
		},
		Actions: []ActionSpec{
			{Kind: ActionTrade, Seller: AgentDomestic, Buyer: AgentFreeZone, Good: "raw", Amount: 10, TemporaryExport: 1},
			{Kind: ActionProduction, Producer: AgentFreeZone, Good: "intermediate", Amount: 10, Mode: operations.ModeProduction},
			{Kind: ActionTrade, Seller: AgentFreeZone, Buyer: AgentDomestic, Good: "intermediate", Amount: 10},
			{Kind: ActionProduction, Producer: AgentDomestic, Good: "final", Amount: 10, Mode: operations.ModeProduction},
			{Kind: ActionTrade, Seller: AgentDomestic, Buyer: AgentFreeZone, Good: "final", Amount: 10},
		},
	}
}
