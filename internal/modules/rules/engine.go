// Package rules provides the ordered rule engine that labels economic
// events (trades, productions) from the point of view of one agent.
//
// Rule ordering is significant: rules are evaluated in registration order
// and the first non-empty label wins. A classification miss is not an
// error; it yields the Unclassified sentinel.
package rules

import (
	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/operations"
)

// Label is the narrative bucket an event falls into for an observer.
type Label string

// Unclassified is returned when no rule matches or the object kind is
// unsupported.
const Unclassified Label = "unclassified"

// Built-in labels. Template schedules may key variants off these.
const (
	LabelSaleSelfProduced Label = "sale_self_produced"
	LabelSalePurchased    Label = "sale_purchased"
	LabelPurchase         Label = "purchase"
	LabelProduction       Label = "production"
	LabelTransformation   Label = "transformation"
)

// TradeRule labels a transaction for an observing agent, or returns ""
// to pass to the next rule.
type TradeRule func(tx *operations.Transaction, observer *agents.Agent) Label

// ProductionRule labels a production event for an observing agent.
type ProductionRule func(p *operations.Production, observer *agents.Agent) Label

// Engine holds the ordered rule lists per object kind.
type Engine struct {
	tradeRules      []TradeRule
	productionRules []ProductionRule
}

// NewEngine creates an engine with no rules registered.
func NewEngine() *Engine {
	return &Engine{}
}

// AddTradeRule appends a trade rule. Order of registration is preserved.
func (e *Engine) AddTradeRule(r TradeRule) {
	e.tradeRules = append(e.tradeRules, r)
}

// AddProductionRule appends a production rule.
func (e *Engine) AddProductionRule(r ProductionRule) {
	e.productionRules = append(e.productionRules, r)
}

// Classify labels an event for the observing agent. First match wins.
func (e *Engine) Classify(obj any, observer *agents.Agent) Label {
	switch ev := obj.(type) {
	case *operations.Transaction:
		for _, r := range e.tradeRules {
			if label := r(ev, observer); label != "" {
				return label
			}
		}
	case *operations.Production:
		for _, r := range e.productionRules {
			if label := r(ev, observer); label != "" {
				return label
			}
		}
	}
	return Unclassified
}
