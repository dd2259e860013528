package rules

import (
	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/operations"
)

// DefaultEngine returns an engine loaded with the built-in classification
// rules in their canonical order. Self-produced sale outranks purchased
// sale, which outranks the generic buyer rule.
func DefaultEngine() *Engine {
	e := NewEngine()
	e.AddTradeRule(RuleSaleOfSelfProducedGood)
	e.AddTradeRule(RuleSaleOfPurchasedGood)
	e.AddTradeRule(RulePurchase)
	e.AddProductionRule(RuleProductionMode)
	return e
}

// RuleSaleOfSelfProducedGood matches when the observer is the seller and
// manufactures the traded good itself.
func RuleSaleOfSelfProducedGood(tx *operations.Transaction, observer *agents.Agent) Label {
	if tx.Seller == observer.Name && observer.Produces(tx.Good.Name) {
		return LabelSaleSelfProduced
	}
	return ""
}

// RuleSaleOfPurchasedGood matches when the observer is the seller of a good
// it trades but does not manufacture.
func RuleSaleOfPurchasedGood(tx *operations.Transaction, observer *agents.Agent) Label {
	if tx.Seller == observer.Name && !observer.Produces(tx.Good.Name) {
		return LabelSalePurchased
	}
	return ""
}

// RulePurchase matches when the observer is the buyer.
func RulePurchase(tx *operations.Transaction, observer *agents.Agent) Label {
	if tx.Buyer == observer.Name {
		return LabelPurchase
	}
	return ""
}

// RuleProductionMode labels a production event by its mode when the
// observer is the producer.
func RuleProductionMode(p *operations.Production, observer *agents.Agent) Label {
	if p.Producer != observer.Name {
		return ""
	}
	if p.Mode == operations.ModeTransformation {
		return LabelTransformation
	}
	return LabelProduction
}
