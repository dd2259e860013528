package accounting

import (
	"fmt"

	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/goods"
	"github.com/ftzlab/ftzsim/internal/modules/inventory"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
	"github.com/ftzlab/ftzsim/internal/modules/operations"
	"github.com/ftzlab/ftzsim/internal/modules/rules"
	"github.com/rs/zerolog"
)

// Resolver classifies an event, resolves its template and price, and posts
// the resulting ledger and inventory effects to the participating agents.
// Seller/producer ledger is always posted before the buyer's.
type Resolver struct {
	prices    PriceSchedule
	templates *TemplateSchedule
	engine    *rules.Engine
	log       zerolog.Logger
}

// NewResolver creates a resolver over explicit schedules. No process-wide
// state is involved; distinct resolvers are fully independent.
func NewResolver(prices PriceSchedule, templates *TemplateSchedule, engine *rules.Engine, log zerolog.Logger) *Resolver {
	return &Resolver{
		prices:    prices,
		templates: templates,
		engine:    engine,
		log:       log.With().Str("component", "accounting_resolver").Logger(),
	}
}

// PostTransaction executes one trade: the seller's stock is withdrawn at
// its carrying cost, both books receive their template postings, and the
// buyer's inventory gains a lot at the transfer price.
func (r *Resolver) PostTransaction(tx *operations.Transaction, seller, buyer *agents.Agent) error {
	if tx.Seller != seller.Name || tx.Buyer != buyer.Name {
		return fmt.Errorf("transaction parties %q->%q do not match agents %q->%q",
			tx.Seller, tx.Buyer, seller.Name, buyer.Name)
	}

	unitPrice := r.prices.UnitPrice(seller.MarketType(), buyer.MarketType(), tx.Good)
	totalPrice := unitPrice * tx.Amount
	vat := r.vatAmount(tx, totalPrice)

	cogs, err := seller.SellGood(tx.Good.Name, tx.Amount, inventory.Filter{})
	if err != nil {
		return fmt.Errorf("seller %s: %w", seller.Name, err)
	}

	values := Values{Price: totalPrice, Cost: cogs, VATAmount: vat}

	sellerLabel := r.engine.Classify(tx, seller)
	sellerTpl, err := r.operationTemplate(tx.Good.Role, sellerLabel, OpSale)
	if err != nil {
		return err
	}
	if err := r.postTemplate(seller.Book, sellerTpl, values); err != nil {
		return fmt.Errorf("seller %s: %w", seller.Name, err)
	}

	buyerLabel := r.engine.Classify(tx, buyer)
	buyerTpl, err := r.operationTemplate(tx.Good.Role, buyerLabel, OpPurchase)
	if err != nil {
		return err
	}
	if err := r.postTemplate(buyer.Book, buyerTpl, values); err != nil {
		return fmt.Errorf("buyer %s: %w", buyer.Name, err)
	}

	modality := inventory.ModalityDefinitive
	if tx.IsTemporaryExport {
		modality = inventory.ModalityTemporary
	}
	if err := buyer.PurchaseGood(tx.Good.Name, tx.Amount, unitPrice, modality, seller.Name); err != nil {
		return fmt.Errorf("buyer %s: %w", buyer.Name, err)
	}

	r.log.Debug().
		Str("good", tx.Good.Name).
		Str("seller", seller.Name).
		Str("buyer", buyer.Name).
		Float64("price", totalPrice).
		Float64("cogs", cogs).
		Float64("vat", vat).
		Str("seller_label", string(sellerLabel)).
		Msg("Posted transaction")

	return nil
}

// PostProduction executes one manufacturing event: the producer consumes
// the declared inputs at carrying cost and gains a lot of the produced
// good at that cost.
func (r *Resolver) PostProduction(p *operations.Production, producer *agents.Agent) error {
	if p.Producer != producer.Name {
		return fmt.Errorf("production by %q does not match agent %q", p.Producer, producer.Name)
	}

	var cost float64
	for inputName, perUnit := range p.Good.Inputs {
		consumed, err := producer.Inventory.RemoveLot(inputName, perUnit*p.Amount, inventory.Filter{})
		if err != nil {
			return fmt.Errorf("producer %s consuming %s: %w", producer.Name, inputName, err)
		}
		cost += consumed
	}

	label := r.engine.Classify(p, producer)
	tpl, err := r.operationTemplate(p.Good.Role, label, OpProduction)
	if err != nil {
		return err
	}
	if err := r.postTemplate(producer.Book, tpl, Values{Cost: cost}); err != nil {
		return fmt.Errorf("producer %s: %w", producer.Name, err)
	}

	unitCost := 0.0
	if p.Amount > 0 {
		unitCost = cost / p.Amount
	}
	if err := producer.PurchaseGood(p.Good.Name, p.Amount, unitCost, inventory.ModalityDefinitive, inventory.OriginLocal); err != nil {
		return fmt.Errorf("producer %s: %w", producer.Name, err)
	}

	r.log.Debug().
		Str("good", p.Good.Name).
		Str("producer", producer.Name).
		Float64("amount", p.Amount).
		Float64("cost", cost).
		Msg("Posted production")

	return nil
}

// operationTemplate prefers a label-specific template bucket over the base
// operation. Missing both is a data error.
func (r *Resolver) operationTemplate(role goods.Role, label rules.Label, baseOp string) (Template, error) {
	if label != rules.Unclassified && r.templates.Has(role, string(label)) {
		return r.templates.Lookup(role, string(label))
	}
	return r.templates.Lookup(role, baseOp)
}

// postTemplate substitutes the selectors and posts each line. The template
// designer guarantees balance; the resolver just posts both sides.
func (r *Resolver) postTemplate(book *ledger.Book, tpl Template, v Values) error {
	for _, line := range tpl.Debit {
		amount, err := v.Resolve(line.Selector)
		if err != nil {
			return err
		}
		if err := book.Post(line.Account, ledger.SideDebit, amount); err != nil {
			return err
		}
	}
	for _, line := range tpl.Credit {
		amount, err := v.Resolve(line.Selector)
		if err != nil {
			return err
		}
		if err := book.Post(line.Account, ledger.SideCredit, amount); err != nil {
			return err
		}
	}
	return nil
}

// vatAmount applies the transaction's VAT status. Temporary exports
// suspend VAT unless the parties opt to domesticate it.
func (r *Resolver) vatAmount(tx *operations.Transaction, totalPrice float64) float64 {
	if tx.VATStatus != goods.VATTaxed {
		return 0
	}
	if tx.IsTemporaryExport && !tx.DomesticateVAT {
		return 0
	}
	return totalPrice * tx.Good.VATRate
}
