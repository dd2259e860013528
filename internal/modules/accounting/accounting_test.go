package accounting

import (
	"testing"

	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/goods"
	"github.com/ftzlab/ftzsim/internal/modules/inventory"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
	"github.com/ftzlab/ftzsim/internal/modules/operations"
	"github.com/ftzlab/ftzsim/internal/modules/rules"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceSchedule_FallbackToBasePrice(t *testing.T) {
	s := PriceSchedule{
		{agents.MarketDomestic, agents.MarketFreeZone, goods.RoleRawMaterial}: 25,
	}
	ore := &goods.Good{Name: "ore", Price: 20, Role: goods.RoleRawMaterial}

	assert.Equal(t, 25.0, s.UnitPrice(agents.MarketDomestic, agents.MarketFreeZone, ore))
	// No row for this direction: base price applies, never an error.
	assert.Equal(t, 20.0, s.UnitPrice(agents.MarketFreeZone, agents.MarketDomestic, ore))
}

func TestTemplateSchedule_TrimmedExactMatchKeys(t *testing.T) {
	s := NewTemplateSchedule()
	s.Add(goods.RoleRawMaterial, "  sale ", Template{})

	assert.True(t, s.Has(goods.RoleRawMaterial, "sale"))
	assert.True(t, s.Has(goods.RoleRawMaterial, " sale"))
	assert.False(t, s.Has(goods.RoleRawMaterial, "sales"))

	_, err := s.Lookup(goods.RoleRawMaterial, "purchase")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

// Every built-in template must post equal debit and credit totals for any
// value assignment satisfying price_with_vat = price + vat_amount.
func TestDefaultTemplates_AllBalanced(t *testing.T) {
	values := Values{Price: 100, Cost: 37, VATAmount: 19}

	sum := func(lines []TemplateLine) float64 {
		var total float64
		for _, line := range lines {
			v, err := values.Resolve(line.Selector)
			require.NoError(t, err)
			total += v
		}
		return total
	}

	count := 0
	DefaultTemplates().Each(func(role goods.Role, operation string, tpl Template) {
		count++
		assert.InDelta(t, sum(tpl.Debit), sum(tpl.Credit), 1e-9,
			"template %s/%s is unbalanced", role, operation)
	})
	assert.Greater(t, count, 0)
}

func TestDefaultTemplates_AccountsExistInDefaultChart(t *testing.T) {
	book := ledger.NewBook(ledger.DefaultChart())

	DefaultTemplates().Each(func(role goods.Role, operation string, tpl Template) {
		for _, line := range append(tpl.Debit, tpl.Credit...) {
			_, err := book.Account(line.Account)
			assert.NoError(t, err, "template %s/%s references missing account %s", role, operation, line.Account)
		}
	})
}

func newTestResolver() *Resolver {
	return NewResolver(DefaultPriceSchedule(), DefaultTemplates(), rules.DefaultEngine(), zerolog.Nop())
}

func sellerAndBuyer(t *testing.T, g *goods.Good) (*agents.Agent, *agents.Agent) {
	t.Helper()
	chart := ledger.DefaultChart()
	seller := agents.New("nct-plant", agents.MarketDomestic, chart, []string{g.Name}, nil)
	buyer := agents.New("zf-plant", agents.MarketFreeZone, chart, nil, nil)
	return seller, buyer
}

func TestPostTransaction_BalancedBooks(t *testing.T) {
	ore := &goods.Good{Name: "ore", Price: 20, VATRate: 0.19, VATStatus: goods.VATTaxed, Role: goods.RoleRawMaterial}
	seller, buyer := sellerAndBuyer(t, ore)
	require.NoError(t, seller.PurchaseGood("ore", 10, 12, inventory.ModalityDefinitive, inventory.OriginLocal))

	tx, err := operations.NewTransaction(seller.Name, buyer.Name, ore, 5, 0, 0, "")
	require.NoError(t, err)

	require.NoError(t, newTestResolver().PostTransaction(tx, seller, buyer))

	// Each book individually balances: total debits equal total credits.
	for _, book := range []*ledger.Book{seller.Book, buyer.Book} {
		var debits, credits float64
		for _, code := range book.Codes() {
			acc, err := book.Account(code)
			require.NoError(t, err)
			bal := acc.Balance()
			debits += bal.TotalDebit
			credits += bal.TotalCredit
		}
		assert.InDelta(t, debits, credits, 1e-9)
	}

	// Transfer price row: domestic -> free-zone raw material at 20/unit.
	stmt := seller.Book.OperationalProfit(0)
	assert.InDelta(t, 100.0, stmt.TotalRevenue, 1e-9) // 5 x 20
	assert.InDelta(t, 60.0, stmt.TotalCost, 1e-9)     // 5 x 12 carrying cost

	// Buyer stock arrived at the transfer price from the seller.
	lots := buyer.Inventory.Lots("ore")
	require.Len(t, lots, 1)
	assert.InDelta(t, 5.0, lots[0].Quantity, 1e-9)
	assert.InDelta(t, 20.0, lots[0].UnitCost, 1e-9)
	assert.Equal(t, seller.Name, lots[0].Origin)
}

func TestPostTransaction_TemporaryExportSuspendsVAT(t *testing.T) {
	ore := &goods.Good{Name: "ore", Price: 20, VATRate: 0.19, VATStatus: goods.VATTaxed, Role: goods.RoleRawMaterial}
	seller, buyer := sellerAndBuyer(t, ore)
	require.NoError(t, seller.PurchaseGood("ore", 10, 12, inventory.ModalityDefinitive, inventory.OriginLocal))

	tx, err := operations.NewTransaction(seller.Name, buyer.Name, ore, 5, 1, 0, "")
	require.NoError(t, err)
	require.NoError(t, newTestResolver().PostTransaction(tx, seller, buyer))

	vatAcc, err := seller.Book.Account("2408")
	require.NoError(t, err)
	assert.Equal(t, ledger.BalanceZero, vatAcc.Balance().Side)

	// Temporarily exported stock is tagged as such on arrival.
	lots := buyer.Inventory.Lots("ore")
	require.Len(t, lots, 1)
	assert.Equal(t, inventory.ModalityTemporary, lots[0].Modality)
}

func TestPostTransaction_DomesticatedVATCharges(t *testing.T) {
	ore := &goods.Good{Name: "ore", Price: 20, VATRate: 0.19, VATStatus: goods.VATTaxed, Role: goods.RoleRawMaterial}
	seller, buyer := sellerAndBuyer(t, ore)
	require.NoError(t, seller.PurchaseGood("ore", 10, 12, inventory.ModalityDefinitive, inventory.OriginLocal))

	tx, err := operations.NewTransaction(seller.Name, buyer.Name, ore, 5, 1, 1, "")
	require.NoError(t, err)
	require.NoError(t, newTestResolver().PostTransaction(tx, seller, buyer))

	vatAcc, err := seller.Book.Account("2408")
	require.NoError(t, err)
	assert.InDelta(t, 19.0, vatAcc.Balance().Net, 1e-9) // 100 x 0.19
}

func TestPostTransaction_SelfProducedFinalUsesManufacturingBucket(t *testing.T) {
	widget := &goods.Good{Name: "widget", Price: 100, VATRate: 0.19, VATStatus: goods.VATTaxed,
		Role: goods.RoleFinal, Inputs: map[string]float64{"ingot": 1}}
	chart := ledger.DefaultChart()
	producer := agents.New("nct-plant", agents.MarketDomestic, chart, []string{"widget"}, []string{"widget"})
	buyer := agents.New("zf-plant", agents.MarketFreeZone, chart, nil, nil)
	require.NoError(t, producer.PurchaseGood("widget", 3, 55, inventory.ModalityDefinitive, inventory.OriginLocal))

	tx, err := operations.NewTransaction(producer.Name, buyer.Name, widget, 2, 0, 0, "")
	require.NoError(t, err)
	require.NoError(t, newTestResolver().PostTransaction(tx, producer, buyer))

	revenue, err := producer.Book.Account("4120")
	require.NoError(t, err)
	assert.InDelta(t, 200.0, revenue.Balance().Net, 1e-9)

	merchandiseRevenue, err := producer.Book.Account("4135")
	require.NoError(t, err)
	assert.Equal(t, ledger.BalanceZero, merchandiseRevenue.Balance().Side)
}

func TestPostTransaction_InsufficientStockAborts(t *testing.T) {
	ore := &goods.Good{Name: "ore", Price: 20, VATStatus: goods.VATTaxed, Role: goods.RoleRawMaterial}
	seller, buyer := sellerAndBuyer(t, ore)

	tx, err := operations.NewTransaction(seller.Name, buyer.Name, ore, 5, 0, 0, "")
	require.NoError(t, err)

	err = newTestResolver().PostTransaction(tx, seller, buyer)
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrInsufficientInventory)

	// Nothing was posted to either book.
	for _, code := range seller.Book.Codes() {
		acc, aerr := seller.Book.Account(code)
		require.NoError(t, aerr)
		assert.Equal(t, ledger.BalanceZero, acc.Balance().Side)
	}
}

func TestPostTransaction_MissingTemplate(t *testing.T) {
	exotic := &goods.Good{Name: "exotic", Price: 10, Role: goods.RoleIndependent, VATStatus: goods.VATExcluded}
	seller, buyer := sellerAndBuyer(t, exotic)
	require.NoError(t, seller.PurchaseGood("exotic", 5, 4, inventory.ModalityDefinitive, inventory.OriginLocal))

	// A schedule with no independent-role rows at all.
	s := NewTemplateSchedule()
	resolver := NewResolver(DefaultPriceSchedule(), s, rules.DefaultEngine(), zerolog.Nop())

	tx, err := operations.NewTransaction(seller.Name, buyer.Name, exotic, 1, 0, 0, "")
	require.NoError(t, err)

	err = resolver.PostTransaction(tx, seller, buyer)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestPostProduction_ConsumesInputsAndAddsOutput(t *testing.T) {
	ingot := &goods.Good{Name: "ingot", Price: 80, Role: goods.RoleIntermediate,
		Inputs: map[string]float64{"ore": 2}}
	chart := ledger.DefaultChart()
	producer := agents.New("zf-plant", agents.MarketFreeZone, chart, nil, []string{"ingot"})
	require.NoError(t, producer.PurchaseGood("ore", 10, 20, inventory.ModalityDefinitive, "nct-plant"))

	p, err := operations.NewProduction(producer.Name, ingot, 4, nil, operations.ModeProduction)
	require.NoError(t, err)
	require.NoError(t, newTestResolver().PostProduction(p, producer))

	// 4 units x 2 ore each at cost 20 = 160 consumed.
	assert.InDelta(t, 2.0, producer.Inventory.TotalQuantity("ore", inventory.Filter{}), 1e-9)

	lots := producer.Inventory.Lots("ingot")
	require.Len(t, lots, 1)
	assert.InDelta(t, 4.0, lots[0].Quantity, 1e-9)
	assert.InDelta(t, 40.0, lots[0].UnitCost, 1e-9) // 160 / 4

	wip, err := producer.Book.Account("1410")
	require.NoError(t, err)
	assert.InDelta(t, 160.0, wip.Balance().Net, 1e-9)
	assert.Equal(t, ledger.BalanceDebit, wip.Balance().Side)
}

func TestPostProduction_InsufficientInputsAbort(t *testing.T) {
	ingot := &goods.Good{Name: "ingot", Role: goods.RoleIntermediate, Inputs: map[string]float64{"ore": 2}}
	producer := agents.New("zf-plant", agents.MarketFreeZone, ledger.DefaultChart(), nil, []string{"ingot"})

	p, err := operations.NewProduction(producer.Name, ingot, 4, nil, operations.ModeProduction)
	require.NoError(t, err)

	err = newTestResolver().PostProduction(p, producer)
	assert.ErrorIs(t, err, inventory.ErrInsufficientInventory)
}
