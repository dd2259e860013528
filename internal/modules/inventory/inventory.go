// Package inventory provides the per-agent lot-costing engine.
//
// Each good holds an ordered list of cost lots (insertion order = arrival
// order). Withdrawals consume lots according to the good's costing method
// and are all-or-nothing: a withdrawal that cannot be fully satisfied fails
// without mutating any lot.
package inventory

import (
	"errors"
	"fmt"
)

// ErrInsufficientInventory is returned when a withdrawal exceeds the
// available quantity, either overall or within the requested filter.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ErrInvalidCostingMethod is returned for methods outside FIFO, LIFO and
// weighted average.
var ErrInvalidCostingMethod = errors.New("invalid costing method")

// CostingMethod selects which lots' costs are charged on withdrawal.
type CostingMethod string

const (
	FIFO            CostingMethod = "FIFO"
	LIFO            CostingMethod = "LIFO"
	WeightedAverage CostingMethod = "WeightedAverage"
)

// Modality distinguishes definitive stock from temporarily admitted stock.
type Modality string

const (
	ModalityDefinitive Modality = "definitive"
	ModalityTemporary  Modality = "temporary"
)

// OriginLocal marks lots that did not arrive from another agent.
const OriginLocal = "local"

// Lot is one batch of a good with its own acquisition cost.
// Lots are owned exclusively by the inventory that created them.
type Lot struct {
	Good     string   `json:"good"`
	Quantity float64  `json:"quantity"`
	UnitCost float64  `json:"unit_cost"`
	Modality Modality `json:"modality"`
	Origin   string   `json:"origin"`
}

// Filter optionally restricts a withdrawal or quantity query to lots of a
// given modality and/or origin. Zero values match everything.
type Filter struct {
	Modality Modality
	Origin   string
}

func (f Filter) matches(l Lot) bool {
	if f.Modality != "" && l.Modality != f.Modality {
		return false
	}
	if f.Origin != "" && l.Origin != f.Origin {
		return false
	}
	return true
}

func (f Filter) empty() bool {
	return f.Modality == "" && f.Origin == ""
}

// Inventory holds the lots of one agent, grouped by good.
type Inventory struct {
	lots    map[string][]Lot
	methods map[string]CostingMethod
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{
		lots:    make(map[string][]Lot),
		methods: make(map[string]CostingMethod),
	}
}

// SetCostingMethod selects the costing method for one good.
// The default, when never set, is FIFO.
func (inv *Inventory) SetCostingMethod(good string, method CostingMethod) error {
	switch method {
	case FIFO, LIFO, WeightedAverage:
		inv.methods[good] = method
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCostingMethod, method)
	}
}

// CostingMethod reports the method in effect for a good.
func (inv *Inventory) CostingMethod(good string) CostingMethod {
	if m, ok := inv.methods[good]; ok {
		return m
	}
	return FIFO
}

// AddLot appends a new lot. Lots are never merged, even when attributes are
// identical, so arrival order stays meaningful for FIFO and LIFO.
func (inv *Inventory) AddLot(good string, quantity, unitCost float64, modality Modality, origin string) error {
	if quantity < 0 {
		return fmt.Errorf("lot quantity must be non-negative: got %v", quantity)
	}
	if modality == "" {
		modality = ModalityDefinitive
	}
	if origin == "" {
		origin = OriginLocal
	}
	inv.lots[good] = append(inv.lots[good], Lot{
		Good:     good,
		Quantity: quantity,
		UnitCost: unitCost,
		Modality: modality,
		Origin:   origin,
	})
	return nil
}

// TotalQuantity sums the quantity of a good across lots matching the filter.
// Read-only.
func (inv *Inventory) TotalQuantity(good string, filter Filter) float64 {
	var total float64
	for _, l := range inv.lots[good] {
		if filter.matches(l) {
			total += l.Quantity
		}
	}
	return total
}

// Lots returns a copy of the lot list for a good in arrival order.
func (inv *Inventory) Lots(good string) []Lot {
	src := inv.lots[good]
	out := make([]Lot, len(src))
	copy(out, src)
	return out
}

// RemoveLot withdraws a quantity of a good, consuming lots per the good's
// costing method, restricted to lots matching the filter. It returns the
// total cost removed.
//
// The withdrawal is all-or-nothing: on any error no lot is mutated.
func (inv *Inventory) RemoveLot(good string, quantity float64, filter Filter) (float64, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("withdrawal quantity must be non-negative: got %v", quantity)
	}

	all := inv.lots[good]
	if len(all) == 0 {
		return 0, fmt.Errorf("%w: no lots of %q", ErrInsufficientInventory, good)
	}

	// Indexes into all, in arrival order, of the lots the filter admits.
	var matched []int
	for i, l := range all {
		if filter.matches(l) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return 0, fmt.Errorf("%w: no lots of %q matching filter (modality=%q origin=%q)",
			ErrInsufficientInventory, good, filter.Modality, filter.Origin)
	}

	var available float64
	for _, i := range matched {
		available += all[i].Quantity
	}
	if available < quantity {
		if filter.empty() {
			return 0, fmt.Errorf("%w: requested %v of %q, only %v available",
				ErrInsufficientInventory, quantity, good, available)
		}
		return 0, fmt.Errorf("%w: requested %v of %q, only %v available within filter",
			ErrInsufficientInventory, quantity, good, available)
	}

	method := inv.CostingMethod(good)

	var totalCost float64
	switch method {
	case FIFO:
		totalCost = consume(all, matched, quantity, false)
	case LIFO:
		totalCost = consume(all, matched, quantity, true)
	case WeightedAverage:
		// Filtered lots form a single uniform cost pool; the list mutation
		// itself proceeds in FIFO order. Partial-lot remainders keep their
		// original per-lot unit cost.
		var poolValue float64
		for _, i := range matched {
			poolValue += all[i].Quantity * all[i].UnitCost
		}
		averageCost := poolValue / available
		totalCost = quantity * averageCost
		reduce(all, matched, quantity, false)
	}

	inv.lots[good] = compact(all)
	return totalCost, nil
}

// consume withdraws quantity across the matched lots, head first (or tail
// first when reverse is set), accumulating cost at each lot's own unit cost.
func consume(all []Lot, matched []int, quantity float64, reverse bool) float64 {
	var total float64
	remaining := quantity
	for k := range matched {
		idx := matched[k]
		if reverse {
			idx = matched[len(matched)-1-k]
		}
		lot := &all[idx]
		if lot.Quantity <= remaining {
			total += lot.Quantity * lot.UnitCost
			remaining -= lot.Quantity
			lot.Quantity = 0
		} else {
			total += remaining * lot.UnitCost
			lot.Quantity -= remaining
			remaining = 0
		}
		if remaining == 0 {
			break
		}
	}
	return total
}

// reduce lowers quantities without accumulating cost.
func reduce(all []Lot, matched []int, quantity float64, reverse bool) {
	remaining := quantity
	for k := range matched {
		idx := matched[k]
		if reverse {
			idx = matched[len(matched)-1-k]
		}
		lot := &all[idx]
		if lot.Quantity <= remaining {
			remaining -= lot.Quantity
			lot.Quantity = 0
		} else {
			lot.Quantity -= remaining
			remaining = 0
		}
		if remaining == 0 {
			return
		}
	}
}

// compact drops fully consumed lots, preserving order.
func compact(lots []Lot) []Lot {
	out := lots[:0]
	for _, l := range lots {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}
