// Package planning enumerates binary decision plans, executes them against
// fresh agent pairs and selects the plan maximising combined after-tax
// profit.
package planning

import (
	"fmt"
	"strings"

	"github.com/ftzlab/ftzsim/internal/modules/operations"
)

// Plan is an ordered vector of binary operating decisions. Decision 0 is
// the most significant position: enumerating plans in ascending binary
// value yields lexicographic order over the vectors.
type Plan []bool

// NewPlan builds a plan from 0/1 decision flags, rejecting anything else.
func NewPlan(flags []int) (Plan, error) {
	p := make(Plan, len(flags))
	for i, f := range flags {
		switch f {
		case 0:
			p[i] = false
		case 1:
			p[i] = true
		default:
			return nil, fmt.Errorf("%w: decision %d must be 0 or 1, got %d", operations.ErrInvalidBooleanFlag, i, f)
		}
	}
	return p, nil
}

// planFromIndex decodes enumeration index i into a plan of length n.
// Bit 0 of i is the last decision, so ascending i walks plans in
// lexicographic order.
func planFromIndex(i uint64, n int) Plan {
	p := make(Plan, n)
	for j := 0; j < n; j++ {
		p[j] = i&(1<<uint(n-1-j)) != 0
	}
	return p
}

// String renders the plan as a bit string, decision 0 first.
func (p Plan) String() string {
	var b strings.Builder
	for _, d := range p {
		if d {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Flags returns the plan as 0/1 integers, the inverse of NewPlan.
func (p Plan) Flags() []int {
	flags := make([]int, len(p))
	for i, d := range p {
		if d {
			flags[i] = 1
		}
	}
	return flags
}
