package planning

import (
	"fmt"

	"github.com/ftzlab/ftzsim/internal/modules/accounting"
	"github.com/ftzlab/ftzsim/internal/modules/agents"
	"github.com/ftzlab/ftzsim/internal/modules/operations"
)

// Executor applies a plan to a fresh agent pair. Each true decision is
// translated into its configured action and posted through the resolver;
// false decisions are no-ops. Execution is a total function of the plan
// and the agents' starting state.
type Executor struct {
	resolver *accounting.Resolver
}

// NewExecutor wraps a resolver. The executor itself is stateless and safe
// for concurrent use as long as each call gets its own agents.
func NewExecutor(resolver *accounting.Resolver) *Executor {
	return &Executor{resolver: resolver}
}

// Run executes the plan decision by decision in index order. Any data
// error aborts the evaluation immediately.
func (e *Executor) Run(plan Plan, sc *Scenario, byName map[string]*agents.Agent) error {
	if len(plan) != len(sc.Actions) {
		return fmt.Errorf("plan length %d does not match %d configured actions", len(plan), len(sc.Actions))
	}

	for i, decided := range plan {
		if !decided {
			continue
		}
		if err := e.runAction(sc, sc.Actions[i], byName); err != nil {
			return fmt.Errorf("decision %d: %w", i, err)
		}
	}
	return nil
}

func (e *Executor) runAction(sc *Scenario, action ActionSpec, byName map[string]*agents.Agent) error {
	good, err := sc.catalogue.Get(action.Good)
	if err != nil {
		return err
	}

	switch action.Kind {
	case ActionTrade:
		tx, err := operations.NewTransaction(action.Seller, action.Buyer, good, action.Amount,
			action.TemporaryExport, action.DomesticateVAT, action.VATStatus)
		if err != nil {
			return err
		}
		return e.resolver.PostTransaction(tx, byName[action.Seller], byName[action.Buyer])
	case ActionProduction:
		p, err := operations.NewProduction(action.Producer, good, action.Amount, nil, action.Mode)
		if err != nil {
			return err
		}
		return e.resolver.PostProduction(p, byName[action.Producer])
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}
