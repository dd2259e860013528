package goods

import "fmt"

// Classify assigns a role to every good in the list based on the
// input-dependency graph. The rule is order-independent and idempotent:
//
//	has inputs and is used as an input  -> intermediate
//	no inputs and is used as an input   -> raw material
//	has inputs and is never used        -> final
//	neither                             -> independent
//
// Returns ErrDanglingInputReference if a declared input is not in the list.
func Classify(goods []*Good) error {
	byName := make(map[string]*Good, len(goods))
	for _, g := range goods {
		byName[g.Name] = g
	}

	// Invert the Inputs maps into a used-as-input-of index.
	usedAsInput := make(map[string]bool)
	for _, g := range goods {
		for inputName := range g.Inputs {
			if _, ok := byName[inputName]; !ok {
				return fmt.Errorf("%w: good %q requires %q which is not in the goods list",
					ErrDanglingInputReference, g.Name, inputName)
			}
			usedAsInput[inputName] = true
		}
	}

	for _, g := range goods {
		hasInputs := len(g.Inputs) > 0
		isInput := usedAsInput[g.Name]

		switch {
		case hasInputs && isInput:
			g.Role = RoleIntermediate
		case !hasInputs && isInput:
			g.Role = RoleRawMaterial
		case hasInputs && !isInput:
			g.Role = RoleFinal
		default:
			g.Role = RoleIndependent
		}
	}

	return nil
}
