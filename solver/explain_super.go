package solver

import "github.com/modsat/bvsolver/pdd"

// Polynomial superposition explanation. When two asserted equalities
// share a pivot variable, pdd.Resolve eliminates
// it algebraically; if the result reduces to a nonzero constant, the two
// equalities are jointly unsatisfiable regardless of any other variable,
// which is a tighter, often much cheaper explanation than forbidden
// intervals (no domain-covering search needed at all).

// trySuperposition looks for a pair of equality occurrences in
// justifying that share pivot v and whose cross-multiplied combination
// is a nonzero constant, returning the two-literal falsified clause
// ¬eq1 ∨ ¬eq2 if so.
func trySuperposition(v Var, justifying []SignedConstraint) (*Clause, bool) {
	var eqs []SignedConstraint
	for _, sc := range justifying {
		if sc.C.Kind == KindEq && !sc.Neg {
			eqs = append(eqs, sc)
		}
	}
	for i := 0; i < len(eqs); i++ {
		for j := i + 1; j < len(eqs); j++ {
			r, ok := pdd.Resolve(pdd.Var(v), eqs[i].C.P, eqs[j].C.P)
			if !ok {
				continue
			}
			if val, isConst := r.IsVal(); isConst && val != 0 {
				lits := []Lit{eqs[i].Negate().Lit(), eqs[j].Negate().Lit()}
				deps := joinDeps([]Dependency{eqs[i].C.dep}, []Dependency{eqs[j].C.dep})
				return newLemma(lits, deps, 0), true
			}
		}
	}
	return nil, false
}
