package solver

import "github.com/modsat/bvsolver/pdd"

// Dispatch glue: capability methods switch on Kind, routing to the
// per-kind implementations in constraint_eq.go, constraint_ule.go, and
// constraint_bit.go.

// narrow returns the viable set of v consistent with sc holding, given
// every other variable sc touches is bound in assign. ok is false when
// the per-kind routine cannot produce a set (equation not linear in v or
// with an even coefficient, ULE side not linear in v) - the caller should treat this as
// "no narrowing happened" rather than a conflict.
func (sc SignedConstraint) narrow(v Var, width uint, assign map[pdd.Var]uint64) (*viableSet, bool) {
	c := sc.C
	switch c.Kind {
	case KindEq:
		return eqNarrow(c.P, v, width, sc.Neg, assign)
	case KindULE:
		return uleNarrow(c, v, width, sc.Neg, assign)
	case KindBit:
		return c.bitNarrow(sc.Neg), true
	default:
		return nil, false
	}
}

// isAlwaysFalse reports whether sc is false regardless of any variable
// assignment: an eager-contradiction check, run the moment a constraint
// is created.
func (sc SignedConstraint) isAlwaysFalse() bool {
	c := sc.C
	switch c.Kind {
	case KindEq:
		return c.eqIsAlwaysFalse(sc.Neg)
	case KindULE:
		return c.uleIsAlwaysFalse(sc.Neg)
	case KindBit:
		return c.bitIsAlwaysFalse(sc.Neg)
	default:
		return false
	}
}

// evalCurrent evaluates sc under a full assignment of every variable it
// touches; ok is false if assign leaves one unbound.
func (sc SignedConstraint) evalCurrent(assign map[pdd.Var]uint64) (bool, bool) {
	c := sc.C
	switch c.Kind {
	case KindEq:
		return c.eqEvalCurrent(sc.Neg, assign)
	case KindULE:
		return c.uleEvalCurrent(sc.Neg, assign)
	case KindBit:
		return c.bitEvalCurrent(sc.Neg, assign)
	default:
		return false, false
	}
}

// forbiddenInterval returns the interval of v-values that falsify sc,
// given every other variable sc touches is bound in assign. ok is false
// when no closed form applies; explainInterval then puts the occurrence
// into its unminimized fallback clause.
func (sc SignedConstraint) forbiddenInterval(v Var, width uint, assign map[pdd.Var]uint64) (fiInterval, bool) {
	c := sc.C
	switch c.Kind {
	case KindEq:
		return eqForbiddenInterval(c.P, v, width, sc.Neg, assign)
	case KindULE:
		return uleForbiddenInterval(c, v, width, sc.Neg, assign)
	case KindBit:
		return c.bitForbiddenInterval(sc.Neg)
	default:
		return fiInterval{}, false
	}
}
