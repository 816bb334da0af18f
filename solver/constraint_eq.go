package solver

import "github.com/modsat/bvsolver/pdd"

// Kind-specific behavior for KindEq: the same narrowing/interval case
// analysis as KindULE, specialized to p = 0 rather than a <=u b.

// linearCoeffs reduces p to hi*v + lo after every other variable has
// already been substituted away, failing (ok=false) if v still appears
// at degree != 1 or other variables remain - the signal that no narrowing
// set or closed-form interval can be built.
func linearCoeffs(p *pdd.Poly, v Var) (hi uint64, lo uint64, ok bool) {
	if val, isConst := p.IsVal(); isConst {
		return 0, val, true
	}
	pv, hiv, lov, isUni := p.IsUnilinear()
	if !isUni || pv != pdd.Var(v) {
		return 0, 0, false
	}
	return hiv, lov, true
}

// eqNarrow returns the viable set of v satisfying (or, if neg, refuting)
// p = 0 once every other variable in p has been substituted by assign.
func eqNarrow(p *pdd.Poly, v Var, width uint, neg bool, assign map[pdd.Var]uint64) (*viableSet, bool) {
	reduced := p.SubstVal(assign)
	hi, lo, ok := linearCoeffs(reduced, v)
	if !ok {
		return nil, false
	}
	if hi == 0 {
		// Constant in v: either every value works or none do.
		isZero := lo == 0
		if isZero != neg {
			return fullViableSet(width), true
		}
		return &viableSet{width: width, bits: newBigInt(0)}, true
	}
	inv, invOk := pdd.ModInverse(hi, width)
	if !invOk {
		return nil, false // even coefficient: bail, not unilinear-invertible
	}
	root := modMul(negMod(lo, width), inv, width)
	if !neg {
		return singletonViable(width, root), true
	}
	return excluding(width, root), true
}

// eqForbiddenInterval returns the interval of v-values that falsify the
// signed occurrence (p = 0, negated if neg), grounded on
// forbidden_intervals.cpp's linear a*x+b case.
func eqForbiddenInterval(p *pdd.Poly, v Var, width uint, neg bool, assign map[pdd.Var]uint64) (fiInterval, bool) {
	reduced := p.SubstVal(assign)
	hi, lo, ok := linearCoeffs(reduced, v)
	if !ok {
		return fiInterval{}, false
	}
	if hi == 0 {
		isZero := lo == 0
		if isZero == neg {
			return fullInterval(width), true // every v falsifies
		}
		return emptyInterval(width), true // no v falsifies
	}
	inv, invOk := pdd.ModInverse(hi, width)
	if !invOk {
		return fiInterval{}, false
	}
	root := modMul(negMod(lo, width), inv, width)
	if !neg {
		// Asserted p = 0: falsifying values are everything but root.
		return newInterval(width, root+1, root, false), true
	}
	// Asserted p != 0: falsifying values are exactly root.
	return newInterval(width, root, root+1, true), true
}

func (c *Constraint) eqIsAlwaysFalse(neg bool) bool {
	val, ok := c.P.IsVal()
	if !ok {
		return false
	}
	isZero := val == 0
	return isZero == neg
}

// eqEvalCurrent evaluates p = 0 (negated if neg) under a full assignment,
// returning (truth value, ok); ok is false if assign leaves a variable of
// p unbound.
func (c *Constraint) eqEvalCurrent(neg bool, assign map[pdd.Var]uint64) (bool, bool) {
	reduced := c.P.SubstVal(assign)
	val, ok := reduced.IsVal()
	if !ok {
		return false, false
	}
	isZero := val == 0
	return isZero != neg, true
}
