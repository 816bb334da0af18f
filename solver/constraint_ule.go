package solver

import "github.com/modsat/bvsolver/pdd"

// Kind-specific behavior for KindULE: a <=u b. Closed-form interval
// reasoning is only given for coefficients in {0, 1} (the "unit
// coefficient" cases); everything else is deferred. Narrowing still
// works for any linear coefficient, falling back to brute enumeration
// over the domain (valuesSatisfyingULE) when no closed form applies, but
// conflict explanation needs an actual interval, so forbiddenInterval
// keeps bailing on non-unit coefficients, leaving the occurrence to
// explainInterval's unminimized fallback clause.

// uleTrueInterval returns the half-open interval of v-values for which
// hi*v + lo <=u hc*v + ld holds, when hi, hc in {0, 1}. This is the
// allowed (true-making) interval; callers wanting the forbidden interval
// take the complement.
func uleTrueInterval(width uint, hi uint64, lo uint64, hc uint64, ld uint64) (fiInterval, bool) {
	switch {
	case hi == 0 && hc == 0:
		// Constant <=u constant: value-independent of v.
		if lo <= ld {
			return fullInterval(width), true
		}
		return emptyInterval(width), true
	case hi == 1 && hc == 0:
		// v + lo <=u ld  <=>  y <=u ld where y = v+lo.
		// y in [0, ld] => v in [-lo, ld-lo+1).
		start := negMod(lo, width)
		end := modAdd(modSub(ld, lo, width), 1, width)
		return newInterval(width, start, end, false), true
	case hi == 0 && hc == 1:
		// lo <=u v + ld  <=>  y >=u lo where y = v+ld, i.e. complement of
		// y in [0, lo), v in [lo-ld, -ld).
		start := modSub(lo, ld, width)
		end := negMod(ld, width)
		return newInterval(width, start, end, false), true
	case hi == 1 && hc == 1:
		// v+lo <=u v+ld: reduces to y <u 2^w-d where d = ld-lo, y = v+lo.
		d := modSub(ld, lo, width)
		if d == 0 {
			return fullInterval(width), true // lo == ld, always holds
		}
		start := negMod(lo, width)
		length := modSub(0, d, width) // 2^w - d, mod 2^w
		end := modAdd(start, length, width)
		return newInterval(width, start, end, false), true
	default:
		return fiInterval{}, false
	}
}

// uleCoeffs reduces both sides of a <=u b to hi*v+lo form, after other
// variables are substituted away, restricted to coefficients {0, 1}.
func uleCoeffs(c *Constraint, v Var, assign map[pdd.Var]uint64) (hi, lo, hc, ld uint64, ok bool) {
	ra := c.A.SubstVal(assign)
	rb := c.B.SubstVal(assign)
	hi, lo, ok = linearCoeffs(ra, v)
	if !ok || (hi != 0 && hi != 1) {
		return 0, 0, 0, 0, false
	}
	hc, ld, ok = linearCoeffs(rb, v)
	if !ok || (hc != 0 && hc != 1) {
		return 0, 0, 0, 0, false
	}
	return hi, lo, hc, ld, true
}

// uleLinearCoeffs is uleCoeffs without the {0, 1} restriction: it only
// requires v to appear linearly on each side after substitution, letting
// uleNarrow fall back to brute enumeration when the coefficients don't
// admit a closed-form interval.
func uleLinearCoeffs(c *Constraint, v Var, assign map[pdd.Var]uint64) (hi, lo, hc, ld uint64, ok bool) {
	ra := c.A.SubstVal(assign)
	rb := c.B.SubstVal(assign)
	hi, lo, ok = linearCoeffs(ra, v)
	if !ok {
		return 0, 0, 0, 0, false
	}
	hc, ld, ok = linearCoeffs(rb, v)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return hi, lo, hc, ld, true
}

func uleNarrow(c *Constraint, v Var, width uint, neg bool, assign map[pdd.Var]uint64) (*viableSet, bool) {
	hi, lo, hc, ld, ok := uleLinearCoeffs(c, v, assign)
	if !ok {
		return nil, false
	}
	if hi == 0 || hi == 1 {
		if hc == 0 || hc == 1 {
			if iv, ok := uleTrueInterval(width, hi, lo, hc, ld); ok {
				if neg {
					return iv.complementViable(), true
				}
				return trueIntervalViable(iv), true
			}
		}
	}
	vs := valuesSatisfyingULE(width, hi, lo, hc, ld)
	if neg {
		return vs.complement(), true
	}
	return vs, true
}

// trueIntervalViable turns a "true-making" interval directly into a
// viableSet (no complement), the dual of fiInterval.complementViable.
func trueIntervalViable(iv fiInterval) *viableSet {
	if iv.full {
		return fullViableSet(iv.width)
	}
	if iv.emptyNow {
		return &viableSet{width: iv.width, bits: newBigInt(0)}
	}
	return excludingRange(iv.width, iv.lo, iv.hi)
}

func uleForbiddenInterval(c *Constraint, v Var, width uint, neg bool, assign map[pdd.Var]uint64) (fiInterval, bool) {
	hi, lo, hc, ld, ok := uleCoeffs(c, v, assign)
	if !ok {
		return fiInterval{}, false
	}
	iv, ok := uleTrueInterval(width, hi, lo, hc, ld)
	if !ok {
		return fiInterval{}, false
	}
	if !neg {
		return invertInterval(iv), true // false-making = complement of true-making
	}
	return iv, true // asserted a >u b: false-making is where a<=u b holds
}

// invertInterval returns the complement interval of iv over the same
// domain, represented directly (not via a viableSet round-trip).
func invertInterval(iv fiInterval) fiInterval {
	if iv.full {
		return emptyInterval(iv.width)
	}
	if iv.emptyNow {
		return fullInterval(iv.width)
	}
	return newInterval(iv.width, iv.hi, iv.lo, false)
}

func (c *Constraint) uleIsAlwaysFalse(neg bool) bool {
	va, aOk := c.A.IsVal()
	vb, bOk := c.B.IsVal()
	if !aOk || !bOk {
		return false
	}
	holds := va <= vb
	return holds == neg
}

func (c *Constraint) uleEvalCurrent(neg bool, assign map[pdd.Var]uint64) (bool, bool) {
	ra := c.A.SubstVal(assign)
	rb := c.B.SubstVal(assign)
	va, aOk := ra.IsVal()
	vb, bOk := rb.IsVal()
	if !aOk || !bOk {
		return false, false
	}
	holds := va <= vb
	return holds != neg, true
}

func modAdd(a, b uint64, width uint) uint64 { return (a + b) & pdd.Mask(width) }
func modSub(a, b uint64, width uint) uint64 { return (a - b) & pdd.Mask(width) }
