package solver

import "github.com/modsat/bvsolver/pdd"

// Kind-specific behavior for KindBit: value(BitVar) in BitSet. This kind
// has no "other variables" to wait on - it is already a direct viable-set
// restriction on a single pvar - so its narrow step is trivial, matching
// how a unit clause needs no watch scheme at all once it is asserted.

func (c *Constraint) bitNarrow(neg bool) *viableSet {
	if !neg {
		return c.BitSet.clone()
	}
	vs := fullViableSet(c.BitSet.width)
	vs.bits.AndNot(vs.bits, c.BitSet.bits)
	return vs
}

func (c *Constraint) bitIsAlwaysFalse(neg bool) bool {
	if !neg {
		return c.BitSet.isEmpty()
	}
	full := fullViableSet(c.BitSet.width)
	full.bits.AndNot(full.bits, c.BitSet.bits)
	return full.isEmpty()
}

func (c *Constraint) bitEvalCurrent(neg bool, assign map[pdd.Var]uint64) (bool, bool) {
	val, ok := assign[pdd.Var(c.BitVar)]
	if !ok {
		return false, false
	}
	in := c.BitSet.contains(val)
	return in != neg, true
}

// bitForbiddenInterval has no closed form in general (BitSet may be an
// arbitrary union of ranges), so this always bails; explainInterval then
// puts the occurrence's negation into its unminimized fallback clause.
func (c *Constraint) bitForbiddenInterval(neg bool) (fiInterval, bool) {
	return fiInterval{}, false
}
