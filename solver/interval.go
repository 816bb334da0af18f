package solver

// fiInterval is a forbidden interval in Z_2^w: the half-open interval
// [lo, hi) of values for v that would immediately falsify a constraint.
// Bounds are concrete numeric values rather than symbolic polynomials,
// since narrowing only ever builds one of these once every other
// variable touched by the constraint is already assigned.
type fiInterval struct {
	width    uint
	lo, hi   uint64 // meaningless if full or emptyNow
	full     bool
	emptyNow bool
}

func fullInterval(width uint) fiInterval { return fiInterval{width: width, full: true} }

func emptyInterval(width uint) fiInterval { return fiInterval{width: width, emptyNow: true} }

func modW(x uint64, width uint) uint64 {
	if width >= 64 {
		return x
	}
	return x & ((uint64(1) << width) - 1)
}

func ivModulus(width uint) uint64 {
	if width >= 64 {
		return 0 // represents 2^64, handled specially by callers
	}
	return uint64(1) << width
}

// newInterval builds the half-open interval [lo, hi) mod 2^width,
// collapsing to full/empty when lo==hi per the usual forbidden-interval
// convention (lo==hi encodes the full domain when constructed from a
// nonzero-length condition, or the empty one when the two conditions
// actually coincide with no excluded values - callers decide which via
// emptyOnEqual).
func newInterval(width uint, lo, hi uint64, emptyOnEqual bool) fiInterval {
	lo = modW(lo, width)
	hi = modW(hi, width)
	if lo == hi {
		if emptyOnEqual {
			return emptyInterval(width)
		}
		return fullInterval(width)
	}
	return fiInterval{width: width, lo: lo, hi: hi}
}

// currentlyContains reports whether x lies in [lo, hi) (mod 2^w).
func (iv fiInterval) currentlyContains(x uint64) bool {
	if iv.full {
		return true
	}
	if iv.emptyNow {
		return false
	}
	x = modW(x, iv.width)
	if iv.lo < iv.hi {
		return x >= iv.lo && x < iv.hi
	}
	// wraps around 2^w
	return x >= iv.lo || x < iv.hi
}

// complementViable converts the complement of a forbidden interval (i.e.
// the set of values the constraint actually allows) into a viableSet,
// for the narrow() step: narrow intersects viable(x) with "the set
// satisfying the constraint", which is the forbidden interval's
// complement.
func (iv fiInterval) complementViable() *viableSet {
	if iv.full {
		return &viableSet{width: iv.width, bits: newBigInt(0)}
	}
	if iv.emptyNow {
		return fullViableSet(iv.width)
	}
	forbidden := excludingRange(iv.width, iv.lo, iv.hi)
	full := fullViableSet(iv.width)
	full.bits.AndNot(full.bits, forbidden.bits)
	return full
}
