package solver

import "math/big"

// The viable-set store. Each arithmetic variable has a subset of
// [0, 2^w) that narrowing has not yet excluded. A dedicated BDD/FDD
// kernel would give a sub-exponential representation of that subset, but
// no such library is available (see DESIGN.md), so viable sets here are
// built directly on a standard-library primitive: math/big.Int used as
// an explicit bitset, one bit per representable value. This is adequate
// for the bit-widths this engine is exercised with, trading the more
// exotic representation for straightforward correctness.

// viableSet is a subset of [0, 2^width), represented as a bitset.
type viableSet struct {
	width uint
	bits  *big.Int
}

// fullViableSet returns the subset containing every value representable
// in width bits.
func fullViableSet(width uint) *viableSet {
	full := new(big.Int).Lsh(big.NewInt(1), uint(1)<<width)
	full.Sub(full, big.NewInt(1))
	return &viableSet{width: width, bits: full}
}

func (vs *viableSet) clone() *viableSet {
	return &viableSet{width: vs.width, bits: new(big.Int).Set(vs.bits)}
}

func (vs *viableSet) contains(val uint64) bool {
	return vs.bits.Bit(int(val)) == 1
}

// intersect narrows vs in place to vs ∩ other, returning the previous
// bitset so the trail can restore it verbatim on pop_levels.
func (vs *viableSet) intersect(other *viableSet) *big.Int {
	prior := vs.bits
	vs.bits = new(big.Int).And(vs.bits, other.bits)
	return prior
}

// restore replaces vs's bitset with a previously saved snapshot (a trail
// pop operation). The snapshot is a value, not a reference into vs, so
// this never aliases live state across backjumps.
func (vs *viableSet) restore(snapshot *big.Int) {
	vs.bits = snapshot
}

func (vs *viableSet) isEmpty() bool {
	return vs.bits.Sign() == 0
}

// complement returns the set of values in [0, 2^width) not in vs.
func (vs *viableSet) complement() *viableSet {
	full := fullViableSet(vs.width)
	full.bits.AndNot(full.bits, vs.bits)
	return full
}

// findResult is the outcome of find_viable: empty, a single forced value,
// or multiple candidates (with one preferred, matching the hint when
// possible).
type findResult byte

const (
	findEmpty findResult = iota
	findSingleton
	findMultiple
)

// findViable implements a "find any / find distinct" query over the
// viable set, preferring hint when it is itself viable.
func (vs *viableSet) findViable(hint uint64) (findResult, uint64) {
	if vs.isEmpty() {
		return findEmpty, 0
	}
	if vs.bits.BitLen() > 0 && isPowerOfTwoSet(vs.bits) {
		return findSingleton, uint64(vs.bits.TrailingZeroBits())
	}
	if vs.contains(hint) {
		return findMultiple, hint
	}
	return findMultiple, uint64(vs.bits.TrailingZeroBits())
}

// isPowerOfTwoSet reports whether exactly one bit of b is set.
func isPowerOfTwoSet(b *big.Int) bool {
	if b.Sign() == 0 {
		return false
	}
	tz := b.TrailingZeroBits()
	var cmp big.Int
	cmp.Rsh(b, tz)
	return cmp.BitLen() == 1 && cmp.Bit(0) == 1
}

// singleValue returns the unique member of vs and true, if vs contains
// exactly one value.
func (vs *viableSet) singleValue() (uint64, bool) {
	if isPowerOfTwoSet(vs.bits) {
		return uint64(vs.bits.TrailingZeroBits()), true
	}
	return 0, false
}

// excluding returns a singleton-complement set for val, i.e. every value
// in [0, 2^width) except val: used by add_non_viable's intersect(v,
// complement{val}) definition.
func excluding(width uint, val uint64) *viableSet {
	vs := fullViableSet(width)
	vs.bits.SetBit(vs.bits, int(val), 0)
	return vs
}

// newBigInt returns a fresh big.Int initialized to n, used where a
// function outside this file needs to build a viableSet without importing
// math/big itself.
func newBigInt(n int64) *big.Int { return big.NewInt(n) }

// excludingRange returns the viableSet containing exactly the half-open
// range [lo, hi) mod 2^width (wrapping if hi <= lo), the complement of
// which is what a forbidden interval's complementViable wants.
func excludingRange(width uint, lo, hi uint64) *viableSet {
	vs := &viableSet{width: width, bits: new(big.Int)}
	if lo == hi {
		return vs // empty range
	}
	n := uint64(1) << width
	x := lo
	for {
		vs.bits.SetBit(vs.bits, int(x), 1)
		x = (x + 1) % n
		if x == hi {
			break
		}
	}
	return vs
}

// valuesSatisfyingULE returns {x in [0,2^w) : a*x+b <=u c*x+d}, the ule
// constraint's narrow-step fallback for pivot coefficients outside
// {0, 1}: uleTrueInterval only gives a closed-form interval for unit
// coefficients, so anything else narrows by brute evaluation over the
// domain instead of bailing, which is adequate for the widths this
// engine targets.
func valuesSatisfyingULE(width uint, a, b, c, d uint64) *viableSet {
	m := uint64(1)<<width - 1
	if width == 64 {
		m = ^uint64(0)
	}
	out := &viableSet{width: width, bits: new(big.Int)}
	n := uint64(1) << width
	for x := uint64(0); x < n; x++ {
		lhs := (a*x + b) & m
		rhs := (c*x + d) & m
		if lhs <= rhs {
			out.bits.SetBit(out.bits, int(x), 1)
		}
	}
	return out
}
