package solver

import "github.com/modsat/bvsolver/pdd"

// Small modular-arithmetic helpers mod 2^width, shared by the per-kind
// narrow and forbidden-interval routines when solving a linear equation
// hi*v + lo = 0 in one variable v. Builds on pdd.ModInverse/pdd.Mask
// rather than duplicating the Newton iteration.

func negMod(a uint64, width uint) uint64 {
	return (^a + 1) & pdd.Mask(width)
}

func modMul(a, b uint64, width uint) uint64 {
	return (a * b) & pdd.Mask(width)
}

// singletonViable returns the viable set containing exactly val.
func singletonViable(width uint, val uint64) *viableSet {
	vs := &viableSet{width: width, bits: newBigInt(0)}
	vs.bits.SetBit(vs.bits, int(val&pdd.Mask(width)), 1)
	return vs
}
