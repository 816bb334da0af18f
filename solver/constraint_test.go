package solver

import (
	"testing"

	"github.com/modsat/bvsolver/pdd"
)

func TestManagerDedupesIdenticalAtoms(t *testing.T) {
	m := newManager(newBVarTable())
	p := pdd.Const(4, 3)
	a := m.Eq(p, 0, 1)
	b := m.Eq(p, 0, 2)
	if a.C != b.C {
		t.Errorf("identical eq atoms should share one Constraint/BVar")
	}
}

func TestULTIsNegatedULE(t *testing.T) {
	m := newManager(newBVarTable())
	a := pdd.Const(4, 1)
	b := pdd.Const(4, 2)
	lt := m.ULT(a, b, 0, 1)
	if !lt.Neg {
		t.Fatalf("ULT should return the negated ULE(b,a) occurrence")
	}
	if lt.C.A != b || lt.C.B != a {
		t.Errorf("ULT should encode as ule(b,a), got A=%v B=%v", lt.C.A, lt.C.B)
	}
}

func TestSignedConstraintNegateRoundTrips(t *testing.T) {
	m := newManager(newBVarTable())
	sc := m.Eq(pdd.Const(4, 0), 0, 1)
	neg := sc.Negate()
	if neg.C != sc.C || neg.Neg == sc.Neg {
		t.Errorf("Negate should flip polarity while sharing the atom")
	}
	if neg.Negate().Neg != sc.Neg {
		t.Errorf("double negation should restore original polarity")
	}
}

func TestEqIsAlwaysFalseForNonzeroConstant(t *testing.T) {
	m := newManager(newBVarTable())
	sc := m.Eq(pdd.Const(4, 5), 0, 1)
	if !sc.isAlwaysFalse() {
		t.Errorf("eq(5)=0 should be always false")
	}
	if sc.Negate().isAlwaysFalse() {
		t.Errorf("diseq(5) should not be always false")
	}
}

func TestUleIsAlwaysFalseForConstants(t *testing.T) {
	m := newManager(newBVarTable())
	sc := m.ULE(pdd.Const(4, 9), pdd.Const(4, 3), 0, 1)
	if !sc.isAlwaysFalse() {
		t.Errorf("9<=3 should be always false")
	}
}

func TestReleaseLevelDropsDedupAndByDep(t *testing.T) {
	m := newManager(newBVarTable())
	p := pdd.Const(4, 1)
	sc := m.Eq(p, 1, 7)
	m.registerExternal(7, sc)
	m.releaseLevel(0)
	if _, ok := m.lookupExternal(7); ok {
		t.Errorf("releaseLevel(0) should have dropped the level-1 constraint")
	}
	if _, ok := m.dedup[dedupKeyEq(p)]; ok {
		t.Errorf("releaseLevel(0) should have dropped the dedup entry")
	}
}
