package solver

import (
	"testing"

	"github.com/modsat/bvsolver/pdd"
)

func TestEqNarrowUnilinear(t *testing.T) {
	w := uint(3)
	v := Var(0)
	p := pdd.Add(pdd.MulConst(pdd.VarPoly(w, pdd.Var(v)), 3), pdd.Const(w, 2))
	vs, ok := eqNarrow(p, v, w, false, map[pdd.Var]uint64{})
	if !ok {
		t.Fatalf("eqNarrow should solve an invertible linear equation")
	}
	val, single := vs.singleValue()
	if !single || val != 2 {
		t.Errorf("3v+2=0 mod 8: got v=%d (single=%v), want 2", val, single)
	}
}

func TestEqNarrowBailsOnEvenCoeff(t *testing.T) {
	w := uint(3)
	v := Var(0)
	p := pdd.Add(pdd.MulConst(pdd.VarPoly(w, pdd.Var(v)), 4), pdd.Const(w, 2))
	if _, ok := eqNarrow(p, v, w, false, map[pdd.Var]uint64{}); ok {
		t.Errorf("eqNarrow should bail on a non-invertible (even) coefficient")
	}
}

func TestEqNarrowNegatedExcludesRoot(t *testing.T) {
	w := uint(3)
	v := Var(0)
	p := pdd.Add(pdd.VarPoly(w, pdd.Var(v)), pdd.Const(w, 5))
	vs, ok := eqNarrow(p, v, w, true, map[pdd.Var]uint64{})
	if !ok {
		t.Fatalf("eqNarrow should solve v+5=0")
	}
	if vs.contains(3) { // root: v = -5 mod 8 = 3
		t.Errorf("negated eq should exclude the root 3")
	}
	for x := uint64(0); x < 8; x++ {
		if x != 3 && !vs.contains(x) {
			t.Errorf("negated eq should keep every non-root value, missing %d", x)
		}
	}
}

func TestEqIsAlwaysFalseForNonzeroConst(t *testing.T) {
	c := &Constraint{Kind: KindEq, P: pdd.Const(4, 9)}
	if !c.eqIsAlwaysFalse(false) {
		t.Errorf("9=0 should be always false")
	}
	if c.eqIsAlwaysFalse(true) {
		t.Errorf("9!=0 should not be always false")
	}
}

func TestEqEvalCurrent(t *testing.T) {
	v := Var(0)
	c := &Constraint{Kind: KindEq, P: pdd.Sub(pdd.VarPoly(4, pdd.Var(v)), pdd.Const(4, 3))}
	holds, ok := c.eqEvalCurrent(false, map[pdd.Var]uint64{pdd.Var(v): 3})
	if !ok || !holds {
		t.Errorf("v-3=0 at v=3: got (%v,%v), want (true,true)", holds, ok)
	}
	holds, ok = c.eqEvalCurrent(false, map[pdd.Var]uint64{pdd.Var(v): 4})
	if !ok || holds {
		t.Errorf("v-3=0 at v=4: got (%v,%v), want (false,true)", holds, ok)
	}
}
