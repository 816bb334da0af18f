package solver

import (
	"testing"

	"github.com/modsat/bvsolver/pdd"
)

func assignedValue(t *testing.T, s *Solver, v Var) uint64 {
	t.Helper()
	for _, a := range s.Assignment() {
		if a.Var == v {
			return a.Value
		}
	}
	t.Fatalf("variable %v has no assignment", v)
	return 0
}

// Scenario 1: width 2, a+1=0. Expect SAT with a=3.
func TestSeedLinearUnitCoeff(t *testing.T) {
	s := New()
	a := s.AddVar(2)
	s.AddEq(pdd.Add(s.VarPoly(a), pdd.Const(2, 1)), 1)
	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat: got %v, want Sat", got)
	}
	if v := assignedValue(t, s, a); v != 3 {
		t.Errorf("a: got %d, want 3", v)
	}
}

// Scenario 2: width 2, a,b; 2a+b+1=0 and 2b+a=0. Expect SAT with a=2,b=3.
func TestSeedLinearSystem(t *testing.T) {
	s := New()
	a := s.AddVar(2)
	b := s.AddVar(2)
	lhs1 := pdd.Add(pdd.Add(pdd.MulConst(s.VarPoly(a), 2), s.VarPoly(b)), pdd.Const(2, 1))
	s.AddEq(lhs1, 1)
	lhs2 := pdd.Add(pdd.MulConst(s.VarPoly(b), 2), s.VarPoly(a))
	s.AddEq(lhs2, 2)
	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat: got %v, want Sat", got)
	}
	if v := assignedValue(t, s, a); v != 2 {
		t.Errorf("a: got %d, want 2", v)
	}
	if v := assignedValue(t, s, b); v != 3 {
		t.Errorf("b: got %d, want 3", v)
	}
}

// Scenario 3: width 2, a,b; 3b+a+2=0. Expect SAT (any solution valid).
func TestSeedLinearAnySolution(t *testing.T) {
	s := New()
	a := s.AddVar(2)
	b := s.AddVar(2)
	lhs := pdd.Add(pdd.Add(pdd.MulConst(s.VarPoly(b), 3), s.VarPoly(a)), pdd.Const(2, 2))
	s.AddEq(lhs, 1)
	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat: got %v, want Sat", got)
	}
	av, bv := assignedValue(t, s, a), assignedValue(t, s, b)
	if (3*bv+av+2)&3 != 0 {
		t.Errorf("assignment a=%d b=%d does not satisfy 3b+a+2=0 mod 4", av, bv)
	}
}

// Scenario 4: width 3, a; 4a+2=0. Expect UNSAT (coefficient even, constant odd).
func TestSeedEvenCoeffOddConstUnsat(t *testing.T) {
	s := New()
	a := s.AddVar(3)
	lhs := pdd.Add(pdd.MulConst(s.VarPoly(a), 4), pdd.Const(3, 2))
	s.AddEq(lhs, 1)
	if got := s.CheckSat(); got != Unsat {
		t.Fatalf("CheckSat: got %v, want Unsat", got)
	}
}

// Scenario 5: width 3, a,b; a+2b+4=0 and a+4b+4=0. Expect UNSAT.
func TestSeedTwoEquationsUnsat(t *testing.T) {
	s := New()
	a := s.AddVar(3)
	b := s.AddVar(3)
	lhs1 := pdd.Add(pdd.Add(s.VarPoly(a), pdd.MulConst(s.VarPoly(b), 2)), pdd.Const(3, 4))
	s.AddEq(lhs1, 1)
	lhs2 := pdd.Add(pdd.Add(s.VarPoly(a), pdd.MulConst(s.VarPoly(b), 4)), pdd.Const(3, 4))
	s.AddEq(lhs2, 2)
	if got := s.CheckSat(); got != Unsat {
		t.Fatalf("CheckSat: got %v, want Unsat", got)
	}
	core := s.UnsatCore()
	if len(core) == 0 {
		t.Errorf("expected a non-empty unsat core")
	}
}

// Scenario 6: width 2, a; a*a*(a*a-1)+1=0. Expect UNSAT: a^4-a^2 is
// identically 0 mod 4, so the equation reduces to 1=0 for every a.
func TestSeedQuarticIdentityUnsat(t *testing.T) {
	s := New()
	a := s.AddVar(2)
	aa := pdd.Mul(s.VarPoly(a), s.VarPoly(a))
	inner := pdd.Sub(pdd.Mul(aa, aa), aa)
	lhs := pdd.Add(inner, pdd.Const(2, 1))
	s.AddEq(lhs, 1)
	if got := s.CheckSat(); got != Unsat {
		t.Fatalf("CheckSat: got %v, want Unsat", got)
	}
}

// Scenario 7: width 5, u,v,q,r; u-v*q-r=0, r<u u, u<u v*q. Expect UNSAT.
func TestSeedDivisionStyleUnsat(t *testing.T) {
	s := New()
	u := s.AddVar(5)
	v := s.AddVar(5)
	q := s.AddVar(5)
	r := s.AddVar(5)
	lhs := pdd.Sub(pdd.Sub(s.VarPoly(u), pdd.Mul(s.VarPoly(v), s.VarPoly(q))), s.VarPoly(r))
	s.AddEq(lhs, 1)
	s.AddULT(s.VarPoly(r), s.VarPoly(u), 2)
	s.AddULT(s.VarPoly(u), pdd.Mul(s.VarPoly(v), s.VarPoly(q)), 3)
	if got := s.CheckSat(); got != Unsat {
		t.Fatalf("CheckSat: got %v, want Unsat", got)
	}
}

// push(); assert a contradicting equation; pop(1) restores the prior
// status and assignment set.
func TestPushPopRoundTrip(t *testing.T) {
	s := New()
	a := s.AddVar(4)
	s.AddEq(pdd.Add(s.VarPoly(a), pdd.Const(4, 1)), 1)
	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat: got %v, want Sat", got)
	}
	before := assignedValue(t, s, a)

	s.Push()
	s.AddEq(pdd.Add(s.VarPoly(a), pdd.Const(4, 2)), 2) // contradicts a = 15
	if got := s.CheckSat(); got != Unsat {
		t.Fatalf("CheckSat inside pushed scope: got %v, want Unsat", got)
	}
	s.Pop(1)

	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat after pop: got %v, want Sat", got)
	}
	if after := assignedValue(t, s, a); after != before {
		t.Errorf("assignment changed across push/pop: got %d, want %d", after, before)
	}
}

func TestDiseqExcludesValue(t *testing.T) {
	s := New()
	a := s.AddVar(2)
	s.AddDiseq(pdd.Sub(s.VarPoly(a), pdd.Const(2, 3)), 1)
	s.AddDiseq(pdd.Sub(s.VarPoly(a), pdd.Const(2, 2)), 2)
	s.AddDiseq(pdd.Sub(s.VarPoly(a), pdd.Const(2, 1)), 3)
	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat: got %v, want Sat", got)
	}
	if v := assignedValue(t, s, a); v != 0 {
		t.Errorf("a: got %d, want the only remaining value 0", v)
	}
}

func TestULEBoundsVariable(t *testing.T) {
	s := New()
	a := s.AddVar(3)
	s.AddULE(s.VarPoly(a), pdd.Const(3, 2), 1)
	s.AddULT(pdd.Const(3, 1), s.VarPoly(a), 2) // a > 1, so with a<=2, a must be 2
	if got := s.CheckSat(); got != Sat {
		t.Fatalf("CheckSat: got %v, want Sat", got)
	}
	if v := assignedValue(t, s, a); v != 2 {
		t.Errorf("a: got %d, want 2", v)
	}
}
