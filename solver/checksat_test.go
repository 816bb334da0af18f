package solver

import (
	"testing"

	"github.com/modsat/bvsolver/pdd"
)

func TestCheckSatReturnsUndefOnMaxDecisions(t *testing.T) {
	s := New()
	// Four independent, underconstrained 8-bit variables: each needs its
	// own decision, so capping decisions at 1 should leave the search
	// incomplete.
	for i := 0; i < 4; i++ {
		v := s.AddVar(8)
		s.AddULE(s.VarPoly(v), pdd.Const(8, 200), Dependency(i+1))
	}
	s.MaxDecisions = 1
	if got := s.CheckSat(); got != Undef {
		t.Fatalf("CheckSat: got %v, want Undef", got)
	}
}

func TestCheckSatIsIdempotentOnTerminalStatus(t *testing.T) {
	s := New()
	a := s.AddVar(4)
	s.AddEq(pdd.Add(s.VarPoly(a), pdd.Const(4, 1)), 1)
	first := s.CheckSat()
	second := s.CheckSat()
	if first != second {
		t.Errorf("CheckSat should be idempotent once terminal: got %v then %v", first, second)
	}
}

func TestUnsatCoreEmptyBeforeUnsat(t *testing.T) {
	s := New()
	a := s.AddVar(4)
	s.AddEq(pdd.Add(s.VarPoly(a), pdd.Const(4, 1)), 1)
	s.CheckSat()
	if core := s.UnsatCore(); core != nil {
		t.Errorf("UnsatCore on a sat instance: got %v, want nil", core)
	}
}
