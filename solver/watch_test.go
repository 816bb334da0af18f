package solver

import (
	"testing"

	"github.com/modsat/bvsolver/pdd"
)

func TestAwakenAddsWatchWithTwoFreeVars(t *testing.T) {
	s := New()
	a := s.AddVar(4)
	b := s.AddVar(4)
	lhs := pdd.Sub(s.VarPoly(a), s.VarPoly(b))
	sc := s.mgr.Eq(lhs, s.level, 1)
	if ok := s.awaken(sc); !ok {
		t.Fatalf("awaken with two free vars should not conflict")
	}
	if len(s.vars[a].watch) != 1 || len(s.vars[b].watch) != 1 {
		t.Errorf("both free vars should be watching the constraint, got a=%d b=%d",
			len(s.vars[a].watch), len(s.vars[b].watch))
	}
}

func TestOnVarAssignedNarrowsRemainingFreeVar(t *testing.T) {
	s := New()
	a := s.AddVar(4)
	b := s.AddVar(4)
	lhs := pdd.Sub(s.VarPoly(a), s.VarPoly(b)) // a - b = 0
	sc := s.mgr.Eq(lhs, s.level, 1)
	s.assignBool(sc.Lit(), s.level, nil, nil)
	s.awaken(sc)

	s.pushLevel()
	s.assignVar(a, 5, jDecision, SignedConstraint{})
	if ok := s.onVarAssigned(a); !ok {
		t.Fatalf("onVarAssigned should not conflict when b is still free")
	}
	if v, ok := s.vars[b].viable.singleValue(); !ok || v != 5 {
		t.Errorf("b's viable set should have narrowed to {5} once a=5, got (%v,%v)", v, ok)
	}
}

func TestOnVarAssignedDetectsConflict(t *testing.T) {
	s := New()
	a := s.AddVar(4)
	b := s.AddVar(4)
	lhs := pdd.Sub(s.VarPoly(a), s.VarPoly(b)) // a - b = 0
	sc := s.mgr.Eq(lhs, s.level, 1)
	s.assignBool(sc.Lit(), s.level, nil, nil)
	s.awaken(sc)

	s.pushLevel()
	s.assignVar(b, 9, jDecision, SignedConstraint{})
	s.onVarAssigned(b) // narrows a's viable set to {9}

	s.pushLevel()
	s.assignVar(a, 2, jDecision, SignedConstraint{}) // contradicts a == 9
	if ok := s.onVarAssigned(a); ok {
		t.Fatalf("assigning a=2 when only a=9 is viable should conflict")
	}
	if s.pendingConflict == nil {
		t.Errorf("expected pendingConflict to be set")
	}
}
