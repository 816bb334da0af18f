package solver

import "testing"

func TestBVarTableAssignAndLitValue(t *testing.T) {
	tbl := newBVarTable()
	v := tbl.newVar()
	if tbl.value(v) != unknown {
		t.Fatalf("fresh var should be unknown")
	}
	tbl.assign(v.PosLit(), 1, nil, nil)
	if tbl.litValue(v.PosLit()) != isTrue {
		t.Errorf("positive literal should evaluate true")
	}
	if tbl.litValue(v.NegLit()) != isFalse {
		t.Errorf("negative literal should evaluate false")
	}
	if !tbl.isDecision(v) {
		t.Errorf("assign with nil reason should be a decision")
	}
}

func TestBVarTablePropagationReason(t *testing.T) {
	tbl := newBVarTable()
	v := tbl.newVar()
	reason := &Clause{}
	tbl.assign(v.PosLit(), 2, reason, nil)
	if !tbl.isPropagation(v) {
		t.Errorf("assign with a reason should be a propagation")
	}
	if tbl.reason(v) != reason {
		t.Errorf("reason() did not return the stored clause")
	}
	if tbl.level(v) != 2 {
		t.Errorf("level: got %d, want 2", tbl.level(v))
	}
}

func TestBVarTableUnassignResets(t *testing.T) {
	tbl := newBVarTable()
	v := tbl.newVar()
	tbl.assign(v.PosLit(), 1, nil, nil)
	tbl.unassign(v.PosLit())
	if tbl.value(v) != unknown {
		t.Errorf("unassign should reset to unknown")
	}
}

func TestBVarTableMarks(t *testing.T) {
	tbl := newBVarTable()
	v := tbl.newVar()
	if tbl.isMarked(v) {
		t.Fatalf("fresh var should not be marked")
	}
	tbl.setMark(v)
	if !tbl.isMarked(v) {
		t.Errorf("setMark did not take effect")
	}
	tbl.resetMarks()
	if tbl.isMarked(v) {
		t.Errorf("resetMarks did not clear the mark")
	}
}

func TestBVarTableDelVarPanicsWhenAssigned(t *testing.T) {
	tbl := newBVarTable()
	v := tbl.newVar()
	tbl.assign(v.PosLit(), 0, nil, nil)
	defer func() {
		if recover() == nil {
			t.Errorf("delVar on an assigned variable should panic")
		}
	}()
	tbl.delVar(v)
}
