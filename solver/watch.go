package solver

import "github.com/modsat/bvsolver/pdd"

// The watch scheme, generalized from 2-literal clause watching to
// up-to-2-free-variable constraint watching: a constraint watches two of
// its touched variables while both remain unassigned; when one of them
// is bound, the constraint looks for a replacement among its remaining
// variables, and only does real work (narrowing or full evaluation) once
// no replacement exists.

// awaken registers sc for watching once its Boolean variable has been
// assigned (true or false): if it still has at least two free variables
// nothing more happens yet; otherwise it is processed immediately. A
// constraint always keeps min(2, |free|) watches, so a single remaining
// free variable is watched too - even when propagateConstraint finds no
// closed form to narrow with yet, the constraint must be re-examined
// once that variable is assigned. Returns false on conflict.
func (s *Solver) awaken(sc SignedConstraint) bool {
	c := sc.C
	free := s.freeVars(c)
	if len(free) >= 2 {
		s.addWatch(c, free[0], free[1])
		return true
	}
	ok := s.propagateConstraint(sc, free)
	if len(free) == 1 {
		s.addWatch(c, free[0], free[0])
	}
	return ok
}

func (s *Solver) freeVars(c *Constraint) []Var {
	var out []Var
	for _, v := range c.vars {
		if !s.vars[v].assigned {
			out = append(out, v)
		}
	}
	return out
}

func (s *Solver) addWatch(c *Constraint, v1, v2 Var) {
	s.vars[v1].watch = append(s.vars[v1].watch, c)
	if v2 != v1 {
		s.vars[v2].watch = append(s.vars[v2].watch, c)
	}
}

// onVarAssigned re-examines every constraint watching v, now that v has
// just become assigned, looking for a replacement watch; constraints
// with none left are processed. Returns false on conflict.
func (s *Solver) onVarAssigned(v Var) bool {
	watchers := s.vars[v].watch
	s.vars[v].watch = nil
	ok := true
	for _, c := range watchers {
		if !s.rewatch(c) {
			ok = false
		}
	}
	return ok
}

func (s *Solver) rewatch(c *Constraint) bool {
	free := s.freeVars(c)
	if len(free) >= 2 {
		s.addWatch(c, free[0], free[1])
		return true
	}
	val := s.bvars.value(c.BVar)
	if val == unknown {
		if len(free) == 1 {
			s.addWatch(c, free[0], free[0])
		}
		return true // not yet decided true or false: nothing to propagate
	}
	sc := SignedConstraint{C: c, Neg: val == isFalse}
	ok := s.propagateConstraint(sc, free)
	if len(free) == 1 {
		s.addWatch(c, free[0], free[0])
	}
	return ok
}

// propagateConstraint handles a constraint down to at most one free
// variable: with exactly one, it narrows that variable's viable set;
// with zero, it checks the constraint is actually satisfied. Either path
// can discover a conflict, recorded in s.pendingConflict.
func (s *Solver) propagateConstraint(sc SignedConstraint, free []Var) bool {
	assign := s.currentAssignment()
	switch len(free) {
	case 1:
		v := free[0]
		vs, ok := sc.narrow(v, s.width(v), assign)
		if !ok {
			return true // no closed form yet; resolved later, at full assignment
		}
		s.pushCjust(v, sc)
		if !s.intersectViable(v, vs) {
			s.pendingConflict = s.buildConflictClause(v, s.vars[v].cjust)
			return false
		}
		return true
	case 0:
		holds, ok := sc.evalCurrent(assign)
		if !ok || holds {
			return true
		}
		// Every variable is bound and the constraint is false: find which
		// variable to blame by re-running narrow with each one held free.
		for _, v := range sc.C.Vars() {
			partial := make(map[pdd.Var]uint64, len(assign))
			for k, val := range assign {
				if Var(k) != v {
					partial[k] = val
				}
			}
			vs, ok := sc.narrow(v, s.width(v), partial)
			if ok && !vs.contains(assign[pdd.Var(v)]) {
				s.pushCjust(v, sc)
				s.pendingConflict = s.buildConflictClause(v, s.vars[v].cjust)
				return false
			}
		}
		// No per-variable closed form: fall back to a trivial clause over
		// just this occurrence's dependents is unsound on its own (it needs
		// at least one other falsifying premise); instead blame the
		// highest-numbered variable the constraint touches, unconditionally,
		// via the full justifying set.
		if len(sc.C.Vars()) > 0 {
			v := sc.C.Vars()[len(sc.C.Vars())-1]
			s.pushCjust(v, sc)
			s.pendingConflict = s.buildConflictClause(v, s.vars[v].cjust)
			return false
		}
		return true
	default:
		return true
	}
}
