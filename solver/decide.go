package solver

// The decision loop. Two kinds of decision exist: an arithmetic one,
// picking a value from some pvar's viable set (activity-ordered, querying
// the viable-set store instead of a fixed polarity heuristic), and a
// Boolean one, made only when a learned non-unit lemma leaves more than
// one literal open and none forced - then the first not-yet-tried
// disjunct is guessed directly.

// pickVar returns the next undecided pvar in activity order, or ok=false
// once every pvar is assigned.
func (s *Solver) pickVar() (Var, bool) {
	for !s.varQueue.empty() {
		v := Var(s.varQueue.removeMin())
		if !s.vars[v].assigned {
			return v, true
		}
	}
	return 0, false
}

// decideVar assigns v: if its viable set has collapsed to one value,
// that is a forced propagation (no new level); otherwise a value is
// picked and a new level opened for it. Returns false on conflict.
func (s *Solver) decideVar(v Var) bool {
	rec := &s.vars[v]
	res, val := rec.viable.findViable(0)
	switch res {
	case findEmpty:
		// Nothing justified this emptiness directly (it would have been
		// caught by propagateConstraint already); treat conservatively as
		// an unexplained bailout rather than panicking.
		s.Stats.Bailouts++
		s.pendingConflict = explainInterval(rec.width, rec.cjust, v, s.currentAssignment())
		return false
	case findSingleton:
		s.assignVar(v, val, jPropagation, SignedConstraint{})
		return s.onVarAssigned(v)
	default:
		s.pushLevel()
		s.Stats.Decisions++
		s.assignVar(v, val, jDecision, SignedConstraint{})
		return s.onVarAssigned(v)
	}
}

// decideBoolFromLemma is called right after asserting a learned clause's
// forced literal (if any); when more than one of its literals is still
// open, it picks the first untried one as a Boolean decision.
func (s *Solver) decideBoolFromLemma(cl *Clause) bool {
	for {
		l, ok := cl.nextGuess()
		if !ok {
			return true // nothing left to try; caller already handled unit case
		}
		if s.bvars.litValue(l) != unknown {
			continue
		}
		s.pushLevel()
		s.Stats.Decisions++
		s.assignBool(l, s.level, nil, cl)
		sc := s.mgr.lookup(l)
		return s.awaken(sc)
	}
}

// assertLearned installs a freshly learned clause: if it is unit (or has
// exactly one currently-non-false literal), that literal is propagated
// immediately; otherwise a Boolean decision is made among its open
// disjuncts.
func (s *Solver) assertLearned(cl *Clause) bool {
	s.clauses.store(cl)
	var open []Lit
	for _, l := range cl.lits {
		if s.bvars.litValue(l) != isFalse {
			open = append(open, l)
		}
	}
	switch len(open) {
	case 0:
		return false // still falsified: caller must backjump further
	case 1:
		l := open[0]
		if s.bvars.litValue(l) == isTrue {
			return true
		}
		s.assignBool(l, s.level, cl, nil)
		return s.awaken(s.mgr.lookup(l))
	default:
		cl.resetGuess()
		return s.decideBoolFromLemma(cl)
	}
}
