package solver

import "github.com/modsat/bvsolver/pdd"

// Conflict analysis. Once a constraint-narrowing step empties some
// pvar's viable set, the justifying occurrences are turned into a
// falsified clause by explain_interval.go or explain_super.go; what
// remains is ordinary first-UIP resolution over that clause's Boolean
// literals, generalized only in that a "reason" can itself have been
// produced by theory explanation rather than unit propagation from an
// asserted clause.

type conflictCore struct {
	// Holds no state: analyzeConflict builds its working slices afresh on
	// every call.
}

func newConflictCore() *conflictCore { return &conflictCore{} }

// buildConflictClause turns the justifying occurrences that emptied v's
// viable set into a falsified clause, preferring the tighter
// superposition explanation when two equalities apply, falling back to
// forbidden-interval covering otherwise.
func (s *Solver) buildConflictClause(v Var, justifying []SignedConstraint) *Clause {
	if cl, ok := trySuperposition(v, justifying); ok {
		return cl
	}
	s.Stats.Bailouts += 0 // interval explanation always succeeds (falls back internally)
	assign := s.currentAssignment()
	delete(assign, pdd.Var(v))
	return explainInterval(s.width(v), justifying, v, assign)
}

// analyzeConflict performs first-UIP resolution over conflicting,
// returning the learned clause and the level to backjump to. A returned
// backjump level of -1 means the learned clause is a contradiction at
// the base level: the problem is unsat.
func (s *Solver) analyzeConflict(conflicting *Clause) (*Clause, int) {
	s.bvars.resetMarks()
	var lits []Lit
	var deps []Dependency
	atCurLevel := 0

	consider := func(l Lit) {
		v := l.Var()
		if s.bvars.isMarked(v) {
			return
		}
		s.bvars.setMark(v)
		lvl := s.bvars.level(v)
		if lvl == s.level && lvl > 0 {
			atCurLevel++
			return
		}
		if lvl > 0 {
			lits = append(lits, l)
		}
	}

	for _, l := range conflicting.lits {
		consider(l)
		if c := s.mgr.lookup(l).C; c != nil {
			deps = joinDeps(deps, []Dependency{c.dep})
		}
	}
	deps = joinDeps(deps, conflicting.deps)

	idx := len(s.search) - 1
	var pivot Lit
	for atCurLevel > 0 && idx >= 0 {
		item := s.search[idx]
		idx--
		if item.kind != siBool {
			continue
		}
		v := item.lit.Var()
		if !s.bvars.isMarked(v) {
			continue
		}
		if s.bvars.level(v) != s.level {
			continue
		}
		atCurLevel--
		reason := s.bvars.reason(v)
		if atCurLevel == 0 {
			pivot = item.lit.Negation()
			break
		}
		if reason == nil {
			// A decision at the current level with nothing left to resolve
			// against: treat it as the pivot.
			pivot = item.lit.Negation()
			break
		}
		for _, rl := range reason.lits {
			if rl.Var() == v {
				continue
			}
			consider(rl)
		}
		deps = joinDeps(deps, reason.deps)
	}

	learned := append([]Lit{pivot}, lits...)
	target := 0
	for _, l := range lits {
		if lvl := s.bvars.level(l.Var()); lvl > target {
			target = lvl
		}
	}
	if len(lits) == 0 && s.bvars.level(pivot.Var()) <= s.baseLevel() {
		return newLemma(learned, deps, s.baseLevel()), -1
	}
	return newLemma(learned, deps, target), target
}
