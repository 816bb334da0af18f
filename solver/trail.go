package solver

// The trail and search stack. Two parallel structures are kept: "what
// happened, in order" (the search stack of var/bool assignments, used by
// conflict analysis to scan top-down) and "how to undo it" (the trail,
// an append-only log of closures, each capable of reverting one piece of
// mutable state). A plain CNF solver can get away with a single "trail
// of literals plus levels" slice since propagation only ever assigns
// Boolean variables; here a decision or propagation can also narrow a
// pvar's viable set or bind its value, so the undo log is generalized to
// arbitrary closures instead of a fixed undo-literal scheme.

type trailEntry func(s *Solver)

// searchItemKind discriminates the two kinds of assignment a conflict
// scan walks over.
type searchItemKind byte

const (
	siVar searchItemKind = iota
	siBool
)

type searchItem struct {
	kind searchItemKind
	v    Var
	lit  Lit
}

// record appends an undo closure to the trail, to be invoked (in reverse
// order) when its level is popped.
func (s *Solver) record(undo trailEntry) {
	s.trail = append(s.trail, undo)
}

// pushLevel opens a new level, recording the trail/search boundary so
// popLevels(1) later undoes exactly what this level added.
func (s *Solver) pushLevel() {
	s.marks = append(s.marks, len(s.trail))
	s.smarks = append(s.smarks, len(s.search))
	s.level++
}

// popLevels undoes the last n levels in reverse chronological order,
// running every recorded closure and truncating both the trail and the
// search stack back to each level's recorded boundary. This is the only
// place viable sets, var assignments, and Boolean assignments are ever
// reverted, so a single call can perform a non-chronological, multi-level
// backjump: resolve_conflict computes a target level once and calls this
// with however many levels separate it from the current one.
func (s *Solver) popLevels(n int) {
	for i := 0; i < n; i++ {
		if len(s.marks) == 0 {
			return
		}
		mark := s.marks[len(s.marks)-1]
		s.marks = s.marks[:len(s.marks)-1]
		smark := s.smarks[len(s.smarks)-1]
		s.smarks = s.smarks[:len(s.smarks)-1]

		for j := len(s.trail) - 1; j >= mark; j-- {
			s.trail[j](s)
		}
		s.trail = s.trail[:mark]
		s.search = s.search[:smark]
		s.level--
	}
	s.mgr.releaseLevel(s.level)
	s.clauses.releaseLevel(s.level)
}

// assignVar binds v to val at the current level for the given
// justification, recording the undo, and pushes a search-stack entry.
func (s *Solver) assignVar(v Var, val uint64, kind justKind, reason SignedConstraint) {
	rec := &s.vars[v]
	rec.assigned = true
	rec.value = val
	rec.just = varJust{kind: kind, level: s.level, reason: reason}
	s.record(func(s *Solver) {
		r := &s.vars[v]
		r.assigned = false
		r.value = 0
		r.just = varJust{}
	})
	s.search = append(s.search, searchItem{kind: siVar, v: v})
}

// intersectViable narrows v's viable set in place, recording the prior
// bitset for restoration, and reports whether the result is non-empty.
func (s *Solver) intersectViable(v Var, other *viableSet) bool {
	rec := &s.vars[v]
	prior := rec.viable.intersect(other)
	s.record(func(s *Solver) { s.vars[v].viable.restore(prior) })
	return !rec.viable.isEmpty()
}

// pushCjust records sc as one of v's justifying constraints (cjust(v):
// the constraints that, together, explain why v's viable set narrowed to
// its current value), undone symmetrically on backjump.
func (s *Solver) pushCjust(v Var, sc SignedConstraint) {
	rec := &s.vars[v]
	rec.cjust = append(rec.cjust, sc)
	s.record(func(s *Solver) {
		r := &s.vars[v]
		r.cjust = r.cjust[:len(r.cjust)-1]
	})
}

// assignBool assigns a Boolean literal at the given level, recording the
// search-stack entry and trail undo. reason is non-nil for a propagation,
// lemma is non-nil when the literal was chosen as a decision picked from
// a learned non-unit lemma's disjuncts.
func (s *Solver) assignBool(l Lit, lvl int, reason *Clause, lemma *Clause) {
	s.bvars.assign(l, lvl, reason, lemma)
	s.record(func(s *Solver) { s.bvars.unassign(l) })
	s.search = append(s.search, searchItem{kind: siBool, lit: l})
	s.Stats.Propagations++
}
