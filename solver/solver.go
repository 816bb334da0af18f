package solver

import (
	"context"

	"github.com/modsat/bvsolver/pdd"
)

// The driver. Solver assembles every other component and exposes the
// external interface: incremental atom assertion, push/pop scopes,
// check_sat, unsat_core, and model/statistics queries. The check_sat
// loop is in checksat.go, conflict analysis in conflict.go, and decisions
// in decide.go; this file holds construction and the external surface.

// Stats collects run counters exposed for diagnostics. Propagations
// counts every Boolean literal assignment (assignBool); Bailouts counts
// decisions that found a variable's viable set already empty.
type Stats struct {
	Iterations   int
	Decisions    int
	Conflicts    int
	Bailouts     int
	Propagations int
}

// Solver is the bit-vector CDCL engine. It is single-threaded and
// cooperative: every exported method runs to a quiescent state before
// returning, and the only cancellation channel is MaxConflicts/
// MaxDecisions or an external context.Context polled at the top of each
// check_sat iteration.
type Solver struct {
	// Boolean-variable assignment table.
	bvars *bvarTable

	// Constraint manager.
	mgr *manager

	// Clause arena.
	clauses *clauseStore

	// Trail and search-order bookkeeping.
	trail   []trailEntry
	search  []searchItem
	marks   []int // per-level index into trail, for pop_levels
	smarks  []int // per-level index into search, for pop_levels
	level   int
	baseLvl []int // push() scope boundaries, each a solver level

	// Per arithmetic variable state and decision bookkeeping.
	vars        []varRecord
	varActivity []float64
	varQueue    queue
	varInc      float64

	// The current conflict, if any.
	conflict        *conflictCore
	pendingConflict *Clause

	// Driver state.
	Stats        Stats
	MaxConflicts uint64
	MaxDecisions uint64
	Ctx          context.Context // polled resource limit

	status    Status
	unsatDeps []Dependency
}

// varRecord is a pvar's mutable state: current value (if assigned),
// justification, viable set, activity score, watch list, and cjust.
type varRecord struct {
	width    uint
	assigned bool
	value    uint64
	just     varJust
	viable   *viableSet
	activity float64
	watch    []*Constraint
	cjust    []SignedConstraint
}

type justKind byte

const (
	jUnassigned justKind = iota
	jDecision
	jPropagation
)

type varJust struct {
	kind   justKind
	level  int
	reason SignedConstraint
}

// New creates an empty solver with no variables and no constraints.
func New() *Solver {
	s := &Solver{
		bvars:   newBVarTable(),
		clauses: newClauseStore(),
		varInc:  1.0,
		status:  Indet,
	}
	s.mgr = newManager(s.bvars)
	s.conflict = newConflictCore()
	return s
}

// AddVar declares a fresh arithmetic variable of the given bit-width and
// returns its index.
func (s *Solver) AddVar(width uint) Var {
	v := Var(len(s.vars))
	s.vars = append(s.vars, varRecord{
		width:  width,
		viable: fullViableSet(width),
	})
	s.varActivity = append(s.varActivity, 0)
	s.varQueue.activity = s.varActivity // re-point after the possible realloc
	s.varQueue.insert(int(v))
	return v
}

// VarPoly returns the polynomial representing the symbolic variable v.
func (s *Solver) VarPoly(v Var) *pdd.Poly {
	return pdd.VarPoly(s.vars[v].width, pdd.Var(v))
}

func (s *Solver) width(v Var) uint { return s.vars[v].width }

// --- External atom interface ---------------------------------------------

// AddEq asserts p = 0, tagged with the given external dependency (or
// NullDependency for an anonymous constraint).
func (s *Solver) AddEq(p *pdd.Poly, dep Dependency) {
	sc := s.mgr.Eq(p, s.level, dep)
	s.mgr.registerExternal(dep, sc)
	s.assertUnit(sc)
}

// AddDiseq asserts p != 0.
func (s *Solver) AddDiseq(p *pdd.Poly, dep Dependency) {
	sc := s.mgr.Eq(p, s.level, dep).Negate()
	s.mgr.registerExternal(dep, sc)
	s.assertUnit(sc)
}

// AddULE asserts p <=u q.
func (s *Solver) AddULE(p, q *pdd.Poly, dep Dependency) {
	sc := s.mgr.ULE(p, q, s.level, dep)
	s.mgr.registerExternal(dep, sc)
	s.assertUnit(sc)
}

// AddULT asserts p <u q.
func (s *Solver) AddULT(p, q *pdd.Poly, dep Dependency) {
	sc := s.mgr.ULT(p, q, s.level, dep)
	s.mgr.registerExternal(dep, sc)
	s.assertUnit(sc)
}

// AddSLE asserts p <=s q.
func (s *Solver) AddSLE(p, q *pdd.Poly, dep Dependency) {
	sc := s.mgr.SLE(p, q, s.level, dep)
	s.mgr.registerExternal(dep, sc)
	s.assertUnit(sc)
}

// AddSLT asserts p <s q.
func (s *Solver) AddSLT(p, q *pdd.Poly, dep Dependency) {
	sc := s.mgr.SLT(p, q, s.level, dep)
	s.mgr.registerExternal(dep, sc)
	s.assertUnit(sc)
}

// assertUnit stores sc as a from_unit clause and, if the Boolean variable
// is not yet assigned, assigns and awakens it immediately.
func (s *Solver) assertUnit(sc SignedConstraint) {
	cl := fromUnit(sc, sc.C.dep, s.level)
	s.clauses.store(cl)
	sc.C.unit = cl
	s.status = Indet
	if sc.isAlwaysFalse() {
		s.pendingConflict = newLemma([]Lit{sc.Negate().Lit()}, []Dependency{sc.C.dep}, s.baseLevel())
		return
	}
	if s.bvars.value(sc.C.BVar) == unknown {
		s.assignBool(sc.Lit(), s.level, cl, nil)
		s.awaken(sc) // any conflict is recorded in s.pendingConflict for CheckSat to resolve
	}
}

// AssignEh activates or deactivates a previously created external
// constraint by its dependency name. Activating asserts the positive
// occurrence; deactivating the negative occurrence.
func (s *Solver) AssignEh(dep Dependency, isTrue bool) bool {
	c, ok := s.mgr.lookupExternal(dep)
	if !ok {
		return false
	}
	sc := SignedConstraint{C: c, Neg: !isTrue}
	s.assertUnit(sc)
	return true
}

// Push opens a new user scope.
func (s *Solver) Push() {
	s.baseLvl = append(s.baseLvl, s.level)
	s.pushLevel()
}

// Pop closes n user scopes, discarding everything asserted since.
// Popping past the base level is a contract violation.
func (s *Solver) Pop(n int) {
	if n > len(s.baseLvl) {
		panic("solver: Pop called past the base level")
	}
	target := s.baseLvl[len(s.baseLvl)-n]
	s.baseLvl = s.baseLvl[:len(s.baseLvl)-n]
	s.popLevels(s.level - target)
	s.status = Indet
}

func (s *Solver) atBaseLevel() bool { return len(s.baseLvl) == 0 }

func (s *Solver) baseLevel() int {
	if len(s.baseLvl) == 0 {
		return 0
	}
	return s.baseLvl[len(s.baseLvl)-1] + 1
}

// Assignment returns every currently-assigned (pvar, value) pair.
func (s *Solver) Assignment() []struct {
	Var   Var
	Value uint64
} {
	var out []struct {
		Var   Var
		Value uint64
	}
	for v := range s.vars {
		if s.vars[v].assigned {
			out = append(out, struct {
				Var   Var
				Value uint64
			}{Var(v), s.vars[v].value})
		}
	}
	return out
}

// currentAssignment returns a snapshot assignment map, used by
// Poly.SubstVal in narrow() steps.
func (s *Solver) currentAssignment() map[pdd.Var]uint64 {
	m := make(map[pdd.Var]uint64, len(s.vars))
	for v := range s.vars {
		if s.vars[v].assigned {
			m[pdd.Var(v)] = s.vars[v].value
		}
	}
	return m
}
