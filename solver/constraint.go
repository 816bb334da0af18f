package solver

import (
	"fmt"
	"sort"

	"github.com/modsat/bvsolver/pdd"
)

// Constraint objects and their manager. Rather than an inheritance
// hierarchy of atom types, a tagged variant is used: Constraint carries
// a Kind and only the fields that kind needs, and every capability
// (narrow, is-always-false, forbidden-interval, resolve) is a method
// that switches on Kind, with polarity passed in as a parameter rather
// than baked into the object — signed occurrences share the atom.

// Kind discriminates the three atom variants.
type Kind byte

const (
	KindEq Kind = iota
	KindULE
	KindBit
)

// Constraint is one typed atom: eq(p), ule(a,b), or bit(v, set). Exactly
// one BVar names it, allocated by the manager the moment the atom is
// created or deduplicated.
type Constraint struct {
	BVar BVar
	Kind Kind

	// KindEq: P = 0.
	P *pdd.Poly

	// KindULE: A <=u B.
	A, B *pdd.Poly

	// KindBit: value(BitVar) in BitSet.
	BitVar Var
	BitSet *viableSet

	vars  []Var // touched arithmetic variables, sorted ascending
	level int   // storage level: max(external dep levels) + level at creation
	dep   Dependency

	active bool // assign_eh toggling for external (named) constraints
	unit   *Clause
}

// SignedConstraint is an occurrence of a Constraint with a polarity:
// signed/polarity information is per-occurrence, not per-object.
type SignedConstraint struct {
	C   *Constraint
	Neg bool
}

// Lit returns the Boolean literal naming this occurrence.
func (sc SignedConstraint) Lit() Lit { return sc.C.BVar.SignedLit(sc.Neg) }

// Negate returns the complementary occurrence of the same atom.
func (sc SignedConstraint) Negate() SignedConstraint { return SignedConstraint{sc.C, !sc.Neg} }

func (sc SignedConstraint) String() string {
	s := sc.C.String()
	if sc.Neg {
		return "¬(" + s + ")"
	}
	return s
}

func (c *Constraint) String() string {
	switch c.Kind {
	case KindEq:
		return fmt.Sprintf("%s = 0", c.P)
	case KindULE:
		return fmt.Sprintf("%s <=u %s", c.A, c.B)
	case KindBit:
		return fmt.Sprintf("v%d in S", c.BitVar)
	default:
		return "?"
	}
}

// Vars returns the arithmetic variables this constraint touches.
func (c *Constraint) Vars() []Var { return c.vars }

func uniqueSortedVars(lists ...[]Var) []Var {
	seen := map[Var]bool{}
	var out []Var
	for _, l := range lists {
		for _, v := range l {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func pvarsOf(p *pdd.Poly) []Var {
	vs := p.Vars()
	out := make([]Var, len(vs))
	for i, v := range vs {
		out[i] = Var(v)
	}
	return out
}

// manager is the constraint manager: it issues a fresh Boolean variable
// per atom, deduplicates structurally identical atoms, and stores
// constraints in per-level buckets for coordinated release.
type manager struct {
	bvars       *bvarTable
	constraints []*Constraint // indexed by BVar
	dedup       map[string]*Constraint
	perLevel    map[int][]*Constraint
	byDep       map[Dependency]*Constraint
}

func newManager(bvars *bvarTable) *manager {
	return &manager{
		bvars:    bvars,
		dedup:    map[string]*Constraint{},
		perLevel: map[int][]*Constraint{},
		byDep:    map[Dependency]*Constraint{},
	}
}

func dedupKeyEq(p *pdd.Poly) string     { return "eq|" + p.String() }
func dedupKeyULE(a, b *pdd.Poly) string { return "ule|" + a.String() + "|" + b.String() }

// ensureBVar returns the constraint's BVar, allocating one and recording
// the constraint if this is the first time it is seen. For a structurally
// identical atom already known, the same atom (and BVar) is reused -
// "signed occurrences share the atom."
func (m *manager) ensureBVar(key string, build func(bv BVar) *Constraint) *Constraint {
	if c, ok := m.dedup[key]; ok {
		return c
	}
	bv := m.bvars.newVar()
	c := build(bv)
	for len(m.constraints) <= int(bv) {
		m.constraints = append(m.constraints, nil)
	}
	m.constraints[bv] = c
	m.dedup[key] = c
	m.perLevel[c.level] = append(m.perLevel[c.level], c)
	return c
}

func (m *manager) lookup(l Lit) SignedConstraint {
	c := m.constraints[l.Var()]
	return SignedConstraint{C: c, Neg: !l.IsPositive()}
}

func (m *manager) registerExternal(dep Dependency, sc SignedConstraint) {
	if dep == NullDependency {
		return
	}
	sc.C.dep = dep
	m.byDep[dep] = sc.C
}

func (m *manager) lookupExternal(dep Dependency) (*Constraint, bool) {
	c, ok := m.byDep[dep]
	return c, ok
}

// releaseLevel drops every constraint whose storage level exceeds l:
// dropped when the level is popped below their storage level.
func (m *manager) releaseLevel(l int) {
	for lvl, cs := range m.perLevel {
		if lvl <= l {
			continue
		}
		for _, c := range cs {
			delete(m.dedup, constraintDedupKey(c))
			if c.dep != NullDependency {
				delete(m.byDep, c.dep)
			}
		}
		delete(m.perLevel, lvl)
	}
}

func constraintDedupKey(c *Constraint) string {
	switch c.Kind {
	case KindEq:
		return dedupKeyEq(c.P)
	case KindULE:
		return dedupKeyULE(c.A, c.B)
	default:
		return fmt.Sprintf("bit|%d|%p", c.BitVar, c)
	}
}

// --- Atom constructors -------------------------------------------------

// Eq builds (or reuses) the atom "p = 0" and returns its positive
// occurrence.
func (m *manager) Eq(p *pdd.Poly, level int, dep Dependency) SignedConstraint {
	c := m.ensureBVar(dedupKeyEq(p), func(bv BVar) *Constraint {
		return &Constraint{BVar: bv, Kind: KindEq, P: p, vars: pvarsOf(p), level: level, dep: dep, active: true}
	})
	return SignedConstraint{C: c, Neg: false}
}

// ULE builds (or reuses) the atom "a <=u b" and returns its positive
// occurrence.
func (m *manager) ULE(a, b *pdd.Poly, level int, dep Dependency) SignedConstraint {
	c := m.ensureBVar(dedupKeyULE(a, b), func(bv BVar) *Constraint {
		return &Constraint{BVar: bv, Kind: KindULE, A: a, B: b, vars: uniqueSortedVars(pvarsOf(a), pvarsOf(b)), level: level, dep: dep, active: true}
	})
	return SignedConstraint{C: c, Neg: false}
}

// ULT builds "a <u b", encoded as ¬ule(b,a).
func (m *manager) ULT(a, b *pdd.Poly, level int, dep Dependency) SignedConstraint {
	return m.ULE(b, a, level, dep).Negate()
}

// shiftHighBit returns p XOR 2^(w-1): the standard bit-vector encoding
// that turns signed comparison into unsigned comparison on the
// high-bit-flipped operands.
func shiftHighBit(p *pdd.Poly) *pdd.Poly {
	w := p.Width
	hibit := uint64(1) << (w - 1)
	return pdd.Add(p, pdd.Const(w, hibit))
}

// SLE builds "a <=s b" as ule(a XOR 2^(w-1), b XOR 2^(w-1)).
func (m *manager) SLE(a, b *pdd.Poly, level int, dep Dependency) SignedConstraint {
	return m.ULE(shiftHighBit(a), shiftHighBit(b), level, dep)
}

// SLT builds "a <s b" as ult(a XOR 2^(w-1), b XOR 2^(w-1)).
func (m *manager) SLT(a, b *pdd.Poly, level int, dep Dependency) SignedConstraint {
	return m.ULT(shiftHighBit(a), shiftHighBit(b), level, dep)
}

// Bit builds the atom "value(v) in set": a direct viable-set restriction.
// Unlike Eq and ULE it is not deduplicated: every call allocates a fresh
// atom and BVar.
func (m *manager) Bit(v Var, set *viableSet, level int, dep Dependency) SignedConstraint {
	bv := m.bvars.newVar()
	c := &Constraint{BVar: bv, Kind: KindBit, BitVar: v, BitSet: set, vars: []Var{v}, level: level, dep: dep, active: true}
	for len(m.constraints) <= int(bv) {
		m.constraints = append(m.constraints, nil)
	}
	m.constraints[bv] = c
	m.perLevel[level] = append(m.perLevel[level], c)
	return SignedConstraint{C: c, Neg: false}
}
