// Package solver implements the bit-vector CDCL decision procedure: a
// model-constructing search over arithmetic variables, interleaved with
// Boolean assignment of literals naming constraints, narrowed through a
// watched-variable scheme, and driven by conflict analysis that
// alternates forbidden-interval and polynomial-superposition explanation.
// The architecture follows a conventional CDCL SAT solver shape (watch
// lists, a clause arena, an activity-ordered decision queue) generalized
// from propositional literals to typed arithmetic constraints over
// fixed-width modular integers.
package solver

// Describes basic types and constants used throughout the solver.

// Status is the three-way answer to check_sat: sat, unsat, or undef
// (resource limit reached before either was decided).
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet (mid-search).
	Indet = Status(iota)
	// Sat means a satisfying model was found.
	Sat
	// Unsat means the problem was proven unsatisfiable.
	Unsat
	// Undef means the resource limit tripped before a verdict was reached.
	Undef
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Undef:
		return "UNDEF"
	default:
		panic("invalid status")
	}
}

// Var is an arithmetic variable index ("pvar"), in [0, N). A Var is a
// modular integer of its own declared bit-width, distinct from a Boolean
// variable naming a CNF-style literal.
type Var int32

// BVar is a Boolean variable index: the manager allocates exactly one per
// constraint atom.
type BVar int32

// Lit is a signed Boolean literal over a BVar. Even values are positive,
// odd values are negated, generalized here to name constraint occurrences
// instead of CNF literals.
type Lit int32

// PosLit returns the positive literal naming v.
func (v BVar) PosLit() Lit { return Lit(v * 2) }

// NegLit returns the negated literal naming v.
func (v BVar) NegLit() Lit { return Lit(v*2) + 1 }

// SignedLit returns v's literal, negated if neg is true.
func (v BVar) SignedLit(neg bool) Lit {
	if neg {
		return v.NegLit()
	}
	return v.PosLit()
}

// Var returns the Boolean variable named by l.
func (l Lit) Var() BVar { return BVar(l / 2) }

// IsPositive reports whether l is the unnegated occurrence of its variable.
func (l Lit) IsPositive() bool { return l%2 == 0 }

// Negation returns the complementary literal.
func (l Lit) Negation() Lit { return l ^ 1 }

// triState is a three-valued Boolean: unknown, isTrue, or isFalse, used by
// the Boolean-variable assignment table.
type triState byte

const (
	unknown triState = iota
	isTrue
	isFalse
)

func (t triState) String() string {
	switch t {
	case isTrue:
		return "true"
	case isFalse:
		return "false"
	default:
		return "unknown"
	}
}

// Dependency is an opaque external name for an asserted constraint, used
// purely for unsat-core reporting. The zero value, NullDependency, names
// an anonymous constraint.
type Dependency int

// NullDependency marks a constraint with no externally visible name.
const NullDependency Dependency = 0

// joinDeps merges dependency tags from two premises into a lemma's
// dependency set: a derived lemma's dependency set is simply the union of
// its premises' tags, deduplicated.
func joinDeps(sets ...[]Dependency) []Dependency {
	seen := make(map[Dependency]bool)
	var out []Dependency
	for _, ds := range sets {
		for _, d := range ds {
			if d == NullDependency || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
