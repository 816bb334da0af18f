package solver

import "github.com/modsat/bvsolver/pdd"

// Forbidden-interval explanation. Given the set of constraint
// occurrences that jointly emptied some pvar's viable set, this finds
// the smallest subsequence whose forbidden intervals cover the whole
// domain [0, 2^w) and turns it directly into a falsified clause: since
// those occurrences are all currently true, and their forbidden
// intervals jointly rule out every value of v, the disjunction of their
// negations is valid and, being built entirely from currently-true
// premises, is itself falsified - exactly the conflicting clause
// ordinary first-UIP resolution then consumes.

type ivSource struct {
	sc SignedConstraint
	iv fiInterval
}

// explainInterval builds the falsified clause explaining why v's viable
// set became empty, from the justifying occurrences in justifying (each
// one a constraint that touched v's viable set on the way to the
// conflict). assign must bind every other variable each occurrence
// touches. It always succeeds: when no closed-form covering subsequence
// can be found (some occurrence has no interval form, or the closed-form
// ones don't cover the domain on their own), it falls back to the full,
// unminimized set - still sound, since by hypothesis the intersection of
// every occurrence's allowed set is already empty.
func explainInterval(width uint, justifying []SignedConstraint, v Var, assign map[pdd.Var]uint64) *Clause {
	var sources []ivSource
	var bailouts []SignedConstraint
	for _, sc := range justifying {
		iv, ok := sc.forbiddenInterval(v, width, assign)
		if !ok {
			bailouts = append(bailouts, sc)
			continue
		}
		if iv.full {
			// A single occurrence already falsifies every value: done.
			return clauseFromSources([]ivSource{{sc, iv}})
		}
		if iv.emptyNow {
			continue // contributes nothing to the cover
		}
		sources = append(sources, ivSource{sc, iv})
	}
	if len(bailouts) == 0 {
		if cover, ok := coveringSequence(width, sources); ok {
			return clauseFromSources(cover)
		}
	}
	// Fall back to the full justifying set: still sound, just unminimized.
	all := append(append([]ivSource{}, sources...))
	lits := make([]Lit, 0, len(all)+len(bailouts))
	var deps []Dependency
	for _, s := range all {
		lits = append(lits, s.sc.Negate().Lit())
		deps = joinDeps(deps, []Dependency{s.sc.C.dep})
	}
	for _, sc := range bailouts {
		lits = append(lits, sc.Negate().Lit())
		deps = joinDeps(deps, []Dependency{sc.C.dep})
	}
	return newLemma(lits, deps, 0)
}

// coveringSequence implements a farthest-extension greedy search:
// starting at baseline 0, repeatedly extend the covered prefix
// [0, frontier) by picking, among intervals whose lo lies at or before
// frontier, the one reaching farthest forward; ties broken by reverse
// insertion order (later additions preferred). Stops when frontier wraps
// back past the baseline (full cover) or no interval
// extends it further (no cover).
func coveringSequence(width uint, sources []ivSource) ([]ivSource, bool) {
	if len(sources) == 0 {
		return nil, false
	}
	used := make([]bool, len(sources))
	var cover []ivSource
	frontier := uint64(0)
	covered := uint64(0)
	domain := ivModulus(width)
	for {
		best := -1
		var bestReach uint64
		for i := len(sources) - 1; i >= 0; i-- {
			if used[i] {
				continue
			}
			iv := sources[i].iv
			if !intervalStartsAtOrBefore(iv, frontier, width) {
				continue
			}
			reach := advanceFrom(iv, frontier, width)
			if best == -1 || reachFarther(reach, bestReach, frontier, width) {
				best = i
				bestReach = reach
			}
		}
		if best == -1 {
			return nil, false
		}
		used[best] = true
		cover = append(cover, sources[best])
		advanced := spanFrom(frontier, bestReach, width)
		covered += advanced
		frontier = bestReach
		if domain == 0 {
			if covered >= ^uint64(0) {
				return cover, true
			}
		} else if covered >= domain {
			return cover, true
		}
		if advanced == 0 {
			return nil, false
		}
	}
}

// intervalStartsAtOrBefore reports whether iv's lo is within the already
// covered region ending at frontier, i.e. whether it can extend the
// cover without leaving a gap.
func intervalStartsAtOrBefore(iv fiInterval, frontier uint64, width uint) bool {
	if iv.full {
		return true
	}
	lo := modW(iv.lo, width)
	return lo == frontier || distanceBack(lo, frontier, width) < distanceBack(frontier, lo, width) || lo == 0 && frontier == 0
}

// distanceBack returns how far back from b one must walk (mod 2^w) to
// reach a.
func distanceBack(a, b uint64, width uint) uint64 {
	mod := ivModulus(width)
	if mod == 0 {
		return b - a
	}
	return (b - a + mod) % mod
}

// advanceFrom returns the farthest point iv reaches when used to extend
// coverage starting at frontier.
func advanceFrom(iv fiInterval, frontier uint64, width uint) uint64 {
	if iv.full {
		return frontier // already covers everything; spanFrom handles it
	}
	return iv.hi
}

func spanFrom(frontier, reach uint64, width uint) uint64 {
	mod := ivModulus(width)
	if mod == 0 {
		return reach - frontier
	}
	return (reach - frontier + mod) % mod
}

func reachFarther(a, b, frontier uint64, width uint) bool {
	return spanFrom(frontier, a, width) > spanFrom(frontier, b, width)
}

func clauseFromSources(sources []ivSource) *Clause {
	lits := make([]Lit, len(sources))
	var deps []Dependency
	for i, s := range sources {
		lits[i] = s.sc.Negate().Lit()
		deps = joinDeps(deps, []Dependency{s.sc.C.dep})
	}
	return newLemma(lits, deps, 0)
}
