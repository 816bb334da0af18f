// Package explain provides facilities to understand an UNSAT instance,
// kept deliberately independent of the live solver's performance-
// sensitive internals so that this code can stay as simple as possible
// and easy to audit. It works from what the solver package exposes for
// this purpose: externally tagged dependencies and incremental
// assert/Push/Pop.
package explain

import (
	"fmt"

	"github.com/modsat/bvsolver/solver"
)

// Options is a set of options that can be set to true during MUS
// extraction.
type Options struct {
	// Verbose, if true, prints progress to stdout during extraction.
	Verbose bool
}

// Fact is one externally named assertion: Dep is the tag that will show
// up in a solver.UnsatCore result, and Assert performs the actual
// solver.AddEq/AddULE/etc. call against a given solver.
type Fact struct {
	Dep    solver.Dependency
	Assert func(s *solver.Solver)
}

// MUS returns a Minimal Unsatisfiable Subset of facts: removing any one
// of its members would make the problem satisfiable. build must return a
// fresh, otherwise-empty solver (variables already declared) each time
// it is called; MUS calls it once per fact plus one more time up front.
// This engine supports incremental assert natively, so dropping a fact
// needs no relax-literal encoding, just omitting its Assert call.
func MUS(build func() *solver.Solver, facts []Fact, opts Options) ([]solver.Dependency, error) {
	kept := make([]bool, len(facts))
	for i := range kept {
		kept[i] = true
	}
	if status := assertSubset(build, facts, kept); status != solver.Unsat {
		return nil, fmt.Errorf("explain: problem is not unsat")
	}
	for i := range facts {
		kept[i] = false
		status := assertSubset(build, facts, kept)
		if status == solver.Unsat {
			if opts.Verbose {
				fmt.Printf("explain: dropped dependency %v, still unsat\n", facts[i].Dep)
			}
			continue
		}
		kept[i] = true // dropping it lost unsatisfiability: keep it
		if opts.Verbose {
			fmt.Printf("explain: kept dependency %v\n", facts[i].Dep)
		}
	}
	var mus []solver.Dependency
	for i, k := range kept {
		if k {
			mus = append(mus, facts[i].Dep)
		}
	}
	return mus, nil
}

func assertSubset(build func() *solver.Solver, facts []Fact, kept []bool) solver.Status {
	s := build()
	for i, f := range facts {
		if kept[i] {
			f.Assert(s)
		}
	}
	return s.CheckSat()
}
