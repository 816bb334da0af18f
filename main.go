package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/modsat/bvsolver/solver"
)

func main() {
	debug.SetGCPercent(300)
	var (
		verbose bool
		core    bool
	)
	flag.BoolVar(&verbose, "verbose", false, "sets verbose mode on")
	flag.BoolVar(&core, "core", false, "on unsat, print the dependencies of the unsat core")
	flag.Parse()
	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Syntax : %s [options] file.bv\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Args()[0]
	fmt.Printf("c solving %s\n", path)
	if err := runFile(path, verbose, core); err != nil {
		fmt.Fprintf(os.Stderr, "could not solve %q: %v\n", path, err)
		os.Exit(1)
	}
}

func runFile(path string, verbose, core bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	script, err := Parse(f)
	if err != nil {
		return fmt.Errorf("could not parse script: %w", err)
	}
	s := solver.New()
	if err := Run(s, script); err != nil {
		return err
	}
	if verbose {
		fmt.Printf("c iterations: %d\nc decisions: %d\nc conflicts: %d\n", s.Stats.Iterations, s.Stats.Decisions, s.Stats.Conflicts)
		fmt.Printf("c propagations: %d\nc bailouts: %d\n", s.Stats.Propagations, s.Stats.Bailouts)
	}
	if core {
		if deps := s.UnsatCore(); deps != nil {
			fmt.Printf("c unsat core: %v\n", deps)
		}
	}
	return nil
}
