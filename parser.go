package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/modsat/bvsolver/pdd"
	"github.com/modsat/bvsolver/solver"
)

// A small text assertion format: one statement per line; lines starting
// with '#' are comments, and blank lines are skipped. Polynomials are written as ordinary infix sum-of-
// products expressions over declared variable names and integer
// constants; a relational statement separates its two sides with '|'.
//
//	width 8
//	var x
//	var y
//	eq x + 3 - y
//	ule x | y * y
//	check
//
// Grammar (ASCII only, whitespace-separated tokens):
//
//	stmt   := "width" NUMBER
//	        | "var" NAME
//	        | ("eq"|"diseq") expr
//	        | ("ule"|"ult"|"sle"|"slt") expr "|" expr
//	        | "push" | "pop" NUMBER | "check"
//	expr   := term (("+"|"-") term)*
//	term   := factor ("*" factor)*
//	factor := NUMBER | NAME ("^" NUMBER)?

// Script is a parsed sequence of statements ready to drive a solver.
type Script struct {
	stmts []stmt
}

type stmtKind byte

const (
	stVar stmtKind = iota
	stEq
	stDiseq
	stULE
	stULT
	stSLE
	stSLT
	stPush
	stPop
	stCheck
)

type stmt struct {
	kind   stmtKind
	name   string
	width  uint
	lhs    []string
	rhs    []string
	popN   int
	dep    int
}

// Parse reads a script from r.
func Parse(r io.Reader) (*Script, error) {
	sc := bufio.NewScanner(r)
	width := uint(8)
	var script Script
	depCounter := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "width":
			w, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad width: %v", lineNo, err)
			}
			width = uint(w)
		case "var":
			script.stmts = append(script.stmts, stmt{kind: stVar, name: fields[1], width: width})
		case "eq", "diseq":
			k := stEq
			if fields[0] == "diseq" {
				k = stDiseq
			}
			depCounter++
			script.stmts = append(script.stmts, stmt{kind: k, lhs: fields[1:], dep: depCounter})
		case "ule", "ult", "sle", "slt":
			lhs, rhs, err := splitSides(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", lineNo, err)
			}
			k := map[string]stmtKind{"ule": stULE, "ult": stULT, "sle": stSLE, "slt": stSLT}[fields[0]]
			depCounter++
			script.stmts = append(script.stmts, stmt{kind: k, lhs: lhs, rhs: rhs, dep: depCounter})
		case "push":
			script.stmts = append(script.stmts, stmt{kind: stPush})
		case "pop":
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad pop count: %v", lineNo, err)
			}
			script.stmts = append(script.stmts, stmt{kind: stPop, popN: n})
		case "check":
			script.stmts = append(script.stmts, stmt{kind: stCheck})
		default:
			return nil, fmt.Errorf("line %d: unknown statement %q", lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read script: %w", err)
	}
	return &script, nil
}

func splitSides(fields []string) (lhs, rhs []string, err error) {
	for i, f := range fields {
		if f == "|" {
			return fields[:i], fields[i+1:], nil
		}
	}
	return nil, nil, fmt.Errorf("expected '|' separating both sides of a relation")
}

// Run executes the script against s, printing "check_sat" results as it
// goes, one line per query rather than buffering output.
func Run(s *solver.Solver, script *Script) error {
	env := map[string]solver.Var{}
	for _, st := range script.stmts {
		switch st.kind {
		case stVar:
			env[st.name] = s.AddVar(st.width)
		case stEq, stDiseq:
			p, err := parseExpr(st.lhs, env, s)
			if err != nil {
				return err
			}
			if st.kind == stEq {
				s.AddEq(p, solver.Dependency(st.dep))
			} else {
				s.AddDiseq(p, solver.Dependency(st.dep))
			}
		case stULE, stULT, stSLE, stSLT:
			a, err := parseExpr(st.lhs, env, s)
			if err != nil {
				return err
			}
			b, err := parseExpr(st.rhs, env, s)
			if err != nil {
				return err
			}
			dep := solver.Dependency(st.dep)
			switch st.kind {
			case stULE:
				s.AddULE(a, b, dep)
			case stULT:
				s.AddULT(a, b, dep)
			case stSLE:
				s.AddSLE(a, b, dep)
			case stSLT:
				s.AddSLT(a, b, dep)
			}
		case stPush:
			s.Push()
		case stPop:
			s.Pop(st.popN)
		case stCheck:
			fmt.Println(s.CheckSat())
		}
	}
	return nil
}

// parseExpr parses a polynomial over env's variables using the width of
// the first variable it references (defaulting to 8 for purely constant
// expressions), via simple left-to-right sum-of-products evaluation.
func parseExpr(tokens []string, env map[string]solver.Var, s *solver.Solver) (*pdd.Poly, error) {
	width, err := exprWidth(tokens, env, s)
	if err != nil {
		return nil, err
	}
	p := pdd.Const(width, 0)
	sign := int64(1)
	i := 0
	for i < len(tokens) {
		switch tokens[i] {
		case "+":
			sign = 1
			i++
			continue
		case "-":
			sign = -1
			i++
			continue
		}
		term, consumed, err := parseTerm(tokens[i:], env, s, width)
		if err != nil {
			return nil, err
		}
		if sign < 0 {
			term = pdd.Neg(term)
		}
		p = pdd.Add(p, term)
		i += consumed
		sign = 1
	}
	return p, nil
}

func exprWidth(tokens []string, env map[string]solver.Var, s *solver.Solver) (uint, error) {
	for _, t := range tokens {
		base := strings.SplitN(t, "^", 2)[0]
		if v, ok := env[base]; ok {
			return s.VarPoly(v).Width, nil
		}
	}
	return 8, nil
}

// parseTerm parses one "factor (* factor)*" term starting at tokens[0],
// returning the built polynomial and how many tokens it consumed.
func parseTerm(tokens []string, env map[string]solver.Var, s *solver.Solver, width uint) (*pdd.Poly, int, error) {
	p, err := parseFactor(tokens[0], env, s, width)
	if err != nil {
		return nil, 0, err
	}
	i := 1
	for i < len(tokens) && tokens[i] == "*" {
		if i+1 >= len(tokens) {
			return nil, 0, fmt.Errorf("dangling '*' in expression")
		}
		f, err := parseFactor(tokens[i+1], env, s, width)
		if err != nil {
			return nil, 0, err
		}
		p = pdd.Mul(p, f)
		i += 2
	}
	return p, i, nil
}

func parseFactor(tok string, env map[string]solver.Var, s *solver.Solver, width uint) (*pdd.Poly, error) {
	parts := strings.SplitN(tok, "^", 2)
	if v, ok := env[parts[0]]; ok {
		base := s.VarPoly(v)
		if len(parts) == 1 {
			return base, nil
		}
		deg, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad exponent in %q: %v", tok, err)
		}
		p := pdd.Const(width, 1)
		for i := 0; i < deg; i++ {
			p = pdd.Mul(p, base)
		}
		return p, nil
	}
	n, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unknown identifier or bad constant %q", tok)
	}
	return pdd.Const(width, n), nil
}
