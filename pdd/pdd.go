// Package pdd implements the polynomial manager collaborator: reduced
// polynomials over arithmetic variables, with coefficients taken modulo
// 2^w for a fixed bit-width w. It is a from-scratch kernel built
// directly on slices and integer arithmetic rather than a computer-
// algebra library, since none is available.
package pdd

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Var is the index of an arithmetic variable, shared with package solver's
// pvar numbering.
type Var int32

// mask returns the bitmask for a width-w modulus 2^w. Widths above 64 are
// not supported: values are represented in native machine words.
func mask(w uint) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// factor is one (variable, exponent) pair in a monomial. Exponent is >= 1.
type factor struct {
	v   Var
	deg uint32
}

// term is a coefficient times a monomial (product of factors, each
// variable appearing at most once per monomial, with its total degree).
type term struct {
	factors []factor // sorted by Var ascending, deg fully combined
	coeff   uint64
}

func (t term) key() string {
	var sb strings.Builder
	for _, f := range t.factors {
		fmt.Fprintf(&sb, "%d^%d|", f.v, f.deg)
	}
	return sb.String()
}

// Poly is a reduced polynomial modulo 2^Width over arithmetic variables.
// The zero value is not valid; use New or Const.
type Poly struct {
	Width uint
	terms map[string]term
}

// New returns the zero polynomial of the given bit-width.
func New(width uint) *Poly {
	return &Poly{Width: width, terms: map[string]term{}}
}

// Const returns the constant polynomial c, reduced mod 2^width.
func Const(width uint, c uint64) *Poly {
	p := New(width)
	c &= mask(width)
	if c != 0 {
		p.terms[""] = term{coeff: c}
	}
	return p
}

// VarPoly returns the degree-1 polynomial naming v.
func VarPoly(width uint, v Var) *Poly {
	p := New(width)
	t := term{factors: []factor{{v: v, deg: 1}}, coeff: 1}
	p.terms[t.key()] = t
	return p
}

func (p *Poly) clone() *Poly {
	q := New(p.Width)
	for k, t := range p.terms {
		ft := make([]factor, len(t.factors))
		copy(ft, t.factors)
		q.terms[k] = term{factors: ft, coeff: t.coeff}
	}
	return q
}

func mulFactors(a, b []factor) []factor {
	deg := map[Var]uint32{}
	for _, f := range a {
		deg[f.v] += f.deg
	}
	for _, f := range b {
		deg[f.v] += f.deg
	}
	vars := make([]Var, 0, len(deg))
	for v := range deg {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	out := make([]factor, 0, len(vars))
	for _, v := range vars {
		out = append(out, factor{v: v, deg: deg[v]})
	}
	return out
}

func (p *Poly) addTerm(t term) {
	t.coeff &= mask(p.Width)
	if t.coeff == 0 {
		return
	}
	k := t.key()
	if ex, ok := p.terms[k]; ok {
		ex.coeff = (ex.coeff + t.coeff) & mask(p.Width)
		if ex.coeff == 0 {
			delete(p.terms, k)
		} else {
			p.terms[k] = ex
		}
		return
	}
	p.terms[k] = t
}

// Add returns a+b. Both must share the same width.
func Add(a, b *Poly) *Poly {
	r := a.clone()
	for _, t := range b.terms {
		r.addTerm(t)
	}
	return r
}

// Neg returns -a mod 2^w.
func Neg(a *Poly) *Poly {
	r := New(a.Width)
	m := mask(a.Width)
	for k, t := range a.terms {
		r.terms[k] = term{factors: t.factors, coeff: (^t.coeff + 1) & m}
	}
	return r
}

// Sub returns a-b.
func Sub(a, b *Poly) *Poly {
	return Add(a, Neg(b))
}

// Mul returns a*b.
func Mul(a, b *Poly) *Poly {
	r := New(a.Width)
	for _, ta := range a.terms {
		for _, tb := range b.terms {
			r.addTerm(term{
				factors: mulFactors(ta.factors, tb.factors),
				coeff:   ta.coeff * tb.coeff,
			})
		}
	}
	return r
}

// MulConst returns c*a mod 2^w.
func MulConst(a *Poly, c uint64) *Poly {
	return Mul(a, Const(a.Width, c))
}

// Vars returns the distinct variables occurring in p, sorted ascending.
func (p *Poly) Vars() []Var {
	seen := map[Var]bool{}
	for _, t := range p.terms {
		for _, f := range t.factors {
			seen[f.v] = true
		}
	}
	out := make([]Var, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsVal reports whether p is a constant, and its value if so.
func (p *Poly) IsVal() (uint64, bool) {
	if len(p.terms) == 0 {
		return 0, true
	}
	if len(p.terms) == 1 {
		if t, ok := p.terms[""]; ok {
			return t.coeff, true
		}
	}
	return 0, false
}

// Val is a convenience wrapper around IsVal that panics if p is not a value;
// it mirrors pdd::val() from the reference design, which is only ever called
// after a prior is_val() check.
func (p *Poly) Val() uint64 {
	v, ok := p.IsVal()
	if !ok {
		panic("pdd: Val called on a non-constant polynomial")
	}
	return v
}

// IsUnilinear reports whether p can be written as hi*v + lo for a single
// variable v appearing with degree exactly 1, with hi, lo constants.
// It returns ok=false for multivariate polynomials and for polynomials
// where the sole variable appears with degree != 1 anywhere (e.g. a^2).
func (p *Poly) IsUnilinear() (v Var, hi uint64, lo uint64, ok bool) {
	vars := p.Vars()
	if len(vars) != 1 {
		return 0, 0, 0, false
	}
	v = vars[0]
	var hiAcc uint64
	var loConst uint64
	for _, t := range p.terms {
		switch {
		case len(t.factors) == 0:
			loConst = (loConst + t.coeff) & mask(p.Width)
		case len(t.factors) == 1 && t.factors[0].v == v && t.factors[0].deg == 1:
			hiAcc = (hiAcc + t.coeff) & mask(p.Width)
		default:
			return 0, 0, 0, false
		}
	}
	return v, hiAcc, loConst, true
}

// Factor extracts p = coeff*v + rest, where coeff and rest do not mention v,
// provided v occurs in p with degree at most 1 throughout. ok is false if v
// appears with degree >= 2 anywhere (Factor cannot linearly isolate it).
func (p *Poly) Factor(v Var) (coeff *Poly, rest *Poly, ok bool) {
	coeff = New(p.Width)
	rest = New(p.Width)
	for _, t := range p.terms {
		deg := uint32(0)
		var others []factor
		for _, f := range t.factors {
			if f.v == v {
				deg = f.deg
			} else {
				others = append(others, f)
			}
		}
		switch deg {
		case 0:
			rest.addTerm(term{factors: others, coeff: t.coeff})
		case 1:
			coeff.addTerm(term{factors: others, coeff: t.coeff})
		default:
			return nil, nil, false
		}
	}
	return coeff, rest, true
}

// TryDiv attempts exact division of p by the constant c, modulo 2^w. It
// succeeds when c is odd (hence invertible mod 2^w) or, for even c, when
// every coefficient of p is itself divisible by c exactly (checked via
// trailing-zero counts). This mirrors pdd::try_div's "division by a
// coefficient" contract.
func TryDiv(p *Poly, c uint64) (*Poly, bool) {
	if c == 0 {
		return nil, false
	}
	m := mask(p.Width)
	c &= m
	if c&1 == 1 {
		inv, ok := modInverse(c, p.Width)
		if !ok {
			return nil, false
		}
		return MulConst(p, inv), true
	}
	// Even divisor: require every term to be exactly divisible.
	q := New(p.Width)
	cz := bits.TrailingZeros64(c)
	for k, t := range p.terms {
		if t.coeff == 0 {
			continue
		}
		tz := bits.TrailingZeros64(t.coeff)
		if tz < cz {
			return nil, false
		}
		// c = cOdd * 2^cz ; divide t.coeff by 2^cz first, then by cOdd.
		reduced := t.coeff >> uint(cz)
		cOdd := c >> uint(cz)
		inv, ok := modInverse(cOdd, p.Width)
		if !ok {
			return nil, false
		}
		q.terms[k] = term{factors: t.factors, coeff: (reduced * inv) & m}
	}
	return q, true
}

// modInverse returns the multiplicative inverse of the odd value a modulo
// 2^w, computed via the standard Newton-iteration for 2-adic inverses.
func modInverse(a uint64, w uint) (uint64, bool) {
	if a&1 == 0 {
		return 0, false
	}
	m := mask(w)
	x := a // initial approximation, correct mod 2^2 for any odd a
	for i := 0; i < 6; i++ {
		x = x * (2 - a*x)
	}
	return x & m, true
}

// ModInverse returns a's multiplicative inverse modulo 2^w, succeeding
// for odd a. Exported so callers solving a single linear equation over
// the same ring (e.g. the solver package's narrow/forbidden-interval
// routines) don't need their own copy of the Newton iteration.
func ModInverse(a uint64, w uint) (uint64, bool) { return modInverse(a, w) }

// Mask returns the bitmask for a width-w modulus, exported for the same
// reason as ModInverse.
func Mask(w uint) uint64 { return mask(w) }

// Resolve eliminates v between p=0 and q=0 by cross-multiplying their
// linear decompositions: if p = cp*v + rp and q = cq*v + rq, then
// cq*p - cp*q = cq*rp - cp*rq no longer mentions v, and p=0 && q=0 implies
// it equals zero. This needs no invertibility assumption (unlike dividing),
// which is why it is the workhorse of the superposition explainer.
func Resolve(v Var, p, q *Poly) (*Poly, bool) {
	cp, rp, ok := p.Factor(v)
	if !ok {
		return nil, false
	}
	cq, rq, ok := q.Factor(v)
	if !ok {
		return nil, false
	}
	return Sub(Mul(cq, rp), Mul(cp, rq)), true
}

// SubstVal substitutes the given variable assignment into p, returning a
// new, reduced polynomial with every assigned variable eliminated.
func (p *Poly) SubstVal(assign map[Var]uint64) *Poly {
	r := New(p.Width)
	m := mask(p.Width)
	for _, t := range p.terms {
		coeff := t.coeff
		var remaining []factor
		for _, f := range t.factors {
			if val, ok := assign[f.v]; ok {
				coeff = (coeff * powMod(val, f.deg, m)) & m
			} else {
				remaining = append(remaining, f)
			}
		}
		r.addTerm(term{factors: remaining, coeff: coeff})
	}
	return r
}

func powMod(base uint64, exp uint32, m uint64) uint64 {
	result := uint64(1) & m
	base &= m
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) & m
		}
		base = (base * base) & m
		exp >>= 1
	}
	return result
}

// Eval fully evaluates p, given a total assignment of every variable it
// mentions. It panics if some variable remains unassigned (callers should
// check Vars() against the assignment first, as the solver does when
// querying a fully-bound model).
func (p *Poly) Eval(assign map[Var]uint64) uint64 {
	r := p.SubstVal(assign)
	v, ok := r.IsVal()
	if !ok {
		panic("pdd: Eval called with a partial assignment")
	}
	return v
}

// String renders p in a debug-friendly form for printf-style inspection
// rather than any wire format.
func (p *Poly) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		t := p.terms[k]
		if len(t.factors) == 0 {
			parts = append(parts, fmt.Sprintf("%d", t.coeff))
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d", t.coeff)
		for _, f := range t.factors {
			fmt.Fprintf(&sb, "*v%d^%d", f.v, f.deg)
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " + ")
}

// Equal reports structural (post-reduction) equality of two polynomials.
func Equal(a, b *Poly) bool {
	d := Sub(a, b)
	return len(d.terms) == 0
}
