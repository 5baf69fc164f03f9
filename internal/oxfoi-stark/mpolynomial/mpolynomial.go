// Package mpolynomial implements sparse multivariate polynomials over
// the Oxfoi field, following the monomial-exponent-vector-to-
// coefficient map the Rescue-Prime AIR construction
// (rescue.AIRConstraints) relies on to express transition identities
// in 1+2m variables.
package mpolynomial

import (
	"fmt"
	"strings"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/polynomial"
)

// Polynomial maps a monomial's exponent vector to its non-zero
// coefficient. The arity (length of every exponent vector) is fixed
// at construction; zero coefficients are never stored.
type Polynomial struct {
	arity int
	terms map[string]term
}

type term struct {
	exponents []int
	coeff     field.Element
}

func key(exponents []int) string {
	parts := make([]string, len(exponents))
	for i, e := range exponents {
		parts[i] = fmt.Sprintf("%d", e)
	}
	return strings.Join(parts, ",")
}

// FromConstant returns the zero-arity-independent constant
// polynomial c (exponent vector all zero).
func FromConstant(c field.Element, arity int) Polynomial {
	p := Polynomial{arity: arity, terms: map[string]term{}}
	if !c.IsZero() {
		exps := make([]int, arity)
		p.terms[key(exps)] = term{exponents: exps, coeff: c}
	}
	return p
}

// Zero returns the zero polynomial of the given arity.
func Zero(arity int) Polynomial {
	return Polynomial{arity: arity, terms: map[string]term{}}
}

// Variables returns n single-variable polynomials X1..Xn, each with
// coefficient one on its own axis.
func Variables(n int) []Polynomial {
	out := make([]Polynomial, n)
	for i := 0; i < n; i++ {
		exps := make([]int, n)
		exps[i] = 1
		p := Polynomial{arity: n, terms: map[string]term{}}
		p.terms[key(exps)] = term{exponents: exps, coeff: field.One()}
		out[i] = p
	}
	return out
}

// Arity returns the fixed number of variables this polynomial is
// defined over.
func (p Polynomial) Arity() int { return p.arity }

// IsZero reports whether p has no non-zero terms.
func (p Polynomial) IsZero() bool { return len(p.terms) == 0 }

// Evaluate returns the polynomial's value at the given point, a
// length-arity slice of field elements: sum over terms of
// coefficient * product(point[i]^exponent[i]).
func (p Polynomial) Evaluate(point []field.Element) (field.Element, error) {
	if len(point) != p.arity {
		return field.Zero(), ErrArityMismatch
	}
	acc := field.Zero()
	for _, t := range p.terms {
		monomial := field.One()
		for i, exp := range t.exponents {
			monomial = monomial.Mul(point[i].ModPow(uint64(exp)))
		}
		acc = acc.Add(t.coeff.Mul(monomial))
	}
	return acc, nil
}

func (p Polynomial) clone() Polynomial {
	out := Polynomial{arity: p.arity, terms: make(map[string]term, len(p.terms))}
	for k, t := range p.terms {
		out.terms[k] = t
	}
	return out
}

func (p Polynomial) addTerm(exponents []int, coeff field.Element) {
	if coeff.IsZero() {
		return
	}
	k := key(exponents)
	if existing, ok := p.terms[k]; ok {
		sum := existing.coeff.Add(coeff)
		if sum.IsZero() {
			delete(p.terms, k)
		} else {
			p.terms[k] = term{exponents: exponents, coeff: sum}
		}
		return
	}
	p.terms[k] = term{exponents: exponents, coeff: coeff}
}

// Add returns p+q. p and q must share the same arity.
func (p Polynomial) Add(q Polynomial) Polynomial {
	out := p.clone()
	for _, t := range q.terms {
		out.addTerm(t.exponents, t.coeff)
	}
	return out
}

// Sub returns p-q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	out := p.clone()
	for _, t := range q.terms {
		out.addTerm(t.exponents, t.coeff.Neg())
	}
	return out
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	out := Zero(p.arity)
	for _, t := range p.terms {
		out.addTerm(t.exponents, t.coeff.Neg())
	}
	return out
}

// ScalarMul scales every coefficient of p by c.
func (p Polynomial) ScalarMul(c field.Element) Polynomial {
	out := Zero(p.arity)
	for _, t := range p.terms {
		out.addTerm(t.exponents, t.coeff.Mul(c))
	}
	return out
}

// Mul returns p*q via cross-multiplication of every term pair,
// exponent vectors added component-wise.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	out := Zero(p.arity)
	for _, tp := range p.terms {
		for _, tq := range q.terms {
			exps := make([]int, p.arity)
			for i := range exps {
				exps[i] = tp.exponents[i] + tq.exponents[i]
			}
			out.addTerm(exps, tp.coeff.Mul(tq.coeff))
		}
	}
	return out
}

// ModPow raises p to a non-negative integer exponent symbolically, by
// repeated squaring in the multivariate ring.
func (p Polynomial) ModPow(exp int) Polynomial {
	result := FromConstant(field.One(), p.arity)
	base := p
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Lift embeds a univariate polynomial into the multivariate ring of
// the given arity, with every term placed on the variable at
// varIndex.
func Lift(p polynomial.Polynomial, varIndex, arity int) Polynomial {
	out := Zero(arity)
	for i, c := range p.Coefficients() {
		if c.IsZero() {
			continue
		}
		exps := make([]int, arity)
		exps[varIndex] = i
		out.addTerm(exps, c)
	}
	return out
}
