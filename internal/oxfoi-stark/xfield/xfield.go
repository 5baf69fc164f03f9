// Package xfield implements the cubic extension field F_{p^3} used
// alongside the base field for Fiat-Shamir challenges and FRI folding
// that need more soundness bits than a single Fp element offers. The
// extension is F_p[X]/(X^3 - X + 1), the same irreducible cubic the
// Oxfoi base field's Triton-style sibling projects use, so a single
// fixed modulus polynomial needs no runtime configuration.
package xfield

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/polynomial"
)

// Element is an ordered triple of Fp coordinates, interpreted as the
// coefficients (low-to-high) of a polynomial of degree < 3 modulo the
// fixed irreducible cubic X^3 - X + 1.
type Element struct {
	c0, c1, c2 field.Element
}

// New builds an extension element from its three Fp coordinates.
func New(c0, c1, c2 field.Element) Element {
	return Element{c0: c0, c1: c1, c2: c2}
}

// FromBase lifts a base-field element into the extension (c1=c2=0).
func FromBase(c field.Element) Element {
	return Element{c0: c}
}

// Zero is the additive identity.
func Zero() Element { return Element{} }

// One is the multiplicative identity.
func One() Element { return Element{c0: field.One()} }

// Coordinates returns the element's three Fp coordinates, low-to-high.
func (e Element) Coordinates() [3]field.Element { return [3]field.Element{e.c0, e.c1, e.c2} }

// IsZero reports whether every coordinate is zero.
func (e Element) IsZero() bool { return e.c0.IsZero() && e.c1.IsZero() && e.c2.IsZero() }

// Add returns e+other, coordinate-wise.
func (e Element) Add(other Element) Element {
	return Element{e.c0.Add(other.c0), e.c1.Add(other.c1), e.c2.Add(other.c2)}
}

// Sub returns e-other, coordinate-wise.
func (e Element) Sub(other Element) Element {
	return Element{e.c0.Sub(other.c0), e.c1.Sub(other.c1), e.c2.Sub(other.c2)}
}

// Neg returns -e, coordinate-wise.
func (e Element) Neg() Element {
	return Element{e.c0.Neg(), e.c1.Neg(), e.c2.Neg()}
}

// ScalarMul scales e by a base-field element.
func (e Element) ScalarMul(c field.Element) Element {
	return Element{e.c0.Mul(c), e.c1.Mul(c), e.c2.Mul(c)}
}

// Mul multiplies two extension elements modulo X^3 = X - 1, the
// reduction rule implied by the fixed modulus X^3 - X + 1. The
// schoolbook product of two degree-2 polynomials has degree up to 4;
// terms of degree 3 and 4 are folded back down via that rule before
// the coordinates are combined.
func (e Element) Mul(other Element) Element {
	a0, a1, a2 := e.c0, e.c1, e.c2
	b0, b1, b2 := other.c0, other.c1, other.c2

	// raw convolution coefficients for X^0..X^4
	r0 := a0.Mul(b0)
	r1 := a0.Mul(b1).Add(a1.Mul(b0))
	r2 := a0.Mul(b2).Add(a1.Mul(b1)).Add(a2.Mul(b0))
	r3 := a1.Mul(b2).Add(a2.Mul(b1))
	r4 := a2.Mul(b2)

	// X^3 = X - 1, so X^4 = X^2 - X.
	// fold r3*X^3 -> r3*(X-1) = -r3 + r3*X
	// fold r4*X^4 -> r4*(X^2-X) = -r4*X + r4*X^2
	c0 := r0.Sub(r3)
	c1 := r1.Add(r3).Sub(r4)
	c2 := r2.Add(r4)
	return Element{c0, c1, c2}
}

func (e Element) toPolynomial() polynomial.Polynomial {
	return polynomial.New([]field.Element{e.c0, e.c1, e.c2})
}

func fromPolynomial(p polynomial.Polynomial) Element {
	return Element{p.Coefficient(0), p.Coefficient(1), p.Coefficient(2)}
}

// modulusPolynomial is X^3 - X + 1, low-to-high: [1, -1, 0, 1].
func modulusPolynomial() polynomial.Polynomial {
	return polynomial.New([]field.Element{
		field.One(),
		field.One().Neg(),
		field.Zero(),
		field.One(),
	})
}

// Inverse computes e^-1 by running the polynomial extended Euclidean
// algorithm between the fixed irreducible modulus and e's
// representative polynomial: since the modulus is irreducible, the
// resulting gcd is a non-zero constant for any non-zero e, and the
// Bezout coefficient for e, scaled by that constant's inverse, is the
// sought inverse.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Zero(), errDivideByZero
	}
	g, _, y, err := polynomial.ExtendedGCD(modulusPolynomial(), e.toPolynomial())
	if err != nil {
		return Zero(), err
	}
	gInv, err := g.Coefficient(0).Inverse()
	if err != nil {
		return Zero(), err
	}
	return fromPolynomial(y.ScalarMul(gInv)), nil
}

// Div returns e/other.
func (e Element) Div(other Element) (Element, error) {
	inv, err := other.Inverse()
	if err != nil {
		return Zero(), err
	}
	return e.Mul(inv), nil
}

// Equal reports coordinate-wise equality.
func (e Element) Equal(other Element) bool {
	return e.c0.Equal(other.c0) && e.c1.Equal(other.c1) && e.c2.Equal(other.c2)
}
