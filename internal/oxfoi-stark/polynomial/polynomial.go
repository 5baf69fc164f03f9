// Package polynomial implements dense univariate polynomials
// (coefficient slice, Horner evaluation, long division, Lagrange
// interpolation) over the base field: coefficients are field.Element
// values, not a generic ring type.
package polynomial

import (
	"errors"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

var (
	// ErrDivisionByZeroPolynomial is returned by Div when the divisor
	// is the zero polynomial.
	ErrDivisionByZeroPolynomial = errors.New("polynomial: division by the zero polynomial")
	// ErrDuplicatePoints is returned by LagrangeInterpolation
	// when the x-coordinates are not distinct.
	ErrDuplicatePoints = errors.New("polynomial: interpolation points must have distinct x-coordinates")
)

// Polynomial is a dense, low-to-high coefficient vector over Fp. The
// zero polynomial is represented by a nil or empty slice; otherwise
// the leading (highest-index) coefficient is always non-zero.
type Polynomial struct {
	coefficients []field.Element
}

// New trims trailing zero coefficients and returns the canonical
// polynomial for the given coefficient vector.
func New(coeffs []field.Element) Polynomial {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	out := make([]field.Element, n)
	copy(out, coeffs[:n])
	return Polynomial{coefficients: out}
}

// Zero is the zero polynomial.
func Zero() Polynomial { return Polynomial{} }

// Coefficients returns a copy of the polynomial's coefficients,
// low-to-high.
func (p Polynomial) Coefficients() []field.Element {
	out := make([]field.Element, len(p.coefficients))
	copy(out, p.coefficients)
	return out
}

// Degree returns len(coefficients)-1, or -1 for the zero polynomial.
func (p Polynomial) Degree() int { return len(p.coefficients) - 1 }

// IsZero reports whether p has no non-zero coefficients.
func (p Polynomial) IsZero() bool { return len(p.coefficients) == 0 }

// Coefficient returns the coefficient of X^i, or zero if i is beyond
// the stored degree.
func (p Polynomial) Coefficient(i int) field.Element {
	if i < 0 || i >= len(p.coefficients) {
		return field.Zero()
	}
	return p.coefficients[i]
}

// LeadingCoefficient returns the coefficient of the highest-degree
// term, or zero for the zero polynomial.
func (p Polynomial) LeadingCoefficient() field.Element {
	if p.IsZero() {
		return field.Zero()
	}
	return p.coefficients[len(p.coefficients)-1]
}

// Eval evaluates p at x via Horner's method.
func (p Polynomial) Eval(x field.Element) field.Element {
	acc := field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.coefficients[i])
	}
	return acc
}

// Add returns p+q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p.coefficients)
	if len(q.coefficients) > n {
		n = len(q.coefficients)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Add(q.Coefficient(i))
	}
	return New(out)
}

// Sub returns p-q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := len(p.coefficients)
	if len(q.coefficients) > n {
		n = len(q.coefficients)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Sub(q.Coefficient(i))
	}
	return New(out)
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	out := make([]field.Element, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = c.Neg()
	}
	return New(out)
}

// ScalarMul returns p scaled by the field element c.
func (p Polynomial) ScalarMul(c field.Element) Polynomial {
	out := make([]field.Element, len(p.coefficients))
	for i, v := range p.coefficients {
		out[i] = v.Mul(c)
	}
	return New(out)
}

// Mul returns p*q via schoolbook O(n*m) convolution. Callers working
// with degrees large enough to justify it may instead multiply via
// the ntt package's coset evaluation/interpolation.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Zero()
	}
	out := make([]field.Element, len(p.coefficients)+len(q.coefficients)-1)
	for i := range out {
		out[i] = field.Zero()
	}
	for i, a := range p.coefficients {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coefficients {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return New(out)
}

// Div performs polynomial long division, returning quotient and
// remainder such that p = quotient*divisor + remainder with
// remainder.Degree() < divisor.Degree(). It errors when divisor is
// the zero polynomial.
func (p Polynomial) Div(divisor Polynomial) (quotient, remainder Polynomial, err error) {
	if divisor.IsZero() {
		return Zero(), Zero(), ErrDivisionByZeroPolynomial
	}
	remainder = New(p.Coefficients())
	divLeadInv, err := divisor.LeadingCoefficient().Inverse()
	if err != nil {
		return Zero(), Zero(), err
	}

	quotCoeffs := make([]field.Element, 0)
	for remainder.Degree() >= divisor.Degree() && !remainder.IsZero() {
		shift := remainder.Degree() - divisor.Degree()
		coeff := remainder.LeadingCoefficient().Mul(divLeadInv)
		for len(quotCoeffs) <= shift {
			quotCoeffs = append(quotCoeffs, field.Zero())
		}
		quotCoeffs[shift] = coeff

		termCoeffs := make([]field.Element, shift+1)
		termCoeffs[shift] = coeff
		term := New(termCoeffs).Mul(divisor)
		remainder = remainder.Sub(term)
	}
	return New(quotCoeffs), remainder, nil
}

// Compose returns p(q(X)).
func (p Polynomial) Compose(q Polynomial) Polynomial {
	result := Zero()
	power := New([]field.Element{field.One()})
	for _, c := range p.coefficients {
		result = result.Add(power.ScalarMul(c))
		power = power.Mul(q)
	}
	return result
}

// Pow raises p to a non-negative integer exponent by repeated
// multiplication.
func (p Polynomial) Pow(exp int) Polynomial {
	result := New([]field.Element{field.One()})
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

// Equal reports whether p and q have identical canonical coefficient
// vectors.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.coefficients) != len(q.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.coefficients[i].Equal(q.coefficients[i]) {
			return false
		}
	}
	return true
}

// Point is an (x, y) pair used by interpolation.
type Point struct {
	X, Y field.Element
}

// LagrangeInterpolation returns the unique polynomial of degree less
// than len(points) passing through every point, via the classical
// O(n^2) construction (slow Lagrange interpolation): the result does
// not depend on input order, though the accumulation order below
// follows the order points are given.
func LagrangeInterpolation(points []Point) (Polynomial, error) {
	seen := make(map[uint64]bool, len(points))
	for _, pt := range points {
		if seen[pt.X.Uint64()] {
			return Zero(), ErrDuplicatePoints
		}
		seen[pt.X.Uint64()] = true
	}

	result := Zero()
	for i, pi := range points {
		numerator := New([]field.Element{field.One()})
		denom := field.One()
		for j, pj := range points {
			if i == j {
				continue
			}
			numerator = numerator.Mul(New([]field.Element{pj.X.Neg(), field.One()}))
			denom = denom.Mul(pi.X.Sub(pj.X))
		}
		denomInv, err := denom.Inverse()
		if err != nil {
			return Zero(), err
		}
		term := numerator.ScalarMul(pi.Y.Mul(denomInv))
		result = result.Add(term)
	}
	return result, nil
}

// ExtendedGCD computes (g, x, y) over Fp[X] such that
// g = x*a + y*b, using the polynomial analogue of the integer
// extended Euclidean algorithm. Used by xfield.Element.Inverse to
// invert elements of the cubic extension via the minimal polynomial.
func ExtendedGCD(a, b Polynomial) (g, x, y Polynomial, err error) {
	oldR, r := a, b
	oldS, s := New([]field.Element{field.One()}), Zero()
	oldT, t := Zero(), New([]field.Element{field.One()})

	for !r.IsZero() {
		q, rem, derr := oldR.Div(r)
		if derr != nil {
			return Zero(), Zero(), Zero(), derr
		}
		oldR, r = r, rem
		oldS, s = s, oldS.Sub(q.Mul(s))
		oldT, t = t, oldT.Sub(q.Mul(t))
	}
	return oldR, oldS, oldT, nil
}
