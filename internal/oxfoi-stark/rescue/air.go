package rescue

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/mpolynomial"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/polynomial"
)

// BoundaryConstraint asserts that the trace holds an expected value
// at a given cycle and register.
type BoundaryConstraint struct {
	Cycle    int
	Register int
	Value    field.Element
}

func generatorDomain(omicron field.Element, length int) []field.Element {
	out := make([]field.Element, length)
	acc := field.One()
	for i := 0; i < length; i++ {
		out[i] = acc
		acc = acc.Mul(omicron)
	}
	return out
}

// RoundConstantPolynomials returns, for every register, the
// degree-(StepsCount-1) univariate polynomial whose value at
// omicron^i equals the first- and second-half round constant used at
// step i, lifted into the 1+2m-variable multivariate ring on slot 0
// (the domain-point variable), via Lagrange interpolation exactly as
// the original construction does.
func (p Parameters) RoundConstantPolynomials(omicron field.Element) (first, second []mpolynomial.Polynomial, err error) {
	arity := 1 + 2*p.M
	domain := generatorDomain(omicron, p.StepsCount)

	first = make([]mpolynomial.Polynomial, p.M)
	for reg := 0; reg < p.M; reg++ {
		points := make([]polynomial.Point, p.StepsCount)
		for i := 0; i < p.StepsCount; i++ {
			points[i] = polynomial.Point{X: domain[i], Y: p.RoundConstants[2*i*p.M+reg]}
		}
		poly, ierr := polynomial.LagrangeInterpolation(points)
		if ierr != nil {
			return nil, nil, ierr
		}
		first[reg] = mpolynomial.Lift(poly, 0, arity)
	}

	second = make([]mpolynomial.Polynomial, p.M)
	for reg := 0; reg < p.M; reg++ {
		points := make([]polynomial.Point, p.StepsCount)
		for i := 0; i < p.StepsCount; i++ {
			points[i] = polynomial.Point{X: domain[i], Y: p.RoundConstants[2*i*p.M+p.M+reg]}
		}
		poly, ierr := polynomial.LagrangeInterpolation(points)
		if ierr != nil {
			return nil, nil, ierr
		}
		second[reg] = mpolynomial.Lift(poly, 0, arity)
	}
	return first, second, nil
}

// AIRConstraints builds, for every register, the multivariate
// identity in 1+2m variables (domain point, previous row, next row):
//
//	sum_k MDS[i][k]*prev[k]^alpha + firstConstants[i](X)
//	    == (sum_k MDSInv[i][k]*(next[k] - secondConstants[k](X)))^alpha
//
// rearranged to lhs - rhs, which must evaluate to zero at every
// consecutive row pair of a valid trace.
func (p Parameters) AIRConstraints(omicron field.Element) ([]mpolynomial.Polynomial, error) {
	first, second, err := p.RoundConstantPolynomials(omicron)
	if err != nil {
		return nil, err
	}

	arity := 1 + 2*p.M
	vars := mpolynomial.Variables(arity)
	previous := vars[1 : p.M+1]
	next := vars[p.M+1 : 2*p.M+1]

	air := make([]mpolynomial.Polynomial, p.M)
	for i := 0; i < p.M; i++ {
		lhs := mpolynomial.FromConstant(field.Zero(), arity)
		for k := 0; k < p.M; k++ {
			lhs = lhs.Add(previous[k].ModPow(int(p.Alpha)).ScalarMul(p.MDS[i][k]))
		}
		lhs = lhs.Add(first[i])

		rhs := mpolynomial.FromConstant(field.Zero(), arity)
		for k := 0; k < p.M; k++ {
			rhs = rhs.Add(next[k].Sub(second[k]).ScalarMul(p.MDSInv[i][k]))
		}
		rhs = rhs.ModPow(int(p.Alpha))

		air[i] = lhs.Sub(rhs)
	}
	return air, nil
}

// BoundaryConstraints returns the two boundary assertions for hashing
// a single field element: the capacity register is zero at cycle 0,
// and register 0 holds the claimed output at the final cycle.
func (p Parameters) BoundaryConstraints(outputElement field.Element) []BoundaryConstraint {
	return []BoundaryConstraint{
		{Cycle: 0, Register: 1, Value: field.Zero()},
		{Cycle: p.StepsCount, Register: 0, Value: outputElement},
	}
}
