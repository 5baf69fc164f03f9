package ntt

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/polynomial"
)

// Domain describes the coset { offset * generator^i : 0 <= i < length
// }, where generator has exact order length and length is a power of
// two dividing P-1. It is the FRI/LDE evaluation domain used
// throughout the STARK engine.
type Domain struct {
	Offset    field.Element
	Generator field.Element
	Length    int
}

// NewDomain builds the length-N domain with the canonical generator
// (the table-backed primitive N-th root of unity) and offset one
// (i.e. the un-shifted subgroup).
func NewDomain(length int) (Domain, error) {
	if !isPowerOfTwo(length) {
		return Domain{}, ErrNotPowerOfTwo
	}
	gen, err := field.GetPrimitiveRootOfUnity(uint64(length))
	if err != nil {
		return Domain{}, err
	}
	return Domain{Offset: field.One(), Generator: gen, Length: length}, nil
}

// WithOffset returns a copy of d shifted by a new coset offset.
func (d Domain) WithOffset(offset field.Element) Domain {
	return Domain{Offset: offset, Generator: d.Generator, Length: d.Length}
}

// Elements returns every point of the domain, in natural (non
// bit-reversed) order.
func (d Domain) Elements() []field.Element {
	out := make([]field.Element, d.Length)
	acc := d.Offset
	for i := 0; i < d.Length; i++ {
		out[i] = acc
		acc = acc.Mul(d.Generator)
	}
	return out
}

// Halve returns the domain of half the length, reached by squaring
// both the generator and the offset.
func (d Domain) Halve() Domain {
	return Domain{
		Offset:    d.Offset.Mul(d.Offset),
		Generator: d.Generator.Mul(d.Generator),
		Length:    d.Length / 2,
	}
}

// Double returns the domain of twice the length: callers must supply
// a generator of the doubled order (e.g. from the primitive-root
// table) since generator has no square root in general.
func (d Domain) Double(generator field.Element) Domain {
	return Domain{Offset: d.Offset, Generator: generator, Length: d.Length * 2}
}

// Evaluate evaluates p over the domain via coset-NTT: p's
// coefficients are scaled by offset^i before a standard forward NTT
// with the domain's generator, and zero-padded to the domain length.
func (d Domain) Evaluate(p polynomial.Polynomial) ([]field.Element, error) {
	coeffs := make([]field.Element, d.Length)
	offsetPower := field.One()
	src := p.Coefficients()
	for i := 0; i < d.Length; i++ {
		if i < len(src) {
			coeffs[i] = src[i].Mul(offsetPower)
		} else {
			coeffs[i] = field.Zero()
		}
		offsetPower = offsetPower.Mul(d.Offset)
	}
	return Forward(coeffs, d.Generator)
}

// Interpolate recovers the unique polynomial of degree < length whose
// coset evaluation over d equals codeword, via inverse NTT followed
// by undoing the offset scaling.
func (d Domain) Interpolate(codeword []field.Element) (polynomial.Polynomial, error) {
	scaled, err := Inverse(codeword, d.Generator)
	if err != nil {
		return polynomial.Zero(), err
	}
	offsetInv, err := d.Offset.Inverse()
	if err != nil {
		return polynomial.Zero(), err
	}
	offsetInvPower := field.One()
	coeffs := make([]field.Element, len(scaled))
	for i, c := range scaled {
		coeffs[i] = c.Mul(offsetInvPower)
		offsetInvPower = offsetInvPower.Mul(offsetInv)
	}
	return polynomial.New(coeffs), nil
}
