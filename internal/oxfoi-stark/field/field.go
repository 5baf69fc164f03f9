// Package field implements arithmetic over the Oxfoi prime field
// Fp, p = 2^64 - 2^32 + 1 (the Goldilocks prime). Elements are held
// as native uint64 words; there is no big.Int anywhere in this
// package, matching how a single-word prime is represented throughout
// the gnark-crypto generated field code this package takes its native-word
// style from.
package field

import "math/bits"

// P is the Oxfoi/Goldilocks prime modulus, 2^64 - 2^32 + 1.
const P uint64 = 0xFFFFFFFF00000001

// epsilon is 2^64 mod P, i.e. 2^32 - 1. It recurs throughout reduction
// because P was chosen so that 2^64 ≡ epsilon (mod P).
const epsilon uint64 = (1 << 32) - 1

// Element is a canonical member of Fp: always < P.
type Element uint64

// Zero is the additive identity.
func Zero() Element { return Element(0) }

// One is the multiplicative identity.
func One() Element { return Element(1) }

// New reduces v into [0, P) and returns the corresponding Element.
func New(v uint64) Element {
	return Element(canon(v))
}

// NewFromInt64 reduces a signed value into [0, P).
func NewFromInt64(v int64) Element {
	if v >= 0 {
		return New(uint64(v))
	}
	u := uint64(-v)
	return Element(P - canon(u))
}

func canon(x uint64) uint64 {
	for x >= P {
		x -= P
	}
	return x
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e == 0 }

// IsOne reports whether e is the multiplicative identity.
func (e Element) IsOne() bool { return e == 1 }

// Uint64 returns the canonical uint64 value held by e.
func (e Element) Uint64() uint64 { return uint64(e) }

// Add returns e+other mod P.
func (e Element) Add(other Element) Element {
	s, carry := bits.Add64(uint64(e), uint64(other), 0)
	if carry != 0 {
		s += epsilon
	}
	return Element(canon(s))
}

// Sub returns e-other mod P.
func (e Element) Sub(other Element) Element {
	d, borrow := bits.Sub64(uint64(e), uint64(other), 0)
	if borrow != 0 {
		d -= epsilon
	}
	return Element(canon(d))
}

// Neg returns -e mod P.
func (e Element) Neg() Element {
	if e == 0 {
		return e
	}
	return Element(P - uint64(e))
}

// Mul returns e*other mod P using the field's special reduction
// (P = 2^64 - 2^32 + 1 lets a 128-bit product be folded back to 64
// bits without a general-purpose division).
func (e Element) Mul(other Element) Element {
	hi, lo := bits.Mul64(uint64(e), uint64(other))
	return Element(reduce128(hi, lo))
}

// reduce128 folds a 128-bit product hi*2^64+lo into the canonical
// value in [0, P) congruent to it mod P.
func reduce128(hi, lo uint64) uint64 {
	hiHi := hi >> 32
	hiLo := hi & epsilon

	t0, borrow := bits.Sub64(lo, hiHi, 0)
	if borrow != 0 {
		t0 -= epsilon
	}

	t1 := hiLo * epsilon

	t2, carry := bits.Add64(t0, t1, 0)
	if carry != 0 {
		t2 += epsilon
	}
	return canon(t2)
}

// ModPow raises e to a u64 exponent by square-and-multiply, scanning
// all 64 bits of the exponent MSB-first regardless of its magnitude
// (fixed-latency semantics, not early-exiting on leading zero bits).
func (e Element) ModPow(exp uint64) Element {
	if exp == 0 {
		return One()
	}
	acc := One()
	for i := 0; i < 64; i++ {
		acc = acc.Mul(acc)
		if exp&(1<<(63-i)) != 0 {
			acc = acc.Mul(e)
		}
	}
	return acc
}

// Inverse returns e^-1 via Fermat's little theorem: e^(P-2) ≡ e^-1
// for e != 0. Reports an error for e == 0 rather than an undefined
// result.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Zero(), errDivideByZero
	}
	return e.ModPow(P - 2), nil
}

// Div returns e/other, erroring when other is zero.
func (e Element) Div(other Element) (Element, error) {
	inv, err := other.Inverse()
	if err != nil {
		return Zero(), err
	}
	return e.Mul(inv), nil
}

// LegendreSymbol classifies e as a quadratic residue (+1), the zero
// element (0), or a non-residue (-1) of Fp, via Euler's criterion
// e^((P-1)/2).
func (e Element) LegendreSymbol() int {
	v := e.ModPow((P - 1) / 2)
	switch {
	case v.IsZero():
		return 0
	case uint64(v) == P-1:
		return -1
	default:
		return 1
	}
}

// Equal reports whether e and other hold the same canonical value.
func (e Element) Equal(other Element) bool { return e == other }
