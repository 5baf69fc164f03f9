// Package rescue implements the Rescue-Prime arithmetization-oriented
// sponge: a parameterized round function producing both a concrete
// hash value (hash, trace) and the multivariate AIR constraint
// polynomials a STARK verifies against (RoundConstantPolynomials,
// AIRConstraints).
package rescue

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

// ErrExponentNotInvertible is returned when the chosen S-box exponent
// shares a factor with P-1 and therefore has no modular inverse
// there, i.e. x -> x^alpha is not a bijection of Fp.
var ErrExponentNotInvertible = errors.New("rescue: S-box exponent is not invertible modulo P-1")

// Parameters fixes a Rescue-Prime instance: state width m, round
// count (steps_count), S-box exponent and its inverse, the MDS
// matrix and its inverse, and the round constant vector of length
// 2*steps_count*m.
type Parameters struct {
	M             int
	StepsCount    int
	Alpha         uint64
	AlphaInv      uint64
	MDS           matrix
	MDSInv        matrix
	RoundConstants []field.Element
}

// modInverseExponent returns a^-1 mod (P-1), used once at parameter
// construction time to derive the S-box's backward exponent; this is
// exponent-space arithmetic, not a field element, so it is computed
// with math/big rather than the field package's native-word Fp
// arithmetic.
func modInverseExponent(a uint64) (uint64, error) {
	modulus := new(big.Int).SetUint64(field.P - 1)
	base := new(big.Int).SetUint64(a)
	inv := new(big.Int).ModInverse(base, modulus)
	if inv == nil {
		return 0, ErrExponentNotInvertible
	}
	return inv.Uint64(), nil
}

// deriveRoundConstant computes round constant i as a nothing-up-my-
// sleeve value: SHA-256 of a fixed label and index, reduced into Fp.
// This mirrors how reference Rescue-Prime/Poseidon parameter sets
// derive their constants from a hash rather than hand-picked numbers.
func deriveRoundConstant(label string, index int) field.Element {
	h := sha256.New()
	h.Write([]byte(label))
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(index))
	h.Write(idx[:])
	digest := h.Sum(nil)
	return field.New(binary.BigEndian.Uint64(digest[:8]))
}

// NewParameters builds a Rescue-Prime parameter set for state width m
// and the given round count, with S-box exponent alpha = 7 (the
// smallest exponent coprime to P-1, since P-1 = 2^32*(2^32-1) and
// 2^32-1 = 3*5*17*257*65537 rules out every smaller odd exponent), a
// Cauchy MDS matrix (guaranteed invertible for distinct row/column
// generators), and round constants derived deterministically from
// label via SHA-256.
func NewParameters(m, steps int, label string) (Parameters, error) {
	const alpha = 7
	alphaInv, err := modInverseExponent(alpha)
	if err != nil {
		return Parameters{}, err
	}

	mds := cauchyMDS(m)
	mdsInv, err := invert(mds)
	if err != nil {
		return Parameters{}, err
	}

	rc := make([]field.Element, 2*steps*m)
	for i := range rc {
		rc[i] = deriveRoundConstant(label, i)
	}

	return Parameters{
		M:              m,
		StepsCount:     steps,
		Alpha:          alpha,
		AlphaInv:       alphaInv,
		MDS:            mds,
		MDSInv:         mdsInv,
		RoundConstants: rc,
	}, nil
}

// ReferenceParameters returns the library's default Rescue-Prime
// instance: state width 4, 8 rounds. Callers needing a different
// security/performance tradeoff should call NewParameters directly.
func ReferenceParameters() Parameters {
	p, err := NewParameters(4, 8, "oxfoi-stark/rescue-prime/reference-v1")
	if err != nil {
		panic(err)
	}
	return p
}
