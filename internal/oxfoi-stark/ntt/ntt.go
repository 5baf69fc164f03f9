// Package ntt implements the radix-2 number-theoretic transform over
// the Oxfoi field and the power-of-two coset domains ("FRI domains")
// built on top of it.
package ntt

import (
	"errors"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

// ErrNotPowerOfTwo is returned whenever an operation requires a
// length that is a power of two and the input isn't.
var ErrNotPowerOfTwo = errors.New("ntt: length must be a power of two")

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func bitReverse(values []field.Element) {
	n := len(values)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

// Forward computes the NTT of values using omega, a
// primitive n-th root of unity where n = len(values), and returns the
// transformed slice. values is not mutated; a bit-reversal-permuted
// copy is transformed via iterative Cooley-Tukey butterflies.
func Forward(values []field.Element, omega field.Element) ([]field.Element, error) {
	n := len(values)
	if !isPowerOfTwo(n) {
		return nil, ErrNotPowerOfTwo
	}
	work := make([]field.Element, n)
	copy(work, values)
	bitReverse(work)

	for length := 2; length <= n; length <<= 1 {
		step := n / length
		wLen := omega.ModPow(uint64(step))
		for start := 0; start < n; start += length {
			w := field.One()
			half := length / 2
			for i := 0; i < half; i++ {
				u := work[start+i]
				v := work[start+i+half].Mul(w)
				work[start+i] = u.Add(v)
				work[start+i+half] = u.Sub(v)
				w = w.Mul(wLen)
			}
		}
	}
	return work, nil
}

// Inverse computes the inverse NTT: Forward with omega's inverse,
// scaled by 1/n.
func Inverse(values []field.Element, omega field.Element) ([]field.Element, error) {
	n := len(values)
	if !isPowerOfTwo(n) {
		return nil, ErrNotPowerOfTwo
	}
	omegaInv, err := omega.Inverse()
	if err != nil {
		return nil, err
	}
	transformed, err := Forward(values, omegaInv)
	if err != nil {
		return nil, err
	}
	nInv, err := field.New(uint64(n)).Inverse()
	if err != nil {
		return nil, err
	}
	for i := range transformed {
		transformed[i] = transformed[i].Mul(nInv)
	}
	return transformed, nil
}
