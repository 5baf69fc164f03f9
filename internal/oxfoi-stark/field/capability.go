package field

import "github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/traits"

// Capability returns the base field's generic capability bundle, for
// code written against traits.Ring[E] so it can run unmodified over
// either Fp or F_{p^3}. The polynomial and ntt packages do not use it;
// they work on field.Element directly.
func Capability() traits.Ring[Element] {
	return traits.Ring[Element]{
		Zero:    Zero,
		One:     One,
		Add:     func(a, b Element) Element { return a.Add(b) },
		Sub:     func(a, b Element) Element { return a.Sub(b) },
		Neg:     func(a Element) Element { return a.Neg() },
		Mul:     func(a, b Element) Element { return a.Mul(b) },
		Inverse: func(a Element) (Element, error) { return a.Inverse() },
		Equal:   func(a, b Element) bool { return a.Equal(b) },
	}
}
