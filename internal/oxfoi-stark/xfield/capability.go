package xfield

import "github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/traits"

// Capability returns the cubic extension's generic capability
// bundle, the xfield counterpart to field.Capability so the same
// generic code in traits.Ring[E]-typed helpers can back either field.
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
