package xfield

import (
	"testing"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

func e(v uint64) field.Element { return field.New(v) }

func TestAddSubIdentities(t *testing.T) {
	a := New(e(1), e(2), e(3))
	if !a.Add(Zero()).Equal(a) {
		t.Fatal("additive identity failed")
	}
	if !a.Sub(a).IsZero() {
		t.Fatal("a-a != 0")
	}
	if !a.Add(a.Neg()).IsZero() {
		t.Fatal("a+(-a) != 0")
	}
}

func TestMulIdentity(t *testing.T) {
	a := New(e(5), e(7), e(11))
	if !a.Mul(One()).Equal(a) {
		t.Fatal("multiplicative identity failed")
	}
}

func TestMulCommutative(t *testing.T) {
	a := New(e(1), e(2), e(3))
	b := New(e(4), e(5), e(6))
	if !a.Mul(b).Equal(b.Mul(a)) {
		t.Fatal("multiplication not commutative")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for _, a := range []Element{
		New(e(1), e(0), e(0)),
		New(e(2), e(3), e(4)),
		New(e(0), e(1), e(0)),
		New(e(0), e(0), e(1)),
	} {
		inv, err := a.Inverse()
		if err != nil {
			t.Fatalf("inverse(%v): %v", a, err)
		}
		if !a.Mul(inv).Equal(One()) {
			t.Fatalf("a * inverse(a) != 1 for %v", a)
		}
	}
}

func TestInverseOfZeroErrors(t *testing.T) {
	if _, err := Zero().Inverse(); err == nil {
		t.Fatal("expected error inverting zero")
	}
}

func TestFromBaseEmbedding(t *testing.T) {
	a, b := e(7), e(9)
	lhs := FromBase(a).Add(FromBase(b))
	rhs := FromBase(a.Add(b))
	if !lhs.Equal(rhs) {
		t.Fatal("FromBase does not commute with addition")
	}
}
