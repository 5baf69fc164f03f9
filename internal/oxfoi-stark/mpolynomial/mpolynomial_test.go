package mpolynomial

import (
	"testing"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

func e(v uint64) field.Element { return field.New(v) }

func TestVariablesEvaluate(t *testing.T) {
	vars := Variables(3)
	point := []field.Element{e(2), e(5), e(9)}
	for i, v := range vars {
		got, err := v.Evaluate(point)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(point[i]) {
			t.Fatalf("variable %d evaluated to %v, want %v", i, got, point[i])
		}
	}
}

func TestAddMulEvaluateAgreement(t *testing.T) {
	vars := Variables(2)
	x, y := vars[0], vars[1]
	// f = x*y + x
	f := x.Mul(y).Add(x)
	point := []field.Element{e(3), e(4)}
	got, err := f.Evaluate(point)
	if err != nil {
		t.Fatal(err)
	}
	want := e(3 * 4).Add(e(3))
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFromConstant(t *testing.T) {
	c := FromConstant(e(7), 3)
	got, err := c.Evaluate([]field.Element{e(100), e(200), e(300)})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(e(7)) {
		t.Fatalf("constant evaluated to %v, want 7", got)
	}
}

func TestModPow(t *testing.T) {
	vars := Variables(1)
	x := vars[0]
	cubed := x.ModPow(3)
	got, err := cubed.Evaluate([]field.Element{e(5)})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(e(125)) {
		t.Fatalf("x^3 at 5 = %v, want 125", got)
	}
}

func TestArityMismatchErrors(t *testing.T) {
	c := FromConstant(e(1), 2)
	if _, err := c.Evaluate([]field.Element{e(1)}); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestSubCancelsToZero(t *testing.T) {
	vars := Variables(1)
	x := vars[0]
	diff := x.Sub(x)
	if !diff.IsZero() {
		t.Fatal("x - x should be the zero polynomial")
	}
}
