package polynomial

import (
	"testing"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

func e(v uint64) field.Element { return field.New(v) }

func TestEvalHorner(t *testing.T) {
	// p(X) = 1 + 2X + 3X^2
	p := New([]field.Element{e(1), e(2), e(3)})
	got := p.Eval(e(5))
	want := e(1 + 2*5 + 3*25)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAddSubMul(t *testing.T) {
	a := New([]field.Element{e(1), e(2)})
	b := New([]field.Element{e(3), e(4)})
	sum := a.Add(b)
	if !sum.Eval(e(7)).Equal(a.Eval(e(7)).Add(b.Eval(e(7)))) {
		t.Fatal("add does not agree pointwise")
	}
	prod := a.Mul(b)
	if !prod.Eval(e(7)).Equal(a.Eval(e(7)).Mul(b.Eval(e(7)))) {
		t.Fatal("mul does not agree pointwise")
	}
	diff := a.Sub(b)
	if !diff.Eval(e(7)).Equal(a.Eval(e(7)).Sub(b.Eval(e(7)))) {
		t.Fatal("sub does not agree pointwise")
	}
}

func TestDivWithRemainder(t *testing.T) {
	// (X^2 - 1) / (X - 1) = X + 1, remainder 0
	numer := New([]field.Element{e(0).Sub(e(1)), e(0), e(1)})
	denom := New([]field.Element{e(0).Sub(e(1)), e(1)})
	q, r, err := numer.Div(denom)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsZero() {
		t.Fatalf("expected zero remainder, got %v", r.Coefficients())
	}
	want := New([]field.Element{e(1), e(1)})
	if !q.Equal(want) {
		t.Fatalf("got quotient %v want %v", q.Coefficients(), want.Coefficients())
	}
}

func TestDivByZeroErrors(t *testing.T) {
	p := New([]field.Element{e(1)})
	if _, _, err := p.Div(Zero()); err == nil {
		t.Fatal("expected error dividing by zero polynomial")
	}
}

func TestLagrangeInterpolationRoundTrip(t *testing.T) {
	p := New([]field.Element{e(1), e(2), e(3), e(4)})
	points := make([]Point, 0, 5)
	for i := uint64(0); i < 5; i++ {
		x := e(i)
		points = append(points, Point{X: x, Y: p.Eval(x)})
	}
	got, err := LagrangeInterpolation(points)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(p) {
		t.Fatalf("interpolated polynomial differs: got %v want %v", got.Coefficients(), p.Coefficients())
	}
}

func TestLagrangeInterpolationRejectsDuplicateX(t *testing.T) {
	points := []Point{{X: e(1), Y: e(2)}, {X: e(1), Y: e(3)}}
	if _, err := LagrangeInterpolation(points); err == nil {
		t.Fatal("expected error for duplicate x-coordinates")
	}
}

func TestComposeAndPow(t *testing.T) {
	p := New([]field.Element{e(0), e(1)}) // X
	squared := p.Pow(2)
	if !squared.Eval(e(5)).Equal(e(25)) {
		t.Fatalf("X^2 at 5 = %v, want 25", squared.Eval(e(5)))
	}
	composed := p.Compose(p) // X composed with X = X
	if !composed.Equal(p) {
		t.Fatalf("compose(X, X) = %v, want X", composed.Coefficients())
	}
}
