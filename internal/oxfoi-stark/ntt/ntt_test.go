package ntt

import (
	"testing"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/polynomial"
)

func e(v uint64) field.Element { return field.New(v) }

func TestForwardInverseRoundTrip(t *testing.T) {
	omega, err := field.GetPrimitiveRootOfUnity(8)
	if err != nil {
		t.Fatal(err)
	}
	values := []field.Element{e(1), e(2), e(3), e(4), e(5), e(6), e(7), e(8)}
	transformed, err := Forward(values, omega)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Inverse(transformed, omega)
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if !back[i].Equal(values[i]) {
			t.Fatalf("round trip mismatch at %d: got %v want %v", i, back[i], values[i])
		}
	}
}

func TestForwardRejectsNonPowerOfTwo(t *testing.T) {
	omega, _ := field.GetPrimitiveRootOfUnity(8)
	if _, err := Forward(make([]field.Element, 7), omega); err == nil {
		t.Fatal("expected error for non-power-of-two length")
	}
}

func TestDomainEvaluateInterpolateRoundTrip(t *testing.T) {
	d, err := NewDomain(8)
	if err != nil {
		t.Fatal(err)
	}
	d = d.WithOffset(e(3))
	p := polynomial.New([]field.Element{e(1), e(2), e(3), e(4)})
	codeword, err := d.Evaluate(p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := d.Interpolate(codeword)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p) {
		t.Fatalf("interpolated polynomial differs: got %v want %v", back.Coefficients(), p.Coefficients())
	}
}

func TestDomainEvaluateAgreesWithDirectEval(t *testing.T) {
	d, err := NewDomain(4)
	if err != nil {
		t.Fatal(err)
	}
	p := polynomial.New([]field.Element{e(1), e(2), e(3)})
	codeword, err := d.Evaluate(p)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range d.Elements() {
		if !codeword[i].Equal(p.Eval(x)) {
			t.Fatalf("codeword[%d] = %v, want %v", i, codeword[i], p.Eval(x))
		}
	}
}
