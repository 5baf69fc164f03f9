package field

import "testing"

func TestFieldLaws(t *testing.T) {
	vals := []uint64{0, 1, 2, 3, 5, 12345, P - 1, P - 2}
	for _, av := range vals {
		for _, bv := range vals {
			a, b := New(av), New(bv)
			if a.Add(b) != b.Add(a) {
				t.Fatalf("commutativity of Add failed for %d,%d", av, bv)
			}
			if a.Mul(b) != b.Mul(a) {
				t.Fatalf("commutativity of Mul failed for %d,%d", av, bv)
			}
			if !a.Add(Zero()).Equal(a) {
				t.Fatalf("additive identity failed for %d", av)
			}
			if !a.Mul(One()).Equal(a) {
				t.Fatalf("multiplicative identity failed for %d", av)
			}
			if !a.Sub(a).IsZero() {
				t.Fatalf("a-a != 0 for %d", av)
			}
			if !a.Add(a.Neg()).IsZero() {
				t.Fatalf("a+(-a) != 0 for %d", av)
			}
		}
	}
}

func TestInverseTable(t *testing.T) {
	cases := []struct {
		value, inverse uint64
	}{
		{2, 9223372034707292161},
		{3, 12297829379609722881},
		{4, 13835058052060938241},
		{5, 14757395255531667457},
		{6, 15372286724512153601},
		{7, 2635249152773512046},
		{8, 16140901060737761281},
		{9, 4099276459869907627},
		{10, 16602069662473125889},
		{85671106, 13115294102219178839},
	}
	for _, c := range cases {
		got, err := New(c.value).Inverse()
		if err != nil {
			t.Fatalf("inverse(%d): %v", c.value, err)
		}
		if uint64(got) != c.inverse {
			t.Errorf("inverse(%d) = %d, want %d", c.value, got, c.inverse)
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for _, v := range []uint64{1, 2, 3, 42, P - 1} {
		e := New(v)
		inv, err := e.Inverse()
		if err != nil {
			t.Fatal(err)
		}
		if !e.Mul(inv).IsOne() {
			t.Errorf("%d * inverse(%d) != 1", v, v)
		}
	}
}

func TestInverseOfZeroErrors(t *testing.T) {
	if _, err := Zero().Inverse(); err == nil {
		t.Fatal("expected error inverting zero")
	}
}

func TestBatchInversionAgreesWithSingle(t *testing.T) {
	values := []Element{New(1), New(2), New(3), New(4), New(5), New(6), New(7), New(8), New(9), New(10), New(85671106)}
	batch, err := BatchInversion(values)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range values {
		want, err := v.Inverse()
		if err != nil {
			t.Fatal(err)
		}
		if batch[i] != want {
			t.Errorf("batch inversion mismatch at %d: got %v want %v", i, batch[i], want)
		}
	}
}

func TestBatchInversionEmptyAndSingleton(t *testing.T) {
	empty, err := BatchInversion(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result, got %v, %v", empty, err)
	}
	single, err := BatchInversion([]Element{New(2)})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := New(2).Inverse()
	if len(single) != 1 || single[0] != want {
		t.Fatalf("singleton batch inversion mismatch: %v", single)
	}
}

func TestPrimitiveRootOfOrderFour(t *testing.T) {
	root, err := GetPrimitiveRootOfUnity(4)
	if err != nil {
		t.Fatal(err)
	}
	if uint64(root) != 281474976710656 {
		t.Fatalf("got %d, want 281474976710656", root)
	}
	if !root.ModPow(4).IsOne() {
		t.Fatal("root^4 != 1")
	}
	if root.ModPow(2).IsOne() {
		t.Fatal("root^2 == 1, not primitive")
	}
}

func TestPrimitiveRootEveryPowerOfTwo(t *testing.T) {
	for i := 1; i <= 32; i++ {
		n := uint64(1) << uint(i)
		root, err := GetPrimitiveRootOfUnity(n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !root.ModPow(n).IsOne() {
			t.Fatalf("n=%d: root^n != 1", n)
		}
		if root.ModPow(n / 2).IsOne() {
			t.Fatalf("n=%d: root^(n/2) == 1", n)
		}
	}
}

func TestPrimitiveRootRejectsUntabulatedN(t *testing.T) {
	if _, err := GetPrimitiveRootOfUnity(6); err == nil {
		t.Fatal("expected error for non-power-of-two n")
	}
}

func TestLegendreSymbol(t *testing.T) {
	if Zero().LegendreSymbol() != 0 {
		t.Fatal("legendre(0) != 0")
	}
	if New(1).LegendreSymbol() != 1 {
		t.Fatal("legendre(1) != 1")
	}
}
