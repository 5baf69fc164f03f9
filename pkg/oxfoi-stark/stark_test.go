package oxfoistark

import "testing"

func TestProveVerifyRoundTrip(t *testing.T) {
	params := DefaultRescueParameters()
	starkParams := DefaultSTARKParameters()

	proof, output, err := Prove(params, 42, starkParams)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	claim := NewRescueHashClaim(params, 42, output)
	if err := Verify(params, claim, proof, starkParams); err != nil {
		t.Fatalf("Verify rejected a valid proof: %v", err)
	}
}

func TestVerifyRejectsWrongOutput(t *testing.T) {
	params := DefaultRescueParameters()
	starkParams := DefaultSTARKParameters()

	proof, output, err := Prove(params, 7, starkParams)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	wrongClaim := NewRescueHashClaim(params, 7, output+1)
	if err := Verify(params, wrongClaim, proof, starkParams); err == nil {
		t.Fatal("Verify accepted a proof against a mismatched claimed output")
	}
}

func TestProofEncodeDecodeRoundTrip(t *testing.T) {
	params := DefaultRescueParameters()
	starkParams := DefaultSTARKParameters()

	proof, output, err := Prove(params, 99, starkParams)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	decoded, err := DecodeProof(EncodeProof(proof))
	if err != nil {
		t.Fatalf("DecodeProof failed: %v", err)
	}

	claim := NewRescueHashClaim(params, 99, output)
	if err := Verify(params, claim, decoded, starkParams); err != nil {
		t.Fatalf("Verify rejected a decoded proof: %v", err)
	}
}

func TestVerifyRejectsInvalidConfig(t *testing.T) {
	params := DefaultRescueParameters()
	badParams := STARKParameters{ExpansionFactor: 3, NumQueries: 8}

	if _, _, err := Prove(params, 1, badParams); err == nil {
		t.Fatal("Prove accepted a non-power-of-two expansion factor")
	}
}
