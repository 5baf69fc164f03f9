package protocols

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/rescue"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

func rescueHashAIRFixture(t *testing.T, input uint64) (RescueHashAIR, [][]field.Element, Claim) {
	params := rescue.ReferenceParameters()
	output, trace := params.EvalAndTrace(field.New(input))
	air := RescueHashAIR{Params: params, Output: output}
	claim := NewClaim(xfield.FromBase(output), []uint64{input}, []uint64{uint64FromField(t, output)})
	return air, trace, claim
}

// uint64FromField round-trips a field element back to uint64 purely
// for building a human-readable claim; the STARK itself never needs
// this conversion since every arithmetic operation stays in Fp.
func uint64FromField(t *testing.T, e field.Element) uint64 {
	t.Helper()
	b := e.ToBytes()
	v, err := field.FromBytes(b)
	if err != nil {
		t.Fatalf("unexpected out-of-range field element: %v", err)
	}
	return uint64(v)
}

func TestProveVerifyRescueHash(t *testing.T) {
	air, trace, claim := rescueHashAIRFixture(t, 42)
	params := Parameters{ExpansionFactor: 4, NumQueries: 12}
	hasher := merkle.Blake3Hasher{}

	proof, err := Prove(NewProofStream(), air, trace, claim, params, hasher)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	if err := Verify(ProofStreamFromProof(proof), air, claim, params, hasher); err != nil {
		t.Fatalf("Verify rejected a valid proof: %v", err)
	}
}

// TestVerifyRejectsTamperedProof mutates a valid proof at random
// locations — both arbitrary bytes across the whole encoded stream
// (hitting digests, auth paths, and field-element encodings alike) and
// whole 8-byte windows at offsets that are multiples of 8 in the
// encoded stream (item headers are 5 bytes, so a window can straddle a
// header and a payload rather than cover exactly one field element) —
// and asserts that every mutation is rejected, either by DecodeProof
// or by Verify.
func TestVerifyRejectsTamperedProof(t *testing.T) {
	air, trace, claim := rescueHashAIRFixture(t, 42)
	params := Parameters{ExpansionFactor: 4, NumQueries: 12}
	hasher := merkle.Blake3Hasher{}

	proof, err := Prove(NewProofStream(), air, trace, claim, params, hasher)
	require.NoError(t, err)
	encoded := proof.Encode()

	assertRejected := func(t *testing.T, tampered []byte) {
		decoded, err := DecodeProof(tampered)
		if err != nil {
			// A corrupted length or shape byte producing an encoding
			// error is itself an acceptable rejection.
			return
		}
		if verr := Verify(ProofStreamFromProof(decoded), air, claim, params, hasher); verr == nil {
			t.Fatalf("tampered proof was accepted")
		}
	}

	rng := rand.New(rand.NewSource(1))
	const trials = 100

	t.Run("random byte", func(t *testing.T) {
		for i := 0; i < trials; i++ {
			offset := rng.Intn(len(encoded))
			bit := byte(1) << uint(rng.Intn(8))

			tampered := append([]byte{}, encoded...)
			tampered[offset] ^= bit
			assertRejected(t, tampered)
		}
	})

	// A field element is encoded as 8 little-endian bytes; mutating a
	// whole 8-byte window changes up to eight bytes at once rather than
	// a single bit. The window is aligned to the stream, not to the
	// field elements inside an item.
	t.Run("revealed field element", func(t *testing.T) {
		wordCount := len(encoded) / 8
		for i := 0; i < trials; i++ {
			word := rng.Intn(wordCount)
			offset := word * 8

			var delta [8]byte
			binary.LittleEndian.PutUint64(delta[:], 1+uint64(rng.Intn(1<<20)))

			tampered := append([]byte{}, encoded...)
			for j := 0; j < 8; j++ {
				tampered[offset+j] ^= delta[j]
			}
			assertRejected(t, tampered)
		}
	})
}

func TestVerifyRejectsWrongClaimedOutput(t *testing.T) {
	air, trace, claim := rescueHashAIRFixture(t, 42)
	params := Parameters{ExpansionFactor: 4, NumQueries: 8}
	hasher := merkle.Blake3Hasher{}

	proof, err := Prove(NewProofStream(), air, trace, claim, params, hasher)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	wrongAIR := RescueHashAIR{Params: air.Params, Output: air.Output.Add(field.One())}
	if err := Verify(ProofStreamFromProof(proof), wrongAIR, claim, params, hasher); err == nil {
		t.Fatalf("Verify accepted a proof against a mismatched claimed output")
	}
}

// TestProveParallelMatchesSequentialAndLogs exercises the Parallel
// opt-in and the Logger hook together: a parallel proof must verify
// the same as a sequential one, and every progress event must reach
// the supplied logger.
func TestProveParallelMatchesSequentialAndLogs(t *testing.T) {
	air, trace, claim := rescueHashAIRFixture(t, 42)
	hasher := merkle.Blake3Hasher{}

	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)
	params := Parameters{ExpansionFactor: 4, NumQueries: 12, Parallel: true, Logger: &logger}

	proof, err := Prove(NewProofStream(), air, trace, claim, params, hasher)
	require.NoError(t, err)
	require.NoError(t, Verify(ProofStreamFromProof(proof), air, claim, params, hasher))

	logged := logBuf.String()
	require.Contains(t, logged, "low-degree-extended trace columns")
	require.Contains(t, logged, "committed trace codeword")
	require.Contains(t, logged, "folded composition codeword via FRI")
}
