package oxfoistark

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/protocols"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

// RescueHash returns the Rescue-Prime hash of input under params.
func RescueHash(params RescueParameters, input uint64) uint64 {
	return uint64(params.Hash(field.New(input)))
}

// NewRescueHashClaim builds the public Claim that "RescueHash(input)
// under params equals output", tagged by output lifted into the
// extension field. params does not enter the tag, so the tag does not
// tell parameter sets apart.
func NewRescueHashClaim(params RescueParameters, input, output uint64) Claim {
	tag := xfield.FromBase(field.New(output))
	return protocols.NewClaim(tag, []uint64{input}, []uint64{output})
}

// Prove builds a STARK proof that RescueHash(input) under params
// equals the output it computes, returning both the proof and the
// output it attests to.
func Prove(params RescueParameters, input uint64, starkParams STARKParameters) (*Proof, uint64, error) {
	if err := starkParams.Validate(); err != nil {
		return nil, 0, newError(ErrInvalidConfig, "invalid STARK parameters", err)
	}

	output, trace := params.EvalAndTrace(field.New(input))
	air := protocols.RescueHashAIR{Params: params, Output: output}
	claim := NewRescueHashClaim(params, input, uint64(output))

	ps := protocols.NewProofStream()
	proof, err := protocols.Prove(ps, air, trace, claim, starkParams, merkle.Blake3Hasher{})
	if err != nil {
		return nil, 0, newError(ErrProofGeneration, "STARK proof generation failed", err)
	}
	return proof, uint64(output), nil
}

// Verify checks that proof attests to claim under params and
// starkParams. claim.PublicOutput must hold exactly one value, the
// claimed Rescue-Prime output.
func Verify(params RescueParameters, claim Claim, proof *Proof, starkParams STARKParameters) error {
	if err := starkParams.Validate(); err != nil {
		return newError(ErrInvalidConfig, "invalid STARK parameters", err)
	}
	if len(claim.PublicOutput) != 1 {
		return newError(ErrInvalidInput, "rescue hash claim must name exactly one output", nil)
	}

	air := protocols.RescueHashAIR{Params: params, Output: field.New(claim.PublicOutput[0])}

	ps := protocols.ProofStreamFromProof(proof)
	if err := protocols.Verify(ps, air, claim, starkParams, merkle.Blake3Hasher{}); err != nil {
		return newError(ErrProofVerification, "STARK proof rejected", err)
	}
	return nil
}

// EncodeProof serializes a proof to the §6 wire format.
func EncodeProof(proof *Proof) []byte {
	return proof.Encode()
}

// DecodeProof parses the §6 wire format back into a Proof.
func DecodeProof(data []byte) (*Proof, error) {
	proof, err := protocols.DecodeProof(data)
	if err != nil {
		return nil, newError(ErrInvalidInput, "could not decode proof", err)
	}
	return proof, nil
}

// RescueHashBytes returns RescueHash's output as its §6 8-byte
// little-endian encoding, for callers that want to feed a hash result
// into an MMR leaf alongside other digests.
func RescueHashBytes(params RescueParameters, input uint64) [8]byte {
	return field.New(RescueHash(params, input)).ToBytes()
}
