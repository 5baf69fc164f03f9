package oxfoistark

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/mmr"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/protocols"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/rescue"
)

// Digest is a 32-byte Merkle/MMR node digest.
type Digest = merkle.Digest

// Proof is a complete STARK proof: a trace commitment, the FRI
// commitments, and every revealed row/path the verifier's queries
// demand.
type Proof = protocols.Proof

// Claim is the public statement a Proof attests to.
type Claim = protocols.Claim

// STARKParameters fixes the public knobs (blowup, query count) a
// prover and verifier must agree on.
type STARKParameters = protocols.Parameters

// RescueParameters fixes a Rescue-Prime instance (state width, round
// count, S-box exponent, MDS matrix, round constants).
type RescueParameters = rescue.Parameters

// MembershipProof lets a leaf be checked against an MMR snapshot
// without replaying every append.
type MembershipProof = mmr.MembershipProof

// DefaultSTARKParameters returns a conservative instance suitable for
// general use: 4x blowup, 32 FRI query rounds.
func DefaultSTARKParameters() STARKParameters {
	return protocols.DefaultParameters()
}

// DefaultRescueParameters returns this module's reference Rescue-Prime
// instance.
func DefaultRescueParameters() RescueParameters {
	return rescue.ReferenceParameters()
}

// NewRescueParameters builds a Rescue-Prime instance with the given
// state width, round count, and a label used to derive its round
// constants deterministically; the S-box exponent is 7 for every label.
func NewRescueParameters(width, steps int, label string) (RescueParameters, error) {
	p, err := rescue.NewParameters(width, steps, label)
	if err != nil {
		return RescueParameters{}, newError(ErrInvalidConfig, "could not build Rescue-Prime parameters", err)
	}
	return p, nil
}
