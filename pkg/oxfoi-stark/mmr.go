package oxfoistark

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/mmr"
)

// MMR is an append-only authenticated log: a leaf count plus one peak
// digest per set bit of it. It hashes with Blake3 by default, the
// same default this module uses for Merkle tree commitments.
type MMR struct {
	acc mmr.Accumulator
}

// NewMMR returns the empty accumulator.
func NewMMR() MMR {
	return MMR{acc: mmr.NewAccumulator()}
}

// LeafCount returns the number of leaves appended so far. It returns
// an error if the count no longer fits a uint64 (the accumulator
// itself tracks it as a full 128-bit value internally).
func (m MMR) LeafCount() (uint64, error) {
	if !m.acc.LeafCount.IsUint64() {
		return 0, newError(ErrInvalidInput, "leaf count no longer fits in 64 bits", nil)
	}
	return m.acc.LeafCount.Uint64(), nil
}

// Peaks returns the accumulator's current peak digests, highest
// mountain first.
func (m MMR) Peaks() []Digest {
	return append([]Digest{}, m.acc.Peaks...)
}

// Bag folds every peak into one representative digest.
func (m MMR) Bag() Digest {
	return m.acc.BagPeaks(merkle.Blake3Hasher{})
}

// Append hashes leafData and folds it into the accumulator, returning
// the updated MMR and a membership proof for the new leaf.
func (m MMR) Append(leafData []byte) (MMR, MembershipProof) {
	updated, proof := m.acc.Append(leafData, merkle.Blake3Hasher{})
	return MMR{acc: updated}, proof
}

// AppendAndUpdateMPs behaves like Append, but additionally extends
// every proof in otherProofs whose mountain got folded into the newly
// merged peak, returning the indices it extended.
func (m MMR) AppendAndUpdateMPs(leafData []byte, otherProofs []*MembershipProof) (MMR, MembershipProof, []int) {
	updated, proof, changed := m.acc.AppendAndUpdateMPs(leafData, otherProofs, merkle.Blake3Hasher{})
	return MMR{acc: updated}, proof, changed
}

// VerifyMembership reports whether leafData's hash, folded up through
// proof's authentication path, reaches the peak the proof names.
func (m MMR) VerifyMembership(leafData []byte, proof MembershipProof) bool {
	hasher := merkle.Blake3Hasher{}
	return m.acc.VerifyMembership(hasher.HashLeaf(leafData), proof, hasher)
}

// MutateLeaf replaces the leaf proof authenticates with newLeafData.
// It trusts proof: an invalid or mismatched proof silently corrupts
// the returned accumulator's state.
func (m MMR) MutateLeaf(proof MembershipProof, newLeafData []byte) (MMR, error) {
	updated, err := m.acc.MutateLeaf(proof, newLeafData, merkle.Blake3Hasher{})
	if err != nil {
		return MMR{}, newError(ErrInvalidInput, "could not mutate leaf", err)
	}
	return MMR{acc: updated}, nil
}

// Mutation pairs a membership proof for an existing leaf with the
// data that should replace it.
type Mutation = mmr.Mutation

// BatchMutateLeafAndUpdateMPs applies every mutation in order, sharing
// recomputed digests across them, and propagates those digests into
// every proof in otherProofs whose path runs through a touched node.
func (m MMR) BatchMutateLeafAndUpdateMPs(mutations []Mutation, otherProofs []*MembershipProof) (MMR, []int, error) {
	updated, changed, err := m.acc.BatchMutateLeafAndUpdateMPs(mutations, otherProofs, merkle.Blake3Hasher{})
	if err != nil {
		return MMR{}, nil, newError(ErrInvalidInput, "could not batch-mutate leaves", err)
	}
	return MMR{acc: updated}, changed, nil
}

// VerifyBatchUpdate reports whether applying every mutation and then
// every append to m produces exactly newPeaks.
func (m MMR) VerifyBatchUpdate(newPeaks []Digest, appends [][]byte, mutations []Mutation) (bool, error) {
	ok, err := m.acc.VerifyBatchUpdate(newPeaks, appends, mutations, merkle.Blake3Hasher{})
	if err != nil {
		return false, newError(ErrInvalidInput, "could not verify batch update", err)
	}
	return ok, nil
}

// Encode serializes m to the §6 persisted accumulator wire format.
func (m MMR) Encode() ([]byte, error) {
	data, err := m.acc.Encode()
	if err != nil {
		return nil, newError(ErrInvalidInput, "could not encode accumulator", err)
	}
	return data, nil
}

// DecodeMMR parses the §6 wire format back into an MMR.
func DecodeMMR(data []byte) (MMR, error) {
	acc, err := mmr.DecodeAccumulator(data)
	if err != nil {
		return MMR{}, newError(ErrInvalidInput, "could not decode accumulator", err)
	}
	return MMR{acc: acc}, nil
}
