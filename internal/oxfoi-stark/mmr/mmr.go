package mmr

import "github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"

// MembershipProof lets a leaf's digest be checked against an
// Accumulator without replaying every append: the authentication path
// is the ordered sibling digests from the leaf's own node up to its
// mountain's peak, and PeakIndex names which entry of Peaks that
// mountain currently is.
type MembershipProof struct {
	DataIndex DataIndex
	AuthPath  []merkle.Digest
	PeakIndex int
}

// Accumulator is the compact, persisted MMR state of spec.md §3/§6: a
// leaf count and one peak digest per set bit of that count, highest
// bit (and hence earliest-appended, tallest mountain) first.
type Accumulator struct {
	LeafCount NodeIndex
	Peaks     []merkle.Digest
}

// NewAccumulator returns the empty accumulator.
func NewAccumulator() Accumulator {
	return Accumulator{LeafCount: idx(0)}
}

// BagPeaks folds every peak into a single representative digest, the
// classic MMR "bagging" used when the whole accumulator needs to be
// committed to as one value. An empty accumulator bags to the
// hasher's leaf hash of no bytes, a fixed well-defined value rather
// than a zero digest that could collide with a real leaf.
func (a Accumulator) BagPeaks(hasher merkle.Hasher) merkle.Digest {
	if len(a.Peaks) == 0 {
		return hasher.HashLeaf(nil)
	}
	acc := a.Peaks[len(a.Peaks)-1]
	for i := len(a.Peaks) - 2; i >= 0; i-- {
		acc = hasher.HashNode(a.Peaks[i], acc)
	}
	return acc
}

// Append folds leafData's hash into the accumulator, merging it with
// however many trailing same-height peaks the new leaf count's binary
// carry demands, and returns the updated accumulator plus a
// membership proof for the just-appended leaf, valid against that
// updated accumulator.
func (a Accumulator) Append(leafData []byte, hasher merkle.Hasher) (Accumulator, MembershipProof) {
	dataIndex := a.LeafCount
	current := hasher.HashLeaf(leafData)

	peaks := append([]merkle.Digest{}, a.Peaks...)
	var authPath []merkle.Digest
	for i := uint64(0); i < trailingOnesCount(a.LeafCount); i++ {
		sibling := peaks[len(peaks)-1]
		peaks = peaks[:len(peaks)-1]
		authPath = append(authPath, sibling)
		current = hasher.HashNode(sibling, current)
	}
	peaks = append(peaks, current)

	updated := Accumulator{LeafCount: idxAdd(a.LeafCount, idx(1)), Peaks: peaks}
	proof := MembershipProof{DataIndex: dataIndex, AuthPath: authPath, PeakIndex: len(peaks) - 1}
	return updated, proof
}

// AppendAndUpdateMPs behaves like Append, but additionally extends
// every proof in otherProofs whose mountain gets folded into the
// newly merged peak, keeping them valid against the returned
// accumulator instead of only against the one Append alone would
// leave them stale against. It returns the indices (into
// otherProofs) of every proof it extended.
func (a Accumulator) AppendAndUpdateMPs(leafData []byte, otherProofs []*MembershipProof, hasher merkle.Hasher) (Accumulator, MembershipProof, []int) {
	dataIndex := a.LeafCount
	current := hasher.HashLeaf(leafData)

	originalPeakCount := len(a.Peaks)
	peaks := append([]merkle.Digest{}, a.Peaks...)
	var authPath []merkle.Digest
	var mergeSiblingValues []merkle.Digest
	carries := trailingOnesCount(a.LeafCount)
	for i := uint64(0); i < carries; i++ {
		sibling := peaks[len(peaks)-1]
		peaks = peaks[:len(peaks)-1]
		authPath = append(authPath, sibling)
		mergeSiblingValues = append(mergeSiblingValues, current)
		current = hasher.HashNode(sibling, current)
	}
	peaks = append(peaks, current)

	updated := Accumulator{LeafCount: idxAdd(a.LeafCount, idx(1)), Peaks: peaks}
	proof := MembershipProof{DataIndex: dataIndex, AuthPath: authPath, PeakIndex: len(peaks) - 1}

	// The i-th popped peak was originally at index
	// originalPeakCount-1-i (peaks are popped from the end), so a
	// proof pointing at original index p was popped at round
	// originalPeakCount-1-p. mergeSiblingValues[round] is the
	// pre-merge digest it folds against at that round, and the peaks
	// popped in every later round (authPath[round+1:]) are the
	// siblings it folds against from there up to the new, taller
	// peak, which all merged mountains now share.
	var changed []int
	for i, p := range otherProofs {
		round := originalPeakCount - 1 - p.PeakIndex
		if round < 0 || round >= len(mergeSiblingValues) {
			continue
		}
		p.AuthPath = append(p.AuthPath, mergeSiblingValues[round])
		p.AuthPath = append(p.AuthPath, authPath[round+1:]...)
		p.PeakIndex = len(peaks) - 1
		changed = append(changed, i)
	}

	return updated, proof, changed
}

// VerifyMembership reports whether leafDigest, folded up through
// proof's authentication path, reaches the peak the proof names, and
// that the proof names the mountain data_index actually belongs to.
func (a Accumulator) VerifyMembership(leafDigest merkle.Digest, proof MembershipProof, hasher merkle.Hasher) bool {
	if idxCmp(proof.DataIndex, a.LeafCount) >= 0 {
		return false
	}
	wantPeak, err := leafIndexToPeakIndex(proof.DataIndex, a.LeafCount)
	if err != nil || proof.PeakIndex != wantPeak {
		return false
	}
	if proof.PeakIndex < 0 || proof.PeakIndex >= len(a.Peaks) {
		return false
	}
	heights := peakHeights(a.LeafCount)
	if uint64(len(proof.AuthPath)) != heights[proof.PeakIndex] {
		return false
	}

	node := dataIndexToNodeIndex(proof.DataIndex)
	current := leafDigest
	for _, sib := range proof.AuthPath {
		isRight, _ := rightChildAndHeight(node)
		if isRight {
			current = hasher.HashNode(sib, current)
		} else {
			current = hasher.HashNode(current, sib)
		}
		node = parent(node)
	}
	return current == a.Peaks[proof.PeakIndex]
}

// MutateLeaf recomputes the chain from proof's leaf position to its
// peak with newLeafData in place of the old leaf, and replaces that
// one peak. It does not itself re-verify the old leaf's membership:
// an invalid or mismatched proof silently corrupts the accumulator's
// state, per spec's documented trust-the-caller contract.
func (a Accumulator) MutateLeaf(proof MembershipProof, newLeafData []byte, hasher merkle.Hasher) (Accumulator, error) {
	if proof.PeakIndex < 0 || proof.PeakIndex >= len(a.Peaks) {
		return a, errIndexOutOfRange
	}
	heights := peakHeights(a.LeafCount)
	if uint64(len(proof.AuthPath)) != heights[proof.PeakIndex] {
		return a, errInvalidProofLength
	}

	node := dataIndexToNodeIndex(proof.DataIndex)
	current := hasher.HashLeaf(newLeafData)
	for _, sib := range proof.AuthPath {
		isRight, _ := rightChildAndHeight(node)
		if isRight {
			current = hasher.HashNode(sib, current)
		} else {
			current = hasher.HashNode(current, sib)
		}
		node = parent(node)
	}

	peaks := append([]merkle.Digest{}, a.Peaks...)
	peaks[proof.PeakIndex] = current
	return Accumulator{LeafCount: a.LeafCount, Peaks: peaks}, nil
}

// Mutation pairs a membership proof for an existing leaf with the
// data that should replace it.
type Mutation struct {
	Proof       MembershipProof
	NewLeafData []byte
}

// BatchMutateLeafAndUpdateMPs applies every mutation in order,
// sharing one node-index -> updated-digest map across all of them so
// a later mutation sees any node an earlier mutation already
// recomputed along a shared path prefix, and propagates those same
// updated digests into every proof in otherProofs whose authentication
// path runs through a touched node. It returns the indices (into
// otherProofs, deduplicated, in first-touched order) of every proof
// it actually modified.
func (a Accumulator) BatchMutateLeafAndUpdateMPs(mutations []Mutation, otherProofs []*MembershipProof, hasher merkle.Hasher) (Accumulator, []int, error) {
	heights := peakHeights(a.LeafCount)
	peaks := append([]merkle.Digest{}, a.Peaks...)
	touched := map[string]merkle.Digest{}

	for _, m := range mutations {
		if m.Proof.PeakIndex < 0 || m.Proof.PeakIndex >= len(peaks) {
			return a, nil, errIndexOutOfRange
		}
		if uint64(len(m.Proof.AuthPath)) != heights[m.Proof.PeakIndex] {
			return a, nil, errInvalidProofLength
		}

		node := dataIndexToNodeIndex(m.Proof.DataIndex)
		current := hasher.HashLeaf(m.NewLeafData)
		touched[nodeKey(node)] = current
		for _, sib := range m.Proof.AuthPath {
			isRight, h := rightChildAndHeight(node)
			if fresh, ok := touched[nodeKey(siblingOf(node, isRight, h))]; ok {
				sib = fresh
			}
			if isRight {
				current = hasher.HashNode(sib, current)
			} else {
				current = hasher.HashNode(current, sib)
			}
			node = parent(node)
			touched[nodeKey(node)] = current
		}
		peaks[m.Proof.PeakIndex] = current
	}

	var changed []int
	for i, p := range otherProofs {
		node := dataIndexToNodeIndex(p.DataIndex)
		didChange := false
		for step := range p.AuthPath {
			isRight, h := rightChildAndHeight(node)
			sibIdx := siblingOf(node, isRight, h)
			if fresh, ok := touched[nodeKey(sibIdx)]; ok && fresh != p.AuthPath[step] {
				p.AuthPath[step] = fresh
				didChange = true
			}
			node = parent(node)
		}
		if didChange {
			changed = append(changed, i)
		}
	}

	return Accumulator{LeafCount: a.LeafCount, Peaks: peaks}, changed, nil
}

// VerifyBatchUpdate rejects a batch up front if any mutation index is
// duplicated or out of range; otherwise it applies every mutation,
// then every append, and reports whether the resulting peaks equal
// newPeaks.
func (a Accumulator) VerifyBatchUpdate(newPeaks []merkle.Digest, appends [][]byte, mutations []Mutation, hasher merkle.Hasher) (bool, error) {
	seen := map[string]bool{}
	for _, m := range mutations {
		if idxCmp(m.Proof.DataIndex, a.LeafCount) >= 0 {
			return false, errIndexOutOfRange
		}
		key := nodeKey(m.Proof.DataIndex)
		if seen[key] {
			return false, errDuplicateMutationIndex
		}
		seen[key] = true
	}

	updated, _, err := a.BatchMutateLeafAndUpdateMPs(mutations, nil, hasher)
	if err != nil {
		return false, err
	}
	for _, data := range appends {
		updated, _ = updated.Append(data, hasher)
	}

	if len(updated.Peaks) != len(newPeaks) {
		return false, nil
	}
	for i := range updated.Peaks {
		if updated.Peaks[i] != newPeaks[i] {
			return false, nil
		}
	}
	return true, nil
}
