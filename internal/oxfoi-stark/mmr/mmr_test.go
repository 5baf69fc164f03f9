package mmr

import (
	"encoding/binary"
	"testing"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
)

func leafBytes(v uint64) []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[8:], v)
	return b[:]
}

// appendWithLiveProofs appends every entry of leaves to an empty
// accumulator via AppendAndUpdateMPs and returns the result together
// with one membership proof per leaf, each valid against it.
func appendWithLiveProofs(leaves [][]byte, hasher merkle.Hasher) (Accumulator, []MembershipProof) {
	acc := NewAccumulator()
	proofs := make([]MembershipProof, 0, len(leaves))
	for _, data := range leaves {
		others := make([]*MembershipProof, len(proofs))
		for j := range proofs {
			others[j] = &proofs[j]
		}
		var proof MembershipProof
		acc, proof, _ = acc.AppendAndUpdateMPs(data, others, hasher)
		proofs = append(proofs, proof)
	}
	return acc, proofs
}

func TestAppendSequenceMatchesDirectTreeConstruction(t *testing.T) {
	hasher := merkle.Blake3Hasher{}
	acc := NewAccumulator()
	var proofs []MembershipProof
	for _, v := range []uint64{14, 15, 16} {
		// Earlier proofs are extended in step so they stay valid
		// against the final accumulator, not only the snapshot they
		// were minted against.
		others := make([]*MembershipProof, len(proofs))
		for j := range proofs {
			others[j] = &proofs[j]
		}
		var proof MembershipProof
		acc, proof, _ = acc.AppendAndUpdateMPs(leafBytes(v), others, hasher)
		proofs = append(proofs, proof)
	}

	l0 := hasher.HashLeaf(leafBytes(14))
	l1 := hasher.HashLeaf(leafBytes(15))
	l2 := hasher.HashLeaf(leafBytes(16))
	wantPeaks := []merkle.Digest{hasher.HashNode(l0, l1), l2}

	if len(acc.Peaks) != len(wantPeaks) {
		t.Fatalf("peak count = %d, want %d", len(acc.Peaks), len(wantPeaks))
	}
	for i := range wantPeaks {
		if acc.Peaks[i] != wantPeaks[i] {
			t.Fatalf("peak %d = %x, want %x", i, acc.Peaks[i], wantPeaks[i])
		}
	}

	wantBag := hasher.HashNode(wantPeaks[0], wantPeaks[1])
	if acc.BagPeaks(hasher) != wantBag {
		t.Fatalf("bag_peaks mismatch")
	}

	for i, v := range []uint64{14, 15, 16} {
		leafDigest := hasher.HashLeaf(leafBytes(v))
		if !acc.VerifyMembership(leafDigest, proofs[i], hasher) {
			t.Fatalf("membership proof for leaf %d failed to verify", i)
		}
	}
}

func TestAppendProveEveryLeafAfterArbitrarySequence(t *testing.T) {
	hasher := merkle.Blake3Hasher{}
	acc := NewAccumulator()
	var leaves [][]byte
	var proofs []MembershipProof
	for i := uint64(0); i < 37; i++ {
		data := leafBytes(i)

		// A plain Append only returns a proof for the just-appended
		// leaf; every earlier proof must be extended in step or later
		// merges leave it pointing at a mountain that no longer has a
		// peak of its own. AppendAndUpdateMPs does both at once.
		others := make([]*MembershipProof, len(proofs))
		for j := range proofs {
			others[j] = &proofs[j]
		}
		var proof MembershipProof
		acc, proof, _ = acc.AppendAndUpdateMPs(data, others, hasher)

		leaves = append(leaves, data)
		proofs = append(proofs, proof)
	}

	for i, leaf := range leaves {
		leafDigest := hasher.HashLeaf(leaf)
		if !acc.VerifyMembership(leafDigest, proofs[i], hasher) {
			t.Fatalf("membership proof for leaf %d failed to verify against the final accumulator", i)
		}
	}
}

func TestVerifyBatchUpdateEquivalence(t *testing.T) {
	hasher := merkle.Blake3Hasher{}
	var leaves [][]byte
	for i := uint64(0); i < 20; i++ {
		leaves = append(leaves, leafBytes(1000+i))
	}
	acc, proofs := appendWithLiveProofs(leaves, hasher)

	mutationIdx := []int{2, 5, 9, 13, 17}
	newData := make([][]byte, len(mutationIdx))
	for i, idx := range mutationIdx {
		newData[i] = leafBytes(9000 + uint64(idx))
	}
	appendData := [][]byte{leafBytes(7001), leafBytes(7002), leafBytes(7003)}

	mutations := make([]Mutation, len(mutationIdx))
	for i, idx := range mutationIdx {
		mutations[i] = Mutation{Proof: proofs[idx], NewLeafData: newData[i]}
	}

	// Apply the same mutations one at a time, each with a proof minted
	// against the accumulator as it stands after the earlier ones.
	directLeaves := append([][]byte{}, leaves...)
	var direct Accumulator
	for i, idx := range mutationIdx {
		current, currentProofs := appendWithLiveProofs(directLeaves, hasher)
		var err error
		direct, err = current.MutateLeaf(currentProofs[idx], newData[i], hasher)
		if err != nil {
			t.Fatalf("direct MutateLeaf failed: %v", err)
		}
		directLeaves[idx] = newData[i]
	}
	for _, data := range appendData {
		direct, _ = direct.Append(data, hasher)
	}

	ok, err := acc.VerifyBatchUpdate(direct.Peaks, appendData, mutations, hasher)
	if err != nil {
		t.Fatalf("VerifyBatchUpdate returned an error: %v", err)
	}
	if !ok {
		t.Fatalf("VerifyBatchUpdate rejected a batch that matches direct application")
	}

	dupMutations := append([]Mutation{}, mutations...)
	dupMutations[1].Proof = dupMutations[0].Proof
	if _, err := acc.VerifyBatchUpdate(direct.Peaks, appendData, dupMutations, hasher); err != errDuplicateMutationIndex {
		t.Fatalf("VerifyBatchUpdate did not reject a batch with a duplicated mutation index, got err=%v", err)
	}
}

func TestBatchMutateLeafAndUpdateMPsAppliesSequentially(t *testing.T) {
	hasher := merkle.Blake3Hasher{}
	leaves := make([][]byte, 8)
	for i := range leaves {
		leaves[i] = leafBytes(uint64(i))
	}
	acc, proofs := appendWithLiveProofs(leaves, hasher)

	mutations := []Mutation{
		{Proof: proofs[0], NewLeafData: leafBytes(9990)},
		{Proof: proofs[1], NewLeafData: leafBytes(9991)},
	}
	other := proofs[2]

	batched, changed, err := acc.BatchMutateLeafAndUpdateMPs(mutations, []*MembershipProof{&other}, hasher)
	if err != nil {
		t.Fatalf("BatchMutateLeafAndUpdateMPs failed: %v", err)
	}

	// Each sequential step uses a proof minted against the accumulator
	// as it stands after the earlier mutations.
	seqLeaves := append([][]byte{}, leaves...)
	var sequential Accumulator
	for _, m := range mutations {
		d := m.Proof.DataIndex.Uint64()
		current, currentProofs := appendWithLiveProofs(seqLeaves, hasher)
		sequential, err = current.MutateLeaf(currentProofs[d], m.NewLeafData, hasher)
		if err != nil {
			t.Fatalf("sequential MutateLeaf failed: %v", err)
		}
		seqLeaves[d] = m.NewLeafData
	}

	if len(batched.Peaks) != len(sequential.Peaks) {
		t.Fatalf("peak count diverged between batched and sequential mutation")
	}
	for i := range batched.Peaks {
		if batched.Peaks[i] != sequential.Peaks[i] {
			t.Fatalf("peak %d diverged between batched and sequential mutation", i)
		}
	}

	leaf2Digest := hasher.HashLeaf(leafBytes(2))
	if !batched.VerifyMembership(leaf2Digest, other, hasher) {
		t.Fatalf("updated membership proof for untouched leaf 2 no longer verifies")
	}
	_ = changed
}

func TestAccumulatorEncodeDecodeRoundTrip(t *testing.T) {
	hasher := merkle.Blake3Hasher{}
	acc := NewAccumulator()
	for i := uint64(0); i < 9; i++ {
		acc, _ = acc.Append(leafBytes(i), hasher)
	}

	encoded, err := acc.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := DecodeAccumulator(encoded)
	if err != nil {
		t.Fatalf("DecodeAccumulator failed: %v", err)
	}
	if !decoded.LeafCount.Eq(&acc.LeafCount) {
		t.Fatalf("leaf count did not round-trip")
	}
	if len(decoded.Peaks) != len(acc.Peaks) {
		t.Fatalf("peak count did not round-trip")
	}
	for i := range acc.Peaks {
		if decoded.Peaks[i] != acc.Peaks[i] {
			t.Fatalf("peak %d did not round-trip", i)
		}
	}
}
