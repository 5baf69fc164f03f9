package protocols

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

// ProofStream is the shared Fiat-Shamir transcript: the prover
// enqueues items as it produces them, the verifier dequeues the same
// items in the same order, and both sides fold every item into an
// identical sponge state, so SampleIndex/SampleScalar calls made at
// the same position in the protocol always agree.
type ProofStream struct {
	Items      []ProofItem
	itemsIndex int
	sponge     *sponge
}

// NewProofStream returns an empty transcript, used by a prover.
func NewProofStream() *ProofStream {
	return &ProofStream{sponge: newSponge()}
}

// ProofStreamFromProof rebuilds a read-only transcript from a
// finished Proof, used by a verifier: the sponge starts empty and
// each Dequeue call absorbs the item it returns, so a SampleIndex/
// SampleScalar call made after the same items reproduces the prover's.
func ProofStreamFromProof(proof *Proof) *ProofStream {
	return &ProofStream{Items: proof.Items, sponge: newSponge()}
}

func (ps *ProofStream) enqueue(item ProofItem) {
	ps.sponge.Absorb(item.encode())
	ps.Items = append(ps.Items, item)
}

func (ps *ProofStream) EnqueueCommitment(d merkle.Digest) { ps.enqueue(commitmentItem(d)) }

func (ps *ProofStream) EnqueueFieldElement(e field.Element) { ps.enqueue(fieldElementItem(e)) }

func (ps *ProofStream) EnqueueFieldElements(es []field.Element) { ps.enqueue(fieldElementsItem(es)) }

func (ps *ProofStream) EnqueueAuthPath(p merkle.AuthPath) { ps.enqueue(authPathItem(p)) }

// dequeue absorbs and returns the next unread item, in lockstep with
// how the prover originally enqueued it.
func (ps *ProofStream) dequeue() (ProofItem, error) {
	if ps.itemsIndex >= len(ps.Items) {
		return ProofItem{}, newError(KindVerification, "proof stream exhausted", nil)
	}
	item := ps.Items[ps.itemsIndex]
	ps.itemsIndex++
	ps.sponge.Absorb(item.encode())
	return item, nil
}

func (ps *ProofStream) DequeueCommitment() (merkle.Digest, error) {
	item, err := ps.dequeue()
	if err != nil {
		return merkle.Digest{}, err
	}
	if item.Kind != ItemCommitment {
		return merkle.Digest{}, newError(KindVerification, "expected a commitment item", nil)
	}
	return item.Commitment, nil
}

func (ps *ProofStream) DequeueFieldElement() (field.Element, error) {
	item, err := ps.dequeue()
	if err != nil {
		return field.Zero(), err
	}
	if item.Kind != ItemFieldElement {
		return field.Zero(), newError(KindVerification, "expected a field element item", nil)
	}
	return item.Element, nil
}

func (ps *ProofStream) DequeueFieldElements() ([]field.Element, error) {
	item, err := ps.dequeue()
	if err != nil {
		return nil, err
	}
	if item.Kind != ItemFieldElements {
		return nil, newError(KindVerification, "expected a field elements item", nil)
	}
	return item.Elements, nil
}

func (ps *ProofStream) DequeueAuthPath() (merkle.AuthPath, error) {
	item, err := ps.dequeue()
	if err != nil {
		return nil, err
	}
	if item.Kind != ItemAuthPath {
		return nil, newError(KindVerification, "expected an auth path item", nil)
	}
	return item.AuthPath, nil
}

// ToProof finalizes the transcript as a Proof.
func (ps *ProofStream) ToProof() *Proof {
	return &Proof{Items: ps.Items}
}

// SampleIndex draws a uniform pseudorandom index in [0, upperBound)
// from the current transcript state. upperBound must be a power of
// two.
func (ps *ProofStream) SampleIndex(upperBound int) (int, error) {
	if upperBound <= 0 || upperBound&(upperBound-1) != 0 {
		return 0, newError(KindUsage, "sample index upper bound must be a power of two", nil)
	}
	return ps.sponge.sampleIndex(upperBound), nil
}

// SampleIndices draws count distinct uniform indices in [0,
// upperBound).
func (ps *ProofStream) SampleIndices(upperBound, count int) ([]int, error) {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		idx, err := ps.SampleIndex(upperBound)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out, nil
}

// SampleScalar draws a single pseudorandom extension-field challenge.
func (ps *ProofStream) SampleScalar() xfield.Element {
	return ps.sponge.sampleXFieldElement()
}

// SampleScalars draws count pseudorandom extension-field challenges.
func (ps *ProofStream) SampleScalars(count int) []xfield.Element {
	out := make([]xfield.Element, count)
	for i := range out {
		out[i] = ps.SampleScalar()
	}
	return out
}
