package protocols

import (
	"encoding/binary"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
)

// ItemKind identifies which of the four proof-stream entry shapes a
// ProofItem holds.
type ItemKind int

const (
	ItemCommitment ItemKind = iota
	ItemFieldElement
	ItemFieldElements
	ItemAuthPath
)

// ProofItem is one entry of the proof stream: a Merkle commitment, a
// single field element, a vector of field elements, or an
// authentication path.
type ProofItem struct {
	Kind       ItemKind
	Commitment merkle.Digest
	Element    field.Element
	Elements   []field.Element
	AuthPath   merkle.AuthPath
}

func commitmentItem(d merkle.Digest) ProofItem {
	return ProofItem{Kind: ItemCommitment, Commitment: d}
}

func fieldElementItem(e field.Element) ProofItem {
	return ProofItem{Kind: ItemFieldElement, Element: e}
}

func fieldElementsItem(es []field.Element) ProofItem {
	return ProofItem{Kind: ItemFieldElements, Elements: es}
}

func authPathItem(p merkle.AuthPath) ProofItem {
	return ProofItem{Kind: ItemAuthPath, AuthPath: p}
}

// encode returns the bytes absorbed into the Fiat-Shamir sponge and
// written to the wire for this item, not counting its length prefix.
func (pi ProofItem) encode() []byte {
	switch pi.Kind {
	case ItemCommitment:
		return append([]byte{}, pi.Commitment[:]...)
	case ItemFieldElement:
		b := pi.Element.ToBytes()
		return b[:]
	case ItemFieldElements:
		out := make([]byte, 0, 8*len(pi.Elements))
		for _, e := range pi.Elements {
			b := e.ToBytes()
			out = append(out, b[:]...)
		}
		return out
	case ItemAuthPath:
		out := make([]byte, 0, len(pi.AuthPath)*(merkle.DigestSize+1))
		for _, step := range pi.AuthPath {
			flag := byte(0)
			if step.SiblingOnRight {
				flag = 1
			}
			out = append(out, flag)
			out = append(out, step.Sibling[:]...)
		}
		return out
	default:
		return nil
	}
}

// Proof is the finished, write-only-then-read-only sequence of items
// a prover produces and a verifier consumes.
type Proof struct {
	Items []ProofItem
}

// Encode serializes the proof to the wire format of §6: a
// length-prefixed sequence of entries, each entry itself prefixed by
// a one-byte kind tag and a four-byte big-endian length of its
// payload.
func (p *Proof) Encode() []byte {
	var out []byte
	for _, item := range p.Items {
		payload := item.encode()
		var header [5]byte
		header[0] = byte(item.Kind)
		binary.BigEndian.PutUint32(header[1:], uint32(len(payload)))
		out = append(out, header[:]...)
		out = append(out, payload...)
	}
	return out
}
