package protocols

import (
	"encoding/binary"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
)

const authPathStepSize = 1 + merkle.DigestSize

// DecodeProof parses the §6 wire format back into a Proof. Any
// truncated header, truncated payload, or out-of-range field element
// is an EncodingError.
func DecodeProof(data []byte) (*Proof, error) {
	var proof Proof
	for len(data) > 0 {
		if len(data) < 5 {
			return nil, newError(KindEncoding, "truncated proof item header", nil)
		}
		kind := ItemKind(data[0])
		length := binary.BigEndian.Uint32(data[1:5])
		data = data[5:]
		if uint32(len(data)) < length {
			return nil, newError(KindEncoding, "truncated proof item payload", nil)
		}
		payload := data[:length]
		data = data[length:]

		item, err := decodeItem(kind, payload)
		if err != nil {
			return nil, err
		}
		proof.Items = append(proof.Items, item)
	}
	return &proof, nil
}

func decodeItem(kind ItemKind, payload []byte) (ProofItem, error) {
	switch kind {
	case ItemCommitment:
		if len(payload) != merkle.DigestSize {
			return ProofItem{}, newError(KindEncoding, "commitment item has wrong length", nil)
		}
		var d merkle.Digest
		copy(d[:], payload)
		return commitmentItem(d), nil

	case ItemFieldElement:
		if len(payload) != 8 {
			return ProofItem{}, newError(KindEncoding, "field element item has wrong length", nil)
		}
		e, err := decodeFieldElement(payload)
		if err != nil {
			return ProofItem{}, err
		}
		return fieldElementItem(e), nil

	case ItemFieldElements:
		if len(payload)%8 != 0 {
			return ProofItem{}, newError(KindEncoding, "field elements item is not a multiple of 8 bytes", nil)
		}
		elems := make([]field.Element, len(payload)/8)
		for i := range elems {
			e, err := decodeFieldElement(payload[i*8 : i*8+8])
			if err != nil {
				return ProofItem{}, err
			}
			elems[i] = e
		}
		return fieldElementsItem(elems), nil

	case ItemAuthPath:
		if len(payload)%authPathStepSize != 0 {
			return ProofItem{}, newError(KindEncoding, "auth path item has malformed step length", nil)
		}
		steps := make(merkle.AuthPath, len(payload)/authPathStepSize)
		for i := range steps {
			base := i * authPathStepSize
			steps[i].SiblingOnRight = payload[base] == 1
			copy(steps[i].Sibling[:], payload[base+1:base+authPathStepSize])
		}
		return authPathItem(steps), nil

	default:
		return ProofItem{}, newError(KindEncoding, "unknown proof item kind", nil)
	}
}

func decodeFieldElement(b []byte) (field.Element, error) {
	var arr [8]byte
	copy(arr[:], b)
	e, err := field.FromBytes(arr)
	if err != nil {
		return field.Zero(), newError(KindEncoding, "field element out of range", err)
	}
	return e, nil
}
