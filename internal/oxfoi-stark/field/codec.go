package field

import (
	"encoding/binary"
	"errors"
)

// ErrValueOutOfRange is returned by FromBytes when the encoded value
// is not less than P, i.e. is not a canonical field element.
var ErrValueOutOfRange = errors.New("field: encoded value is not less than P")

// ToBytes encodes e as 8 little-endian bytes, the wire format every
// field element uses in a proof stream or a persisted digest.
func (e Element) ToBytes() [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], uint64(e))
	return out
}

// FromBytes decodes 8 little-endian bytes into a field element,
// rejecting any encoded value that is not canonically reduced.
func FromBytes(b [8]byte) (Element, error) {
	v := binary.LittleEndian.Uint64(b[:])
	if v >= P {
		return Zero(), ErrValueOutOfRange
	}
	return Element(v), nil
}
