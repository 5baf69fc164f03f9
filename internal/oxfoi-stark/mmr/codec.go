package mmr

import (
	"encoding/binary"
	"errors"

	"github.com/holiman/uint256"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
)

// ErrLeafCountTooLarge is returned encoding an accumulator whose
// LeafCount does not fit the §6 wire format's 64-bit field. The
// accumulator itself tracks LeafCount as a full 128-bit value (see
// index.go), but the persisted/wire representation is fixed at u64.
var ErrLeafCountTooLarge = errors.New("mmr: leaf count does not fit in 64 bits")

// Encode serializes a per spec.md §6's persisted MMR state: leaf_count
// as 8 big-endian bytes, peaks_len as 4 big-endian bytes, then every
// peak digest concatenated in order.
func (a Accumulator) Encode() ([]byte, error) {
	if !a.LeafCount.IsUint64() {
		return nil, ErrLeafCountTooLarge
	}
	out := make([]byte, 8+4+len(a.Peaks)*merkle.DigestSize)
	binary.BigEndian.PutUint64(out[0:8], a.LeafCount.Uint64())
	binary.BigEndian.PutUint32(out[8:12], uint32(len(a.Peaks)))
	for i, peak := range a.Peaks {
		copy(out[12+i*merkle.DigestSize:], peak[:])
	}
	return out, nil
}

// DecodeAccumulator parses the §6 wire format back into an
// Accumulator.
func DecodeAccumulator(data []byte) (Accumulator, error) {
	if len(data) < 12 {
		return Accumulator{}, errTruncatedAccumulator
	}
	leafCount := binary.BigEndian.Uint64(data[0:8])
	peaksLen := binary.BigEndian.Uint32(data[8:12])
	rest := data[12:]
	if uint64(len(rest)) != uint64(peaksLen)*uint64(merkle.DigestSize) {
		return Accumulator{}, errTruncatedAccumulator
	}
	peaks := make([]merkle.Digest, peaksLen)
	for i := range peaks {
		copy(peaks[i][:], rest[i*merkle.DigestSize:])
	}
	return Accumulator{LeafCount: *uint256.NewInt(leafCount), Peaks: peaks}, nil
}
