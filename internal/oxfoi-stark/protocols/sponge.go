package protocols

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

// sponge is the Fiat-Shamir state a ProofStream folds every absorbed
// item into: a running Blake3 digest plus a squeeze counter. Absorbing
// new bytes hashes them in and resets the counter, so two squeezes
// against the same absorbed prefix are reproducible by prover and
// verifier alike but never collide with each other.
type sponge struct {
	state   merkle.Digest
	counter uint64
}

func newSponge() *sponge {
	return &sponge{}
}

func (s *sponge) Absorb(data []byte) {
	buf := make([]byte, 0, len(s.state)+len(data))
	buf = append(buf, s.state[:]...)
	buf = append(buf, data...)
	s.state = merkle.Digest(blake3.Sum256(buf))
	s.counter = 0
}

func (s *sponge) squeeze() merkle.Digest {
	var cb [8]byte
	binary.BigEndian.PutUint64(cb[:], s.counter)
	s.counter++
	buf := make([]byte, 0, len(s.state)+len(cb))
	buf = append(buf, s.state[:]...)
	buf = append(buf, cb[:]...)
	return merkle.Digest(blake3.Sum256(buf))
}

// sampleFieldElement squeezes 8 bytes and reduces them into Fp.
func (s *sponge) sampleFieldElement() field.Element {
	out := s.squeeze()
	return field.New(binary.BigEndian.Uint64(out[:8]))
}

// sampleXFieldElement squeezes three field elements into a cubic
// extension challenge, giving FRI's folding coefficients and the
// composition weights the extra soundness headroom of F_{p^3}.
func (s *sponge) sampleXFieldElement() xfield.Element {
	return xfield.New(s.sampleFieldElement(), s.sampleFieldElement(), s.sampleFieldElement())
}

// sampleIndex squeezes a uniform index in [0, upperBound). upperBound
// must be a power of two so the reduction is an exact bitmask rather
// than a biased modulo.
func (s *sponge) sampleIndex(upperBound int) int {
	out := s.squeeze()
	v := binary.BigEndian.Uint32(out[:4])
	return int(v) & (upperBound - 1)
}
