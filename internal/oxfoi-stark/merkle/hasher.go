// Package merkle implements a binary Merkle tree over a pluggable
// digest hash. The leaf and node hashes are pluggable via Hasher; this
// package ships two implementations, Blake3Hasher and SHA3Hasher. The
// Fiat-Shamir proof stream lives in the protocols package.
package merkle

import (
	"golang.org/x/crypto/sha3"

	"github.com/zeebo/blake3"
)

// DigestSize is the width, in bytes, of every digest this package
// produces, regardless of which Hasher is configured.
const DigestSize = 32

// Digest is a fixed-width commitment value.
type Digest [DigestSize]byte

// Hasher computes the leaf and internal-node digests of a Merkle
// tree. Leaf and node hashing are kept distinct so an implementation
// may domain-separate them.
type Hasher interface {
	HashLeaf(data []byte) Digest
	HashNode(left, right Digest) Digest
}

// Blake3Hasher is the default commitment hash: fast and tree-friendly.
type Blake3Hasher struct{}

func (Blake3Hasher) HashLeaf(data []byte) Digest {
	return Digest(blake3.Sum256(append([]byte{0x00}, data...)))
}

func (Blake3Hasher) HashNode(left, right Digest) Digest {
	buf := make([]byte, 1+2*DigestSize)
	buf[0] = 0x01
	copy(buf[1:], left[:])
	copy(buf[1+DigestSize:], right[:])
	return Digest(blake3.Sum256(buf))
}

// SHA3Hasher is an alternate Hasher implementation over
// golang.org/x/crypto/sha3, useful when a deployment needs a
// NIST-standardized primitive instead of Blake3.
type SHA3Hasher struct{}

func (SHA3Hasher) HashLeaf(data []byte) Digest {
	h := sha3.Sum256(append([]byte{0x00}, data...))
	return Digest(h)
}

func (SHA3Hasher) HashNode(left, right Digest) Digest {
	buf := make([]byte, 1+2*DigestSize)
	buf[0] = 0x01
	copy(buf[1:], left[:])
	copy(buf[1+DigestSize:], right[:])
	h := sha3.Sum256(buf)
	return Digest(h)
}
