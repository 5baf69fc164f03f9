// Package mmr implements a Merkle Mountain Range: an append-only
// authenticated log whose state is (leaf_count, peaks), one peak per
// set bit of leaf_count. Node indices are 1-based and assigned in the
// order nodes are created; within any one mountain the peak always
// gets the highest index in that mountain's range, since it is always
// the last node merged into existence there ("peaks-last"). Grounded
// on spec.md §4.8's named index helpers and on general Merkle Mountain
// Range construction, since original_source/ carries the MMR's
// Rust-side call sites but not its underlying index-arithmetic module.
package mmr

import "github.com/holiman/uint256"

// DataIndex and NodeIndex are modeled on the original Rust source's
// u128 index fields rather than a native uint64, wired through
// uint256.Int so the 128-bit arithmetic is real rather than
// truncated.
type DataIndex = uint256.Int
type NodeIndex = uint256.Int

func idx(v uint64) NodeIndex { return *uint256.NewInt(v) }

func idxAdd(a, b NodeIndex) NodeIndex {
	var z uint256.Int
	z.Add(&a, &b)
	return z
}

func idxSub(a, b NodeIndex) NodeIndex {
	var z uint256.Int
	z.Sub(&a, &b)
	return z
}

func idxMul(a, b NodeIndex) NodeIndex {
	var z uint256.Int
	z.Mul(&a, &b)
	return z
}

func idxCmp(a, b NodeIndex) int { return a.Cmp(&b) }

func idxIsZero(a NodeIndex) bool { return a.IsZero() }

// twoPow returns 2^h as a NodeIndex, via shift rather than repeated
// doubling so heights up into the hundreds never overflow a native
// uint64 shift amount.
func twoPow(h uint64) NodeIndex {
	var z uint256.Int
	one := uint256.NewInt(1)
	z.Lsh(one, uint(h))
	return z
}

// perfectSize returns 2^(h+1)-1, the node count of a perfect binary
// subtree of height h.
func perfectSize(h uint64) NodeIndex {
	return idxSub(twoPow(h+1), idx(1))
}

func popcount(v NodeIndex) uint64 {
	b := v.Bytes32()
	var count uint64
	for _, byteVal := range b {
		count += uint64(popcountByte(byteVal))
	}
	return count
}

func popcountByte(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

// dataIndexToNodeIndex returns the 1-based node index assigned to the
// leaf at 0-based data index dataIndex: the leaf itself plus every
// internal node created strictly before it (dataIndex - popcount) of
// them, since appending n leaves one at a time creates exactly
// n - popcount(n) merges, plus one slot to move from 0-based to
// 1-based.
func dataIndexToNodeIndex(dataIndex DataIndex) NodeIndex {
	twice := idxMul(dataIndex, idx(2))
	return idxAdd(idxSub(twice, idx(popcount(dataIndex))), idx(1))
}

// largestPerfectSizeLE returns the largest size of the form 2^(h+1)-1
// that is <= p, along with its height h. Every node's own subtree
// spans a contiguous block of exactly this size ending at the node's
// own index, since the node is always the last one created in its
// subtree (its peak).
func largestPerfectSizeLE(p NodeIndex) (NodeIndex, uint64) {
	h := uint64(0)
	size := perfectSize(0)
	for {
		next := perfectSize(h + 1)
		if idxCmp(next, p) > 0 {
			return size, h
		}
		size = next
		h++
	}
}

// heightOf returns the height of the subtree rooted at node index
// pos: repeatedly strip the largest perfect-subtree block the index
// could still belong to until the remainder exactly matches a block
// size, which happens precisely when pos is that block's own peak.
func heightOf(pos NodeIndex) uint64 {
	p := pos
	for {
		size, h := largestPerfectSizeLE(p)
		if idxCmp(p, size) == 0 {
			return h
		}
		p = idxSub(p, size)
	}
}

// rightChildAndHeight reports whether nodeIndex is the right child of
// its parent, and its height. nodeIndex is a right child exactly when
// a same-height subtree immediately precedes it (its candidate left
// sibling); otherwise it is a left child awaiting a same-height
// partner that may not exist yet.
func rightChildAndHeight(nodeIndex NodeIndex) (isRight bool, height uint64) {
	h := heightOf(nodeIndex)
	blockSize := perfectSize(h)
	if idxCmp(nodeIndex, blockSize) <= 0 {
		return false, h
	}
	candidate := idxSub(nodeIndex, blockSize)
	if idxIsZero(candidate) {
		return false, h
	}
	if heightOf(candidate) == h {
		return true, h
	}
	return false, h
}

// parent returns the index of nodeIndex's parent, once it exists
// (i.e. once its sibling has been created too).
func parent(nodeIndex NodeIndex) NodeIndex {
	isRight, h := rightChildAndHeight(nodeIndex)
	if isRight {
		return idxAdd(nodeIndex, idx(1))
	}
	return idxAdd(nodeIndex, idxAdd(perfectSize(h), idx(1)))
}

// leftSibling returns the index of the left sibling of a right child
// at the given height.
func leftSibling(nodeIndex NodeIndex, height uint64) NodeIndex {
	return idxSub(nodeIndex, perfectSize(height))
}

// rightSibling returns the index of the right sibling of a left child
// at the given height.
func rightSibling(nodeIndex NodeIndex, height uint64) NodeIndex {
	return idxAdd(nodeIndex, perfectSize(height))
}

// peakHeights returns the heights of every peak a leafCount-leaf
// accumulator holds, highest first: exactly the positions of the set
// bits of leafCount, from the most significant bit down.
func peakHeights(leafCount DataIndex) []uint64 {
	var heights []uint64
	for h := 127; h >= 0; h-- {
		bit := new(uint256.Int).Rsh(&leafCount, uint(h))
		bit.And(bit, uint256.NewInt(1))
		if bit.IsZero() {
			continue
		}
		heights = append(heights, uint64(h))
	}
	return heights
}

// trailingOnesCount returns the number of trailing one bits in n's
// binary representation: exactly the number of merges appending one
// more leaf triggers, since appending a leaf behaves like
// incrementing a binary counter and each trailing one is a carry.
func trailingOnesCount(n NodeIndex) uint64 {
	count := uint64(0)
	cur := n
	for {
		lsb := new(uint256.Int).And(&cur, uint256.NewInt(1))
		if lsb.IsZero() {
			return count
		}
		count++
		cur = *new(uint256.Int).Rsh(&cur, 1)
	}
}

// siblingOf returns the index of nodeIndex's sibling, on whichever
// side it actually sits.
func siblingOf(nodeIndex NodeIndex, isRight bool, height uint64) NodeIndex {
	if isRight {
		return leftSibling(nodeIndex, height)
	}
	return rightSibling(nodeIndex, height)
}

// nodeKey returns a canonical map key for a node index.
func nodeKey(n NodeIndex) string { return n.Hex() }

// leafIndexToPeakIndex returns which entry of Accumulator.Peaks holds
// the mountain containing the leaf at dataIndex, given the
// accumulator currently holds leafCount leaves. Peaks are ordered
// highest-bit-first, so the earliest-appended leaves (which form the
// tallest mountain) sit in the lowest-indexed peak.
func leafIndexToPeakIndex(dataIndex, leafCount DataIndex) (int, error) {
	if idxCmp(dataIndex, leafCount) >= 0 {
		return 0, errIndexOutOfRange
	}
	covered := idx(0)
	for i, h := range peakHeights(leafCount) {
		next := idxAdd(covered, twoPow(h))
		if idxCmp(dataIndex, next) < 0 {
			return i, nil
		}
		covered = next
	}
	return 0, errIndexOutOfRange
}
