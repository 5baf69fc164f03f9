package merkle

import "errors"

// ErrEmptyLeaves is returned by NewTree when asked to commit to zero
// leaves: a Merkle tree over nothing has no defined root.
var ErrEmptyLeaves = errors.New("merkle: cannot build a tree with no leaves")

// ErrIndexOutOfRange is returned when a leaf index is requested that
// does not exist in the tree.
var ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
