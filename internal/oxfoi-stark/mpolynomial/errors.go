package mpolynomial

import "errors"

// ErrArityMismatch is returned by Evaluate when the supplied point
// does not have exactly one coordinate per variable.
var ErrArityMismatch = errors.New("mpolynomial: evaluation point arity mismatch")
