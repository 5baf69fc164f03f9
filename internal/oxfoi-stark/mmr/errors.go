package mmr

import "errors"

// errIndexOutOfRange is returned when a caller names a data index
// that is not less than the accumulator's current leaf count.
var errIndexOutOfRange = errors.New("mmr: data index out of range")

// errDuplicateMutationIndex is returned when a batch update names the
// same mutation index more than once.
var errDuplicateMutationIndex = errors.New("mmr: duplicate mutation index")

// errInvalidProofLength is returned when a membership proof's
// authentication path does not have the length its target mountain's
// height demands.
var errInvalidProofLength = errors.New("mmr: membership proof has the wrong authentication path length")

// errTruncatedAccumulator is returned decoding a persisted
// accumulator whose declared peaks_len does not match the bytes
// actually present.
var errTruncatedAccumulator = errors.New("mmr: truncated persisted accumulator")
