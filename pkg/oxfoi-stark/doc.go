// Package oxfoistark is the public facade over this module's two cores: a
// finite-field/polynomial algebra substrate over the Oxfoi/Goldilocks prime
// and its cubic extension, and a STARK proving/verifying engine built on a
// Rescue-Prime hash and a Merkle Mountain Range accumulator.
//
// # Architecture
//
// - pkg/oxfoi-stark/: public API (this package)
// - internal/oxfoi-stark/: private implementation (not importable)
//
// Implementation details under internal/ can change without breaking this
// package's exported surface.
//
// # Quick start
//
// Proving and verifying a Rescue-Prime hash:
//
//	params := oxfoistark.DefaultRescueParameters()
//	starkParams := oxfoistark.DefaultSTARKParameters()
//
//	proof, output, err := oxfoistark.Prove(params, 42, starkParams)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	claim := oxfoistark.NewRescueHashClaim(params, 42, output)
//	if err := oxfoistark.Verify(params, claim, proof, starkParams); err != nil {
//	    log.Fatal(err)
//	}
//
// Building up an MMR accumulator:
//
//	acc := oxfoistark.NewMMR()
//	acc, proof := acc.Append(leafData)
//	ok := acc.VerifyMembership(leafData, proof)
package oxfoistark
