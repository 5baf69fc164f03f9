package protocols

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

// Claim is the public statement a Proof attests to: that some
// program, tied to the proof by Tag, maps PublicInput to
// PublicOutput. Tag is lifted into the cubic extension field so it
// occupies a different subspace than the base-field trace values the
// same transcript absorbs, keeping the claim's contribution to the
// Fiat-Shamir state distinguishable from revealed trace data.
type Claim struct {
	Tag          xfield.Element
	PublicInput  []uint64
	PublicOutput []uint64
}

// NewClaim builds a claim tagging a computation with tag (typically a
// Rescue-Prime hash of the program or statement being proved).
func NewClaim(tag xfield.Element, input, output []uint64) Claim {
	return Claim{Tag: tag, PublicInput: input, PublicOutput: output}
}

// absorb folds the claim into ps's sponge ahead of the proof items
// proper, without adding it to ps.Items, so prover and verifier
// challenges are bound to which claim is being proved, not just to the
// proof's contents.
func (c Claim) absorb(ps *ProofStream) {
	absorbItem := func(item ProofItem) { ps.sponge.Absorb(item.encode()) }
	coords := c.Tag.Coordinates()
	absorbItem(fieldElementsItem(coords[:]))
	for _, v := range c.PublicInput {
		absorbItem(fieldElementItem(field.New(v)))
	}
	for _, v := range c.PublicOutput {
		absorbItem(fieldElementItem(field.New(v)))
	}
}
