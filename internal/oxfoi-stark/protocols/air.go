package protocols

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/mpolynomial"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/rescue"
)

// BoundaryConstraint asserts the trace holds an expected value at a
// given cycle and register.
type BoundaryConstraint struct {
	Cycle    int
	Register int
	Value    field.Element
}

// AIR is whatever an external trace-provider implements to plug its
// computation into the STARK engine: a register width, the row count
// of its unpadded execution trace, a transition function able to
// extend a trace past that many rows (needed to pad the trace to a
// power-of-two length), and the multivariate identities (arity
// 1+2*Width: domain point, current row, next row) that every
// consecutive row pair of a valid trace must satisfy.
type AIR interface {
	Width() int
	TraceLength() int
	Step(state []field.Element, cycle int) []field.Element
	TransitionConstraints(omicron field.Element) ([]mpolynomial.Polynomial, error)
	BoundaryConstraints() []BoundaryConstraint
}

// RescueHashAIR adapts a Rescue-Prime parameter set and a claimed
// hash output into the AIR the STARK engine consumes, tying C6's
// concrete round function and symbolic AIR polynomials together: the
// claim "hash(input) = output" becomes a provable statement about the
// Rescue-Prime execution trace of input.
type RescueHashAIR struct {
	Params rescue.Parameters
	Output field.Element
}

func (a RescueHashAIR) Width() int       { return a.Params.M }
func (a RescueHashAIR) TraceLength() int { return a.Params.StepsCount + 1 }

func (a RescueHashAIR) Step(state []field.Element, cycle int) []field.Element {
	return a.Params.Step(state, cycle)
}

func (a RescueHashAIR) TransitionConstraints(omicron field.Element) ([]mpolynomial.Polynomial, error) {
	return a.Params.AIRConstraints(omicron)
}

func (a RescueHashAIR) BoundaryConstraints() []BoundaryConstraint {
	rc := a.Params.BoundaryConstraints(a.Output)
	out := make([]BoundaryConstraint, len(rc))
	for i, c := range rc {
		out[i] = BoundaryConstraint{Cycle: c.Cycle, Register: c.Register, Value: c.Value}
	}
	return out
}
