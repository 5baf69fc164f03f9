package rescue

import "github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"

// hashRound applies one full Rescue-Prime round to state, exactly the
// six-step transform of a forward S-box/MDS/round-constants half
// followed by a backward (inverse S-box) half.
func (p Parameters) hashRound(state []field.Element, round int) []field.Element {
	// 1. Forward S-box.
	sboxed := make([]field.Element, p.M)
	for i, v := range state {
		sboxed[i] = v.ModPow(p.Alpha)
	}
	// 2. MDS.
	mixed := p.MDS.mulVec(sboxed)
	// 3. First-half round constants.
	for i := range mixed {
		mixed[i] = mixed[i].Add(p.RoundConstants[2*round*p.M+i])
	}
	// 4. Backward S-box.
	for i, v := range mixed {
		mixed[i] = v.ModPow(p.AlphaInv)
	}
	// 5. MDS.
	mixed = p.MDS.mulVec(mixed)
	// 6. Second-half round constants.
	for i := range mixed {
		mixed[i] = mixed[i].Add(p.RoundConstants[2*round*p.M+p.M+i])
	}
	return mixed
}

// Hash returns the Rescue-Prime hash of a single field element:
// state initialized to (input, 0, ..., 0), folded through
// StepsCount rounds, with the first register of the final state as
// the output.
func (p Parameters) Hash(input field.Element) field.Element {
	state := make([]field.Element, p.M)
	state[0] = input
	for r := 0; r < p.StepsCount; r++ {
		state = p.hashRound(state, r)
	}
	return state[0]
}

// Trace returns every intermediate state, row-wise, including the
// initial state at row 0 and the final state at row StepsCount
// (length StepsCount+1).
func (p Parameters) Trace(input field.Element) [][]field.Element {
	trace := make([][]field.Element, p.StepsCount+1)
	state := make([]field.Element, p.M)
	state[0] = input
	trace[0] = append([]field.Element{}, state...)
	for r := 0; r < p.StepsCount; r++ {
		state = p.hashRound(state, r)
		trace[r+1] = append([]field.Element{}, state...)
	}
	return trace
}

// Step applies round (cycle % StepsCount) to state, letting a caller
// extend a trace past its defined length while staying consistent
// with the periodic round-constant polynomials RoundConstantPolynomials
// produces: evaluated at a cycle beyond StepsCount, those polynomials
// wrap around exactly the way this indexing does, since omicron has
// order StepsCount.
func (p Parameters) Step(state []field.Element, cycle int) []field.Element {
	return p.hashRound(state, cycle%p.StepsCount)
}

// EvalAndTrace returns both the hash output and the full trace,
// avoiding a second pass over the rounds when both are needed.
func (p Parameters) EvalAndTrace(input field.Element) (field.Element, [][]field.Element) {
	trace := p.Trace(input)
	return trace[len(trace)-1][0], trace
}
