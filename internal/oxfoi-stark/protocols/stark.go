package protocols

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/mpolynomial"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/ntt"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

// Parameters fixes the public knobs of a STARK instance: prover and
// verifier must agree on identical values, or the first challenge
// they derive will diverge and the verifier rejects.
type Parameters struct {
	// ExpansionFactor is the blowup between the trace domain and the
	// FRI domain; must be a power of two >= 2.
	ExpansionFactor int
	// NumQueries is the number of FRI query rounds, trading proof
	// size for soundness error roughly 2^-NumQueries.
	NumQueries int
	// Parallel, when true, interpolates and evaluates each trace
	// column on its own goroutine instead of sequentially. A free
	// choice for the caller, never required for correctness.
	Parallel bool
	// Logger receives progress events as Prove moves through the
	// protocol's phases. Nil disables logging entirely; callers pay
	// nothing for it by default.
	Logger *zerolog.Logger
}

// DefaultParameters returns a conservative instance suitable for the
// library's own tests: 4x blowup, 32 query rounds.
func DefaultParameters() Parameters {
	return Parameters{ExpansionFactor: 4, NumQueries: 32}
}

// Validate checks the parameters are internally consistent.
func (p Parameters) Validate() error {
	if p.ExpansionFactor < 2 || p.ExpansionFactor&(p.ExpansionFactor-1) != 0 {
		return newError(KindUsage, "expansion factor must be a power of two >= 2", nil)
	}
	if p.NumQueries < 1 {
		return newError(KindUsage, "number of queries must be positive", nil)
	}
	return nil
}

// lowDegreeExtendColumns interpolates each register's trace column
// over the trace domain and evaluates the result over the FRI domain,
// one codeword per register. When parallel is set, every column runs
// on its own goroutine, mirroring field.ParallelBatchInversion's
// worker-per-chunk pattern — here one worker per column, since
// columns are independent and there are rarely more of them than
// cores.
func lowDegreeExtendColumns(padded [][]field.Element, width, paddedLength int, tDomain, fDomain ntt.Domain, parallel bool) ([][]field.Element, error) {
	codewords := make([][]field.Element, width)
	errs := make([]error, width)

	extend := func(reg int) {
		column := make([]field.Element, paddedLength)
		for i := range column {
			column[i] = padded[i][reg]
		}
		poly, err := tDomain.Interpolate(column)
		if err != nil {
			errs[reg] = newError(KindDomain, "failed to interpolate trace column", err)
			return
		}
		codeword, err := fDomain.Evaluate(poly)
		if err != nil {
			errs[reg] = newError(KindDomain, "failed to evaluate trace column over the FRI domain", err)
			return
		}
		codewords[reg] = codeword
	}

	if parallel {
		var wg sync.WaitGroup
		for reg := 0; reg < width; reg++ {
			wg.Add(1)
			go func(reg int) {
				defer wg.Done()
				extend(reg)
			}(reg)
		}
		wg.Wait()
	} else {
		for reg := 0; reg < width; reg++ {
			extend(reg)
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return codewords, nil
}

// logEvent writes a progress event to logger's debug level if logger
// is non-nil, a no-op otherwise so library callers pay nothing for it
// by default.
func logEvent(logger *zerolog.Logger, message string, width, paddedLength int) {
	if logger == nil {
		return
	}
	logger.Debug().Int("width", width).Int("trace_length", paddedLength).Msg(message)
}

func extendTrace(air AIR, trace [][]field.Element, paddedLength int) [][]field.Element {
	out := make([][]field.Element, paddedLength)
	copy(out, trace)
	for i := len(trace); i < paddedLength; i++ {
		out[i] = air.Step(out[i-1], i-1)
	}
	return out
}

// compositionCodeword evaluates the weighted sum of every transition
// and boundary constraint, each divided by its vanishing polynomial,
// pointwise over the FRI domain. A valid trace makes every
// constraint vanish on the trace domain, so the quotient is itself a
// low-degree polynomial; FRI then checks exactly that.
func compositionCodeword(
	width, paddedLength int,
	fDomain ntt.Domain,
	omicron field.Element,
	expansion int,
	codewords [][]field.Element,
	transitions []mpolynomial.Polynomial,
	boundaries []BoundaryConstraint,
	weights []xfield.Element,
) ([]xfield.Element, error) {
	out := make([]xfield.Element, fDomain.Length)
	omicronPowers := make([]field.Element, paddedLength)
	acc := field.One()
	for i := range omicronPowers {
		omicronPowers[i] = acc
		acc = acc.Mul(omicron)
	}

	for i := 0; i < fDomain.Length; i++ {
		x := fDomain.Offset.Mul(fDomain.Generator.ModPow(uint64(i)))
		nextIdx := (i + expansion) % fDomain.Length

		vars := make([]field.Element, 1+2*width)
		vars[0] = x
		for reg := 0; reg < width; reg++ {
			vars[1+reg] = codewords[reg][i]
			vars[1+width+reg] = codewords[reg][nextIdx]
		}

		sum := xfield.Zero()

		zerofierT := x.ModPow(uint64(paddedLength)).Sub(field.One())
		zerofierTInv, err := zerofierT.Inverse()
		if err != nil {
			return nil, newError(KindDomain, "FRI domain point collides with the trace domain", err)
		}
		// The transition constraint only holds on consecutive trace rows, not
		// across the padded wrap-around (row paddedLength-1 back to row 0), so
		// divide by the trace domain's vanishing polynomial with the last
		// point excluded: (x^L-1)/(x-omicron^(L-1)) = 1 / (zerofierTInv * (x - omicron^(L-1))).
		zerofierTInv = zerofierTInv.Mul(x.Sub(omicronPowers[paddedLength-1]))
		for k, tc := range transitions {
			val, err := tc.Evaluate(vars)
			if err != nil {
				return nil, newError(KindShape, "failed to evaluate a transition constraint", err)
			}
			sum = sum.Add(weights[k].ScalarMul(val).ScalarMul(zerofierTInv))
		}

		for j, bc := range boundaries {
			zerofierB := x.Sub(omicronPowers[bc.Cycle%paddedLength])
			zerofierBInv, err := zerofierB.Inverse()
			if err != nil {
				return nil, newError(KindDomain, "FRI domain point collides with a boundary point", err)
			}
			diff := codewords[bc.Register][i].Sub(bc.Value)
			sum = sum.Add(weights[len(transitions)+j].ScalarMul(diff).ScalarMul(zerofierBInv))
		}

		out[i] = sum
	}
	return out, nil
}

// Prove builds a STARK attesting that trace is a valid execution of
// air, with boundary values matching air.BoundaryConstraints(), and
// writes the resulting proof items to ps.
func Prove(ps *ProofStream, air AIR, trace [][]field.Element, claim Claim, params Parameters, hasher merkle.Hasher) (*Proof, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	width := air.Width()
	for _, row := range trace {
		if len(row) != width {
			return nil, newError(KindShape, "trace row width does not match AIR width", nil)
		}
	}

	paddedLength := nextPowerOfTwo(len(trace))
	padded := extendTrace(air, trace, paddedLength)

	tDomain, err := traceDomain(paddedLength)
	if err != nil {
		return nil, newError(KindDomain, "failed to build trace domain", err)
	}
	fDomain, err := friDomain(paddedLength, params.ExpansionFactor)
	if err != nil {
		return nil, newError(KindDomain, "failed to build FRI domain", err)
	}

	codewords, err := lowDegreeExtendColumns(padded, width, paddedLength, tDomain, fDomain, params.Parallel)
	if err != nil {
		return nil, err
	}
	logEvent(params.Logger, "low-degree-extended trace columns", width, paddedLength)

	claim.absorb(ps)

	traceLeaves := make([][]byte, fDomain.Length)
	for i := range traceLeaves {
		row := make([]byte, 0, 8*width)
		for reg := 0; reg < width; reg++ {
			b := codewords[reg][i].ToBytes()
			row = append(row, b[:]...)
		}
		traceLeaves[i] = row
	}
	traceTree, err := merkle.NewTree(traceLeaves, hasher)
	if err != nil {
		return nil, newError(KindShape, "failed to commit to the trace codeword", err)
	}
	ps.EnqueueCommitment(traceTree.Root())
	logEvent(params.Logger, "committed trace codeword", width, fDomain.Length)

	transitions, err := air.TransitionConstraints(tDomain.Generator)
	if err != nil {
		return nil, err
	}
	boundaries := air.BoundaryConstraints()
	weights := ps.SampleScalars(len(transitions) + len(boundaries))

	composition, err := compositionCodeword(width, paddedLength, fDomain, tDomain.Generator, params.ExpansionFactor,
		codewords, transitions, boundaries, weights)
	if err != nil {
		return nil, err
	}

	reveal, err := FRICommit(ps, fDomain, composition, hasher, params.ExpansionFactor)
	if err != nil {
		return nil, err
	}
	logEvent(params.Logger, "folded composition codeword via FRI", width, fDomain.Length)

	indices, err := ps.SampleIndices(fDomain.Length, params.NumQueries)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		if err := revealTraceRow(ps, traceTree, codewords, width, idx); err != nil {
			return nil, err
		}
		nextIdx := (idx + params.ExpansionFactor) % fDomain.Length
		if err := revealTraceRow(ps, traceTree, codewords, width, nextIdx); err != nil {
			return nil, err
		}
		if err := reveal(idx); err != nil {
			return nil, err
		}
	}

	return ps.ToProof(), nil
}

func revealTraceRow(ps *ProofStream, tree *merkle.Tree, codewords [][]field.Element, width, idx int) error {
	row := make([]field.Element, width)
	for reg := 0; reg < width; reg++ {
		row[reg] = codewords[reg][idx]
	}
	ps.EnqueueFieldElements(row)
	path, err := tree.Open(idx)
	if err != nil {
		return newError(KindShape, "failed to open the trace codeword at a query index", err)
	}
	ps.EnqueueAuthPath(path)
	return nil
}

func traceRowBytes(row []field.Element) []byte {
	out := make([]byte, 0, 8*len(row))
	for _, e := range row {
		b := e.ToBytes()
		out = append(out, b[:]...)
	}
	return out
}

// Verify replays the transcript ps, checking every Merkle path, every
// transition/boundary constraint at every queried index, and FRI's
// colinearity and final-value consistency. It returns nil only if the
// proof is fully consistent with air, claim, and params. paddedLength
// is derived from air.TraceLength() the same way Prove derives it
// from the trace it is given, so prover and verifier always agree on
// domain sizes without the caller having to thread the value through.
func Verify(ps *ProofStream, air AIR, claim Claim, params Parameters, hasher merkle.Hasher) error {
	if err := params.Validate(); err != nil {
		return err
	}
	width := air.Width()
	paddedLength := nextPowerOfTwo(air.TraceLength())

	tDomain, err := traceDomain(paddedLength)
	if err != nil {
		return newError(KindDomain, "failed to build trace domain", err)
	}
	fDomain, err := friDomain(paddedLength, params.ExpansionFactor)
	if err != nil {
		return newError(KindDomain, "failed to build FRI domain", err)
	}

	claim.absorb(ps)

	traceRoot, err := ps.DequeueCommitment()
	if err != nil {
		return err
	}

	transitions, err := air.TransitionConstraints(tDomain.Generator)
	if err != nil {
		return err
	}
	boundaries := air.BoundaryConstraints()
	weights := ps.SampleScalars(len(transitions) + len(boundaries))

	check, err := FRIReplay(ps, fDomain, params.ExpansionFactor, hasher)
	if err != nil {
		return err
	}

	indices, err := ps.SampleIndices(fDomain.Length, params.NumQueries)
	if err != nil {
		return err
	}

	omicronPowers := make([]field.Element, paddedLength)
	acc := field.One()
	for i := range omicronPowers {
		omicronPowers[i] = acc
		acc = acc.Mul(tDomain.Generator)
	}

	for _, idx := range indices {
		row, err := dequeueAndVerifyRow(ps, traceRoot, width, idx, hasher)
		if err != nil {
			return err
		}
		nextIdx := (idx + params.ExpansionFactor) % fDomain.Length
		nextRow, err := dequeueAndVerifyRow(ps, traceRoot, width, nextIdx, hasher)
		if err != nil {
			return err
		}

		x := fDomain.Offset.Mul(fDomain.Generator.ModPow(uint64(idx)))
		vars := make([]field.Element, 1+2*width)
		vars[0] = x
		copy(vars[1:1+width], row)
		copy(vars[1+width:1+2*width], nextRow)

		sum := xfield.Zero()
		zerofierT := x.ModPow(uint64(paddedLength)).Sub(field.One())
		zerofierTInv, err := zerofierT.Inverse()
		if err != nil {
			return newError(KindDomain, "FRI domain point collides with the trace domain", err)
		}
		zerofierTInv = zerofierTInv.Mul(x.Sub(omicronPowers[paddedLength-1]))
		for k, tc := range transitions {
			val, err := tc.Evaluate(vars)
			if err != nil {
				return newError(KindShape, "failed to evaluate a transition constraint", err)
			}
			sum = sum.Add(weights[k].ScalarMul(val).ScalarMul(zerofierTInv))
		}
		for j, bc := range boundaries {
			zerofierB := x.Sub(omicronPowers[bc.Cycle%paddedLength])
			zerofierBInv, err := zerofierB.Inverse()
			if err != nil {
				return newError(KindDomain, "FRI domain point collides with a boundary point", err)
			}
			diff := row[bc.Register].Sub(bc.Value)
			sum = sum.Add(weights[len(transitions)+j].ScalarMul(diff).ScalarMul(zerofierBInv))
		}

		if err := check(idx, sum); err != nil {
			return err
		}
	}

	return nil
}

func dequeueAndVerifyRow(ps *ProofStream, root merkle.Digest, width, idx int, hasher merkle.Hasher) ([]field.Element, error) {
	row, err := ps.DequeueFieldElements()
	if err != nil {
		return nil, err
	}
	if len(row) != width {
		return nil, newError(KindVerification, "revealed trace row has the wrong width", nil)
	}
	path, err := ps.DequeueAuthPath()
	if err != nil {
		return nil, err
	}
	if !merkle.VerifyPath(root, traceRowBytes(row), path, idx, hasher) {
		return nil, newError(KindVerification, "trace codeword Merkle path mismatch", nil)
	}
	return row, nil
}
