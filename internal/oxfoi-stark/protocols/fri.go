package protocols

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/merkle"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/ntt"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/xfield"
)

var two = field.New(2)

func xfieldBytes(e xfield.Element) []byte {
	c := e.Coordinates()
	out := make([]byte, 0, 24)
	for _, f := range c {
		b := f.ToBytes()
		out = append(out, b[:]...)
	}
	return out
}

func xfieldCoordsOf(e xfield.Element) []field.Element {
	c := e.Coordinates()
	return c[:]
}

func xfieldFromCoords(c []field.Element) (xfield.Element, error) {
	if len(c) != 3 {
		return xfield.Zero(), newError(KindVerification, "expected 3 coordinates for an extension field element", nil)
	}
	return xfield.New(c[0], c[1], c[2]), nil
}

// enqueueXFieldCodeword writes every element of codeword to ps as a
// flat run of coordinate triples, for the one FRI layer small enough
// to send in the clear rather than commit.
func enqueueXFieldCodeword(ps *ProofStream, codeword []xfield.Element) {
	flat := make([]field.Element, 0, 3*len(codeword))
	for _, v := range codeword {
		c := v.Coordinates()
		flat = append(flat, c[0], c[1], c[2])
	}
	ps.EnqueueFieldElements(flat)
}

// dequeueXFieldCodeword is enqueueXFieldCodeword's verifier-side
// mirror.
func dequeueXFieldCodeword(ps *ProofStream, length int) ([]xfield.Element, error) {
	flat, err := ps.DequeueFieldElements()
	if err != nil {
		return nil, err
	}
	if len(flat) != 3*length {
		return nil, newError(KindVerification, "final FRI layer has the wrong length", nil)
	}
	out := make([]xfield.Element, length)
	for i := range out {
		out[i] = xfield.New(flat[3*i], flat[3*i+1], flat[3*i+2])
	}
	return out, nil
}

// xfieldForwardNTT runs the same bit-reversal-then-butterflies
// transform as ntt.Forward, generalized to xfield-valued inputs: the
// twiddle factors stay in the base field, so every combination step
// is a ScalarMul rather than a full extension Mul. Only ever called on
// the small final FRI layer, so there is no need to route it through
// ntt's exported, field.Element-only API.
func xfieldForwardNTT(values []xfield.Element, omega field.Element) []xfield.Element {
	n := len(values)
	work := make([]xfield.Element, n)
	copy(work, values)

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			work[i], work[j] = work[j], work[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		step := n / length
		wLen := omega.ModPow(uint64(step))
		for start := 0; start < n; start += length {
			w := field.One()
			half := length / 2
			for i := 0; i < half; i++ {
				u := work[start+i]
				v := work[start+i+half].ScalarMul(w)
				work[start+i] = u.Add(v)
				work[start+i+half] = u.Sub(v)
				w = w.Mul(wLen)
			}
		}
	}
	return work
}

// xfieldInterpolate recovers the coefficients of the degree-<length
// polynomial whose coset evaluation over d equals codeword, mirroring
// ntt.Domain.Interpolate for xfield-valued codewords.
func xfieldInterpolate(d ntt.Domain, codeword []xfield.Element) ([]xfield.Element, error) {
	omegaInv, err := d.Generator.Inverse()
	if err != nil {
		return nil, err
	}
	scaled := xfieldForwardNTT(codeword, omegaInv)

	nInv, err := field.New(uint64(len(codeword))).Inverse()
	if err != nil {
		return nil, err
	}
	offsetInv, err := d.Offset.Inverse()
	if err != nil {
		return nil, err
	}

	coeffs := make([]xfield.Element, len(scaled))
	offsetInvPower := field.One()
	for i, c := range scaled {
		coeffs[i] = c.ScalarMul(nInv).ScalarMul(offsetInvPower)
		offsetInvPower = offsetInvPower.Mul(offsetInv)
	}
	return coeffs, nil
}

// checkFinalLayerDegree interpolates the final FRI layer in full and
// rejects unless every coefficient from degreeBound up is zero, i.e.
// unless finalCodeword is truly the evaluation of a polynomial of
// degree < degreeBound. This is the actual low-degree test: every
// per-query colinearity check upstream only confirms that each
// committed layer is the honest fold of the one before it, which
// holds for a fold chain built from *any* starting codeword,
// low-degree or not. Interpolating the whole final layer at once
// (rather than trusting a single query's value) is what rules out a
// high-degree starting codeword.
func checkFinalLayerDegree(d ntt.Domain, finalCodeword []xfield.Element, degreeBound int) error {
	coeffs, err := xfieldInterpolate(d, finalCodeword)
	if err != nil {
		return newError(KindVerification, "failed to interpolate the final FRI layer", err)
	}
	for i := degreeBound; i < len(coeffs); i++ {
		if !coeffs[i].IsZero() {
			return newError(KindVerification, "final FRI layer exceeds its claimed degree bound", nil)
		}
	}
	return nil
}

// friFold combines the values a degree-<L polynomial takes at a point
// x and at -x into the value its even/odd decomposition takes at
// x^2, weighted by challenge: the one-round FRI folding step.
func friFold(fx, fNegX xfield.Element, x field.Element, challenge xfield.Element) (xfield.Element, error) {
	xInv, err := x.Inverse()
	if err != nil {
		return xfield.Zero(), newError(KindDomain, "FRI domain point is zero", err)
	}
	half, err := two.Inverse()
	if err != nil {
		return xfield.Zero(), newError(KindDomain, "field characteristic is 2", err)
	}
	sum := fx.Add(fNegX)
	diff := fx.Sub(fNegX)
	even := sum.ScalarMul(half)
	odd := diff.ScalarMul(half).ScalarMul(xInv)
	return even.Add(challenge.Mul(odd)), nil
}

type friLayer struct {
	domain   ntt.Domain
	codeword []xfield.Element
	tree     *merkle.Tree
}

// FRICommit runs the prover side of a FRI fold: it commits to
// codeword over domain, folds by halving the domain every round,
// until exactly expansionFactor values remain, then sends that final
// layer in the clear rather than committing it, so the verifier can
// interpolate and degree-check the whole layer at once instead of
// trusting one revealed value. It returns a reveal callback the
// caller invokes once per sampled query index to write that index's
// authenticated path through every committed layer into ps.
// Splitting commit/fold from query-reveal lets a caller (the STARK
// prover) sample query indices once and reuse them for both this FRI
// instance and the trace commitment it is checking consistency
// against.
func FRICommit(ps *ProofStream, domain ntt.Domain, codeword []xfield.Element, hasher merkle.Hasher, expansionFactor int) (reveal func(idx0 int) error, err error) {
	var layers []friLayer
	curDomain := domain
	curCodeword := codeword

	for curDomain.Length > expansionFactor {
		leaves := make([][]byte, len(curCodeword))
		for i, v := range curCodeword {
			leaves[i] = xfieldBytes(v)
		}
		tree, err := merkle.NewTree(leaves, hasher)
		if err != nil {
			return nil, newError(KindShape, "FRI layer commitment failed", err)
		}
		ps.EnqueueCommitment(tree.Root())
		layers = append(layers, friLayer{domain: curDomain, codeword: curCodeword, tree: tree})

		challenge := ps.SampleScalar()
		half := curDomain.Length / 2
		folded := make([]xfield.Element, half)
		for i := 0; i < half; i++ {
			x := curDomain.Offset.Mul(curDomain.Generator.ModPow(uint64(i)))
			v, err := friFold(curCodeword[i], curCodeword[i+half], x, challenge)
			if err != nil {
				return nil, err
			}
			folded[i] = v
		}
		curCodeword = folded
		curDomain = curDomain.Halve()
	}

	enqueueXFieldCodeword(ps, curCodeword)

	reveal = func(idx0 int) error {
		idx := idx0
		for _, layer := range layers {
			half := layer.domain.Length / 2
			low := idx % half
			high := low + half

			ps.EnqueueFieldElements(xfieldCoordsOf(layer.codeword[low]))
			pathLow, err := layer.tree.Open(low)
			if err != nil {
				return newError(KindShape, "FRI query path failed", err)
			}
			ps.EnqueueAuthPath(pathLow)

			ps.EnqueueFieldElements(xfieldCoordsOf(layer.codeword[high]))
			pathHigh, err := layer.tree.Open(high)
			if err != nil {
				return newError(KindShape, "FRI query path failed", err)
			}
			ps.EnqueueAuthPath(pathHigh)

			idx = low
		}
		return nil
	}
	return reveal, nil
}

// FRIReplay is the verifier-side mirror of FRICommit: it dequeues
// every layer's commitment and re-derives every challenge exactly as
// FRICommit sampled them, dequeues the final plaintext layer and
// degree-checks it in full, and returns a check callback that replays
// one query index's revealed path, verifying every Merkle path and
// the fold's colinearity at each round. The caller passes in
// expected0, the composition codeword value it independently
// recomputed from the revealed trace row at idx0; check rejects
// unless the committed FRI layer-0 codeword actually holds that same
// value at idx0, which is what ties the FRI folding to the trace the
// proof claims to authenticate. domain must be the exact domain
// (offset included) FRICommit folded, or every colinearity check
// below fails on a correct proof.
func FRIReplay(ps *ProofStream, domain ntt.Domain, expansionFactor int, hasher merkle.Hasher) (check func(idx0 int, expected0 xfield.Element) error, err error) {
	var roots []merkle.Digest
	var challenges []xfield.Element
	var domains []ntt.Domain

	curDomain := domain
	for curDomain.Length > expansionFactor {
		root, err := ps.DequeueCommitment()
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
		challenges = append(challenges, ps.SampleScalar())
		domains = append(domains, curDomain)
		curDomain = curDomain.Halve()
	}

	// curDomain now has exactly expansionFactor points left: the final
	// layer, sent in the clear rather than committed.
	finalCodeword, err := dequeueXFieldCodeword(ps, curDomain.Length)
	if err != nil {
		return nil, err
	}
	degreeBound := curDomain.Length / expansionFactor
	if err := checkFinalLayerDegree(curDomain, finalCodeword, degreeBound); err != nil {
		return nil, err
	}

	check = func(idx0 int, expected0 xfield.Element) error {
		idx := idx0
		var expected xfield.Element
		haveExpected := false

		for round, root := range roots {
			layerDomain := domains[round]
			half := layerDomain.Length / 2
			low := idx % half
			high := low + half

			lowCoords, err := ps.DequeueFieldElements()
			if err != nil {
				return err
			}
			lowPath, err := ps.DequeueAuthPath()
			if err != nil {
				return err
			}
			valueLow, err := xfieldFromCoords(lowCoords)
			if err != nil {
				return err
			}
			if !merkle.VerifyPath(root, xfieldBytes(valueLow), lowPath, low, hasher) {
				return newError(KindVerification, "FRI query Merkle path mismatch", nil)
			}

			highCoords, err := ps.DequeueFieldElements()
			if err != nil {
				return err
			}
			highPath, err := ps.DequeueAuthPath()
			if err != nil {
				return err
			}
			valueHigh, err := xfieldFromCoords(highCoords)
			if err != nil {
				return err
			}
			if !merkle.VerifyPath(root, xfieldBytes(valueHigh), highPath, high, hasher) {
				return newError(KindVerification, "FRI query Merkle path mismatch", nil)
			}

			if round == 0 {
				var atIdx0 xfield.Element
				if idx0 == low {
					atIdx0 = valueLow
				} else {
					atIdx0 = valueHigh
				}
				if !atIdx0.Equal(expected0) {
					return newError(KindVerification, "FRI layer-0 value does not match the recomputed composition value", nil)
				}
			}

			if haveExpected {
				var gotAtIdx xfield.Element
				if idx == low {
					gotAtIdx = valueLow
				} else {
					gotAtIdx = valueHigh
				}
				if !gotAtIdx.Equal(expected) {
					return newError(KindVerification, "FRI colinearity check failed", nil)
				}
			}

			x := layerDomain.Offset.Mul(layerDomain.Generator.ModPow(uint64(low)))
			expected, err = friFold(valueLow, valueHigh, x, challenges[round])
			if err != nil {
				return err
			}
			haveExpected = true

			idx = low
		}

		if !haveExpected {
			// No folding rounds ran at all (the FRI domain was already
			// expansionFactor-sized), so the final layer itself is the
			// composition codeword: compare it to expected0 directly.
			if !finalCodeword[idx0].Equal(expected0) {
				return newError(KindVerification, "FRI layer-0 value does not match the recomputed composition value", nil)
			}
			return nil
		}

		if !expected.Equal(finalCodeword[idx]) {
			return newError(KindVerification, "FRI final layer mismatch", nil)
		}
		return nil
	}

	return check, nil
}
