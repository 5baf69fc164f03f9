package field

import "sync"

// BatchInversion inverts every element of xs with a single field
// inversion and 3(n-1) multiplications (Montgomery's trick), instead
// of n separate inversions. Any zero element makes the whole batch
// fail with the same error Inverse reports for a single zero.
func BatchInversion(xs []Element) ([]Element, error) {
	n := len(xs)
	if n == 0 {
		return []Element{}, nil
	}

	prefix := make([]Element, n)
	prefix[0] = xs[0]
	for i := 1; i < n; i++ {
		prefix[i] = prefix[i-1].Mul(xs[i])
	}

	accInv, err := prefix[n-1].Inverse()
	if err != nil {
		return nil, err
	}

	out := make([]Element, n)
	for i := n - 1; i > 0; i-- {
		out[i] = accInv.Mul(prefix[i-1])
		accInv = accInv.Mul(xs[i])
	}
	out[0] = accInv
	return out, nil
}

// parallelBatchThreshold is the batch size above which
// ParallelBatchInversion shards work across goroutines, mirroring the
// teacher's core/field_batch.go worker-sharding threshold for batches
// that are large enough to amortize goroutine setup cost.
const parallelBatchThreshold = 1000

// ParallelBatchInversion behaves like BatchInversion, but for large
// batches splits xs into contiguous chunks inverted concurrently, one
// goroutine per chunk, each chunk's own Montgomery accumulator kept
// independent so no cross-goroutine state is shared.
func ParallelBatchInversion(xs []Element) ([]Element, error) {
	n := len(xs)
	if n <= parallelBatchThreshold {
		return BatchInversion(xs)
	}

	workers := 8
	chunkSize := (n + workers - 1) / workers
	out := make([]Element, n)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			res, err := BatchInversion(xs[start:end])
			if err != nil {
				errs[w] = err
				return
			}
			copy(out[start:end], res)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
