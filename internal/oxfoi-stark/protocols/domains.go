package protocols

import (
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/ntt"
)

// friDomainOffset is a fixed coset shift chosen outside every
// power-of-two subgroup the engine uses, so the FRI domain never
// collides with a trace domain's roots of unity (which would make a
// transition-constraint zerofier divide by zero).
var friDomainOffset = field.New(7)

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// traceDomain returns the length-n subgroup domain a padded trace of
// that length is interpolated over.
func traceDomain(length int) (ntt.Domain, error) {
	return ntt.NewDomain(length)
}

// friDomain returns the coset domain of size traceLength*expansion
// that FRI commits to, offset away from the trace domain.
func friDomain(traceLength, expansion int) (ntt.Domain, error) {
	d, err := ntt.NewDomain(traceLength * expansion)
	if err != nil {
		return ntt.Domain{}, err
	}
	return d.WithOffset(friDomainOffset), nil
}
