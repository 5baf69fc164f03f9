package rescue

import (
	"errors"

	"github.com/oxfoi/oxfoi-stark/internal/oxfoi-stark/field"
)

// ErrSingularMatrix is returned by invert when the matrix has no
// inverse over Fp (Gaussian elimination found a fully-zero pivot
// column).
var ErrSingularMatrix = errors.New("rescue: MDS matrix is singular")

// matrix is a dense square matrix over Fp, row-major.
type matrix [][]field.Element

func cauchyMDS(m int) matrix {
	mds := make(matrix, m)
	for i := 0; i < m; i++ {
		mds[i] = make([]field.Element, m)
		xi := field.New(uint64(i) + 1)
		for j := 0; j < m; j++ {
			yj := field.New(uint64(m) + uint64(j) + 1)
			diff := xi.Sub(yj)
			inv, err := diff.Inverse()
			if err != nil {
				// xi and yj are constructed to always be distinct;
				// this is unreachable for any realistic m.
				panic("rescue: degenerate Cauchy MDS construction")
			}
			mds[i][j] = inv
		}
	}
	return mds
}

// invert computes m^-1 via Gauss-Jordan elimination with the first
// non-zero entry in each column chosen as the pivot (the field is
// large and the matrix is Cauchy, so a zero pivot only occurs for a
// genuinely singular input).
func invert(m matrix) (matrix, error) {
	n := len(m)
	aug := make(matrix, n)
	for i := 0; i < n; i++ {
		row := make([]field.Element, 2*n)
		copy(row, m[i])
		row[n+i] = field.One()
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if !aug[row][col].IsZero() {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, ErrSingularMatrix
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		pivotInv, err := aug[col][col].Inverse()
		if err != nil {
			return nil, ErrSingularMatrix
		}
		for k := 0; k < 2*n; k++ {
			aug[col][k] = aug[col][k].Mul(pivotInv)
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor.IsZero() {
				continue
			}
			for k := 0; k < 2*n; k++ {
				aug[row][k] = aug[row][k].Sub(factor.Mul(aug[col][k]))
			}
		}
	}

	out := make(matrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]field.Element, n)
		copy(out[i], aug[i][n:])
	}
	return out, nil
}

// mulVec returns m*v.
func (m matrix) mulVec(v []field.Element) []field.Element {
	n := len(m)
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		acc := field.Zero()
		for j := 0; j < n; j++ {
			acc = acc.Add(m[i][j].Mul(v[j]))
		}
		out[i] = acc
	}
	return out
}
