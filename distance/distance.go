// Package distance turns a set of points into their pairwise Euclidean
// distance matrix and checks the invariants such a matrix must satisfy.
//
// Build computes every ordered pair (i, j) directly from the formula: the
// symmetric half is not reused and the diagonal is not special-cased. Both
// halves still agree exactly because geom.Distance is symmetric bit for bit.
package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/distgen/geom"
	"github.com/katalvlaran/distgen/matrix"
)

// DefaultTolerance is the slack used by Check for symmetry, diagonal and bounds.
const DefaultTolerance = 1e-9

// Build returns the n×n matrix with entry (i,j) = Distance(points[i], points[j]).
// An empty input yields a 0×0 matrix.
//
// Errors: matrix.ErrNaNInf (wrapped) when a point has non-finite coordinates.
// Complexity: O(n²) time and memory.
func Build(points []geom.Point) (*matrix.Dense, error) {
	n := len(points)
	m, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if err = m.Set(i, j, geom.Distance(points[i], points[j])); err != nil {
				return nil, fmt.Errorf("distance: points %d and %d: %w", i, j, err)
			}
		}
	}

	return m, nil
}

// Check verifies that m is a valid distance matrix for points drawn from d:
// square, symmetric and zero on the diagonal within tol, and every entry in
// [0, d.Diagonal()+tol]. The first violation found in row-major order is returned.
//
// Errors: geom.ErrBadDomain, matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// matrix.ErrAsymmetry, matrix.ErrNonZeroDiagonal, matrix.ErrOutOfBounds.
// Complexity: O(n²).
func Check(m matrix.Matrix, d geom.Domain, tol float64) error {
	if err := d.Validate(); err != nil {
		return err
	}
	tol = math.Abs(tol)
	if err := matrix.ValidateSquare(m); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	if err := matrix.ValidateSymmetric(m, tol); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	if err := matrix.ValidateZeroDiagonal(m, tol); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	if err := matrix.ValidateBounds(m, 0, d.Diagonal()+tol); err != nil {
		return fmt.Errorf("distance: %w", err)
	}

	return nil
}
