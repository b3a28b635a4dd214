// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for the structural checks a distance
//    matrix must pass: non-nil, square, symmetric, zero diagonal, bounded.
//  - Return sentinels wrapped with the validator tag so callers can still
//    match them with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry runs O(n²) on the strict upper triangle only; the first
//    violation in row-major order is the one reported.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// normalizeTol rejects NaN/Inf tolerances and folds negatives to |tol|.
func normalizeTol(tag string, tol float64) (float64, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, validatorErrorf(tag, ErrNaNInf)
	}

	return math.Abs(tol), nil
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	// A typed nil *Dense inside the interface is also rejected.
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare ensures m is non-nil and Rows()==Cols().
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf on
// a non-finite tol, ErrAsymmetry (with coordinates) on violation.
// Complexity: O(n²) time, O(1) space.
func ValidateSymmetric(m Matrix, tol float64) error {
	const tag = "ValidateSymmetric"
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf(tag, err)
	}
	tol, err := normalizeTol(tag, tol)
	if err != nil {
		return err
	}

	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // in range after ValidateSquare
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return fmt.Errorf("%s: (%d,%d): %w", tag, i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |A[i,i]| ≤ tol for every i.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tol), ErrNonZeroDiagonal.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, tol float64) error {
	const tag = "ValidateZeroDiagonal"
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf(tag, err)
	}
	tol, err := normalizeTol(tag, tol)
	if err != nil {
		return err
	}

	var v float64
	for i := 0; i < m.Rows(); i++ {
		v, _ = m.At(i, i)
		if math.Abs(v) > tol {
			return fmt.Errorf("%s: (%d,%d): %w", tag, i, i, ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateBounds checks lo ≤ A[i,j] ≤ hi for every entry. NaN entries fail
// with ErrNaNInf; out-of-interval entries fail with ErrOutOfBounds.
// Complexity: O(r*c).
func ValidateBounds(m Matrix, lo, hi float64) error {
	const tag = "ValidateBounds"
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf(tag, err)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return validatorErrorf(tag, ErrDimensionMismatch)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			if math.IsNaN(v) {
				return fmt.Errorf("%s: (%d,%d): %w", tag, i, j, ErrNaNInf)
			}
			if v < lo || v > hi {
				return fmt.Errorf("%s: (%d,%d)=%g: %w", tag, i, j, v, ErrOutOfBounds)
			}
		}
	}

	return nil
}
