// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Functions return these sentinels (optionally wrapped with %w) and
// tests check them via errors.Is. No public function panics on user input.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so it is easy to grep in logs.
// Context (method, coordinates, validator tag) is attached with
// fmt.Errorf("ctx: %w", ErrX); callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are out of range
	// (non-positive for NewDense, negative for NewSquare).
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// At/Set return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes, e.g. a non-square
	// matrix where a square one is required.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tol")

	// ErrNonZeroDiagonal signals a diagonal entry farther than tol from zero.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within tol")

	// ErrOutOfBounds signals an entry outside the closed interval passed to ValidateBounds.
	ErrOutOfBounds = errors.New("matrix: entry outside allowed bounds")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
