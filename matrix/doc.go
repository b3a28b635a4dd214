// Package matrix provides the dense float64 storage used for distance matrices.
//
// The matrix package provides:
//
//   - Matrix, a small interface (Rows, Cols, At, Set, Clone) so consumers can
//     accept any implementation.
//   - Dense, a row-major implementation over a flat []float64 with safe
//     accessors: At/Set return sentinel errors instead of panicking.
//   - Validators (ValidateSquare, ValidateSymmetric, ValidateZeroDiagonal,
//     ValidateBounds) that check the structural invariants of distance data.
//
// All loops run in fixed row-major order, so results (and the first reported
// violation) are deterministic for a given input.
//
// Zero-sized matrices are legal only through NewSquare(0); they model the
// degenerate "no points" case and encode to empty output.
package matrix
