// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/distgen/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewSquare covers the zero-size case that NewDense refuses.
func TestNewSquare(t *testing.T) {
	m, err := matrix.NewSquare(0)
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 0, r)
	require.Equal(t, 0, c)
	require.Equal(t, "", m.String()) // nothing to render

	m, err = matrix.NewSquare(3)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 3, m.Cols())

	_, err = matrix.NewSquare(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfRange ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.EqualError(t, err, "Dense.Set(2,0): matrix: index out of range")

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetRejectsNonFinite verifies the finite-only numeric policy.
func TestSetRejectsNonFinite(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)

	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v) // rejected writes leave the cell untouched
}

// TestSetGetRow validates Set() followed by At() and Row().
func TestSetGetRow(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.89))
	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 7.89}, row)

	row[0] = 42 // Row returns a copy
	val, _ = m.At(1, 0)
	require.Equal(t, 0.0, val)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_ = m.Set(0, 0, 1.0)

	clone := m.Clone()
	_ = clone.Set(0, 0, 3.0)

	orig, _ := m.At(0, 0)
	require.Equal(t, 1.0, orig)
	cv, _ := clone.At(0, 0)
	require.Equal(t, 3.0, cv)
}

// TestDoOrderAndEarlyStop checks row-major visiting and the stop flag.
func TestDoOrderAndEarlyStop(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_ = m.Set(0, 0, 1)
	_ = m.Set(0, 1, 2)
	_ = m.Set(1, 0, 3)
	_ = m.Set(1, 1, 4)

	var seen []float64
	m.Do(func(_, _ int, v float64) bool {
		seen = append(seen, v)
		return true
	})
	require.Equal(t, []float64{1, 2, 3, 4}, seen)

	seen = seen[:0]
	m.Do(func(_, j int, v float64) bool {
		seen = append(seen, v)
		return j == 0 // stop after the second element
	})
	require.Equal(t, []float64{1, 2}, seen)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_ = m.Set(0, 0, 1)
	_ = m.Set(0, 1, 2.5)
	_ = m.Set(1, 0, 3)
	_ = m.Set(1, 1, 4)

	require.Equal(t, "[1, 2.5]\n[3, 4]\n", m.String())
}
