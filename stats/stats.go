// Package stats summarizes the off-diagonal entries of a distance matrix.
package stats

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/katalvlaran/distgen/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of distances between distinct points.
// Each unordered pair contributes twice (once per triangle), which leaves
// every statistic below unchanged.
type Summary struct {
	Count int // number of off-diagonal entries, n*(n-1)
	Min   float64
	Max   float64
	Mean  float64
	P50   float64
	P90   float64
	P99   float64
}

// Summarize computes a Summary over the off-diagonal entries of m.
// Matrices with fewer than two rows yield a zero Summary.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, or any error
// returned by m.At.
// Complexity: O(n² log n) for the sort.
func Summarize(m matrix.Matrix) (Summary, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return Summary{}, fmt.Errorf("stats: %w", err)
	}
	n := m.Rows()
	if n < 2 {
		return Summary{}, nil
	}

	xs := make([]float64, 0, n*(n-1))
	var (
		v   float64
		err error
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if v, err = m.At(i, j); err != nil {
				return Summary{}, fmt.Errorf("stats: (%d,%d): %w", i, j, err)
			}
			xs = append(xs, v)
		}
	}
	sort.Float64s(xs) // stat.Quantile requires sorted input

	return Summary{
		Count: len(xs),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
		Mean:  stat.Mean(xs, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, xs, nil),
		P90:   stat.Quantile(0.90, stat.Empirical, xs, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, xs, nil),
	}, nil
}

// LogValue implements slog.LogValuer so a Summary logs as a group.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", s.Count),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("p99", s.P99),
	)
}
