package stats_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/distgen/distance"
	"github.com/katalvlaran/distgen/geom"
	"github.com/katalvlaran/distgen/matrix"
	"github.com/katalvlaran/distgen/stats"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTwoPoints(t *testing.T) {
	m, err := distance.Build([]geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}})
	require.NoError(t, err)

	s, err := stats.Summarize(m)
	require.NoError(t, err)
	require.Equal(t, stats.Summary{Count: 2, Min: 5, Max: 5, Mean: 5, P50: 5, P90: 5, P99: 5}, s)
}

func TestSummarizeTriangle(t *testing.T) {
	// 3-4-5 right triangle: pair distances 3, 4, 5.
	m, err := distance.Build([]geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}})
	require.NoError(t, err)

	s, err := stats.Summarize(m)
	require.NoError(t, err)
	require.Equal(t, 6, s.Count)
	require.Equal(t, 3.0, s.Min)
	require.Equal(t, 5.0, s.Max)
	require.InDelta(t, 4.0, s.Mean, 1e-12)
	require.Equal(t, 4.0, s.P50)
	require.Equal(t, 5.0, s.P99)
}

func TestSummarizeRandomWithinDomain(t *testing.T) {
	smp, err := geom.NewSampler(geom.DefaultDomain, geom.WithSeed(99))
	require.NoError(t, err)
	m, err := distance.Build(smp.Points(40))
	require.NoError(t, err)

	s, err := stats.Summarize(m)
	require.NoError(t, err)
	require.Equal(t, 40*39, s.Count)
	require.Greater(t, s.Min, 0.0)
	require.LessOrEqual(t, s.Max, geom.DefaultDomain.Diagonal())
	require.LessOrEqual(t, s.Min, s.P50)
	require.LessOrEqual(t, s.P50, s.P90)
	require.LessOrEqual(t, s.P90, s.P99)
	require.LessOrEqual(t, s.P99, s.Max)
}

func TestSummarizeDegenerate(t *testing.T) {
	m, err := matrix.NewSquare(1)
	require.NoError(t, err)
	s, err := stats.Summarize(m)
	require.NoError(t, err)
	require.Zero(t, s)

	_, err = stats.Summarize(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// flaky fails reads of one cell, standing in for a Matrix backed by storage.
type flaky struct {
	*matrix.Dense
	badRow, badCol int
}

var errRead = errors.New("read failed")

func (f flaky) At(i, j int) (float64, error) {
	if i == f.badRow && j == f.badCol {
		return 0, errRead
	}
	return f.Dense.At(i, j)
}

func TestSummarizePropagatesAtError(t *testing.T) {
	m, err := distance.Build([]geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}})
	require.NoError(t, err)

	_, err = stats.Summarize(flaky{Dense: m, badRow: 2, badCol: 1})
	require.ErrorIs(t, err, errRead)
	require.ErrorContains(t, err, "stats: (2,1)")
}
