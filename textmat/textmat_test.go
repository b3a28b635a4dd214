package textmat_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/distgen/distance"
	"github.com/katalvlaran/distgen/geom"
	"github.com/katalvlaran/distgen/matrix"
	"github.com/katalvlaran/distgen/textmat"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, m matrix.Matrix, opts ...textmat.Option) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, textmat.Encode(&buf, m, opts...))
	return buf.String()
}

func TestEncodeScenarios(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
		want   string
	}{
		{"none", nil, ""},
		{"one", []geom.Point{{X: 12, Y: -7}}, "0.000\n"},
		{"three-four-five", []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, "0.000 5.000\n5.000 0.000\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := distance.Build(tc.points)
			require.NoError(t, err)
			require.Equal(t, tc.want, encode(t, m))
		})
	}
}

func TestEncodePrecision(t *testing.T) {
	m, err := distance.Build([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)

	require.Equal(t, "0 1\n1 0\n", encode(t, m, textmat.WithPrecision(0)))
	require.Equal(t, "0.00000 1.41421\n1.41421 0.00000\n", encode(t, m, textmat.WithPrecision(5)))

	require.Panics(t, func() { textmat.WithPrecision(-1) })
	require.Panics(t, func() { textmat.WithPrecision(18) })
}

func TestMaxRoundingError(t *testing.T) {
	require.Equal(t, 0.5, textmat.MaxRoundingError(0))
	require.InDelta(t, 0.0005, textmat.MaxRoundingError(textmat.DefaultPrecision), 1e-18)

	// Every written value decodes within the bound of the original.
	smp, err := geom.NewSampler(geom.DefaultDomain, geom.WithSeed(4))
	require.NoError(t, err)
	m, err := distance.Build(smp.Points(12))
	require.NoError(t, err)
	for _, p := range []int{0, 1, 3} {
		got, err := textmat.Decode(strings.NewReader(encode(t, m, textmat.WithPrecision(p))))
		require.NoError(t, err)
		m.Do(func(i, j int, v float64) bool {
			w, err := got.At(i, j)
			require.NoError(t, err)
			require.LessOrEqual(t, math.Abs(w-v), textmat.MaxRoundingError(p)+1e-12, "p=%d (%d,%d)", p, i, j)
			return true
		})
	}
}

func TestEncodeShape(t *testing.T) {
	s, err := geom.NewSampler(geom.DefaultDomain, geom.WithSeed(11))
	require.NoError(t, err)
	const n = 25
	m, err := distance.Build(s.Points(n))
	require.NoError(t, err)

	out := encode(t, m)
	require.True(t, strings.HasSuffix(out, "\n"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, n)
	for i, line := range lines {
		require.False(t, strings.HasSuffix(line, " "), "trailing space on line %d", i)
		fields := strings.Split(line, " ")
		require.Len(t, fields, n)
		require.Equal(t, "0.000", fields[i])
	}
	// Symmetry survives formatting.
	for i := range lines {
		for j := range lines {
			require.Equal(t, strings.Split(lines[i], " ")[j], strings.Split(lines[j], " ")[i])
		}
	}
}

func TestEncodeNil(t *testing.T) {
	require.ErrorIs(t, textmat.Encode(&bytes.Buffer{}, nil), matrix.ErrNilMatrix)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriteError(t *testing.T) {
	m, err := distance.Build([]geom.Point{{X: 1, Y: 1}})
	require.NoError(t, err)
	require.ErrorContains(t, textmat.Encode(failingWriter{}, m), "disk full")
}

func TestDecodeRoundTrip(t *testing.T) {
	s, err := geom.NewSampler(geom.DefaultDomain, geom.WithSeed(5))
	require.NoError(t, err)
	m, err := distance.Build(s.Points(12))
	require.NoError(t, err)

	got, err := textmat.Decode(strings.NewReader(encode(t, m)))
	require.NoError(t, err)
	require.Equal(t, m.Rows(), got.Rows())
	m.Do(func(i, j int, v float64) bool {
		g, _ := got.At(i, j)
		require.InDelta(t, v, g, 0.0005)
		return true
	})

	// Re-encoding the decoded matrix is byte-identical.
	require.Equal(t, encode(t, m), encode(t, got))
}

func TestDecodeEdgeCases(t *testing.T) {
	m, err := textmat.Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, m.Rows())

	m, err = textmat.Decode(strings.NewReader("0.000\t5.000\r\n\n5.000  0.000\n"))
	require.NoError(t, err)
	require.Equal(t, "[0, 5]\n[5, 0]\n", m.String())

	tests := []struct {
		name, in string
		want     error
	}{
		{"syntax", "0.000 x\nx 0.000\n", textmat.ErrSyntax},
		{"ragged", "0 1\n1\n", textmat.ErrRagged},
		{"too many rows", "0 1\n1 0\n2 2\n", textmat.ErrNotSquare},
		{"too few rows", "0 1 2\n1 0 2\n", textmat.ErrNotSquare},
		{"inf", "0 Inf\nInf 0\n", matrix.ErrNaNInf},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := textmat.Decode(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}
