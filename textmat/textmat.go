// Package textmat serializes matrices as plain text: one row per line,
// values in fixed-point notation with a fixed number of decimals, separated
// by a single space, each row terminated by '\n'. No trailing space.
//
// Example (precision 3):
//
//	0.000 5.000
//	5.000 0.000
//
// Decode reads the same format back. It splits on any whitespace, so files
// produced by other tools with tabs or repeated spaces are accepted too.
package textmat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/distgen/matrix"
)

// DefaultPrecision is the number of decimals written per value.
const DefaultPrecision = 3

// maxPrecision caps precision at what a float64 can meaningfully carry.
const maxPrecision = 17

var (
	// ErrSyntax is returned when a field is not a valid decimal number.
	ErrSyntax = errors.New("textmat: invalid number")

	// ErrRagged is returned when a row's width differs from the first row's.
	ErrRagged = errors.New("textmat: ragged rows")

	// ErrNotSquare is returned when the number of rows differs from the row width.
	ErrNotSquare = errors.New("textmat: matrix is not square")
)

// Option configures Encode.
type Option func(*config)

type config struct {
	precision int
}

// WithPrecision sets the number of decimals (0..17). Panics outside that range.
func WithPrecision(p int) Option {
	if p < 0 || p > maxPrecision {
		panic(fmt.Sprintf("textmat: WithPrecision(%d) out of range [0,%d]", p, maxPrecision))
	}
	return func(c *config) { c.precision = p }
}

// MaxRoundingError is the largest difference between a value and its text
// form at precision p: half a unit of the last written decimal.
func MaxRoundingError(p int) float64 {
	return 0.5 * math.Pow10(-p)
}

// Encode writes m to w. Rows with zero columns (and 0×0 matrices) produce
// no output. The writer is buffered internally and flushed before return.
//
// Complexity: O(r*c) time, O(c) extra space for the line buffer.
func Encode(w io.Writer, m matrix.Matrix, opts ...Option) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("textmat: %w", err)
	}
	cfg := config{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&cfg)
	}

	bw := bufio.NewWriter(w)
	rows, cols := m.Rows(), m.Cols()
	line := make([]byte, 0, cols*(cfg.precision+6))

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < rows && cols > 0; i++ {
		line = line[:0]
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return fmt.Errorf("textmat: %w", err)
			}
			if j > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendFloat(line, v, 'f', cfg.precision, 64)
		}
		line = append(line, '\n')
		if _, err = bw.Write(line); err != nil {
			return fmt.Errorf("textmat: write row %d: %w", i, err)
		}
	}

	if err = bw.Flush(); err != nil {
		return fmt.Errorf("textmat: flush: %w", err)
	}

	return nil
}

// Decode parses a square matrix written by Encode. Blank lines are skipped;
// empty input yields a 0×0 matrix.
//
// Errors: ErrSyntax (with line and column), ErrRagged, ErrNotSquare,
// matrix.ErrNaNInf for "NaN"/"Inf" fields, or the reader's error.
// Complexity: O(r*c).
func Decode(r io.Reader) (*matrix.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30) // one row of a large matrix can be long

	var (
		rows   [][]float64
		width  = -1
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		fields, err := parseRow(sc.Bytes(), lineNo)
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		if width < 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf("%w: line %d has %d values, expected %d", ErrRagged, lineNo, len(fields), width)
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("textmat: read: %w", err)
	}

	if width > 0 && len(rows) != width {
		return nil, fmt.Errorf("%w: %d rows of width %d", ErrNotSquare, len(rows), width)
	}

	m, err := matrix.NewSquare(len(rows))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, v := range row {
			if err = m.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("textmat: line %d: %w", i+1, err)
			}
		}
	}

	return m, nil
}

// parseRow splits a line on ASCII whitespace and parses each field.
func parseRow(line []byte, lineNo int) ([]float64, error) {
	var (
		out   []float64
		start = -1
	)
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		v, err := strconv.ParseFloat(string(line[start:end]), 64)
		if err != nil {
			return fmt.Errorf("%w: line %d, column %d: %q", ErrSyntax, lineNo, len(out)+1, line[start:end])
		}
		out = append(out, v)
		start = -1
		return nil
	}

	for k, b := range line {
		if b == ' ' || b == '\t' || b == '\r' {
			if err := flush(k); err != nil {
				return nil, err
			}
			continue
		}
		if start < 0 {
			start = k
		}
	}
	if err := flush(len(line)); err != nil {
		return nil, err
	}

	return out, nil
}
