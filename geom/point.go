package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is an immutable pair of real coordinates.
type Point struct {
	X, Y float64
}

// Vec returns the point as a 2-element slice (x, y).
func (p Point) Vec() []float64 {
	return []float64{p.X, p.Y}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the Euclidean distance sqrt((px-qx)² + (py-qy)²).
// Distance(p, q) == Distance(q, p) bit for bit and Distance(p, p) == 0.
// Complexity: O(1).
func Distance(p, q Point) float64 {
	return floats.Distance(p.Vec(), q.Vec(), 2)
}

// Domain is the closed interval [Min, Max] used for both axes.
type Domain struct {
	Min, Max float64
}

// DefaultDomain is the square [-100, 100]².
var DefaultDomain = Domain{Min: -100, Max: 100}

// Validate reports ErrBadDomain when a bound is NaN/Inf or Max <= Min.
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsInf(d.Min, 0) || math.IsNaN(d.Max) || math.IsInf(d.Max, 0) {
		return fmt.Errorf("%w: non-finite bound [%g, %g]", ErrBadDomain, d.Min, d.Max)
	}
	if d.Max <= d.Min {
		return fmt.Errorf("%w: max %g <= min %g", ErrBadDomain, d.Max, d.Min)
	}

	return nil
}

// Contains reports whether p lies in the closed square [Min, Max]².
func (d Domain) Contains(p Point) bool {
	return p.X >= d.Min && p.X <= d.Max && p.Y >= d.Min && p.Y <= d.Max
}

// Side returns Max - Min.
func (d Domain) Side() float64 {
	return d.Max - d.Min
}

// Diagonal returns the largest distance two points of the domain can have,
// (Max-Min)·√2. For DefaultDomain this is 200√2 ≈ 282.843.
func (d Domain) Diagonal() float64 {
	return d.Side() * math.Sqrt2
}
