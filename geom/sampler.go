package geom

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Option customizes a Sampler before its first draw.
// Constructors panic on nonsensical values (programmer error).
type Option func(*samplerConfig)

type samplerConfig struct {
	src rand.Source // nil ⇒ fresh entropy
}

// WithSeed makes the sampler deterministic: same seed ⇒ same points.
func WithSeed(seed uint64) Option {
	return func(c *samplerConfig) {
		// Second PCG word is derived from the seed so a single value suffices.
		c.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithSource plugs an explicit random source. Panics on nil.
func WithSource(src rand.Source) Option {
	if src == nil {
		panic("geom: WithSource(nil)")
	}
	return func(c *samplerConfig) { c.src = src }
}

// Sampler draws points uniformly from a Domain.
type Sampler struct {
	domain Domain
	x, y   distuv.Uniform // share one source; x is always drawn before y
}

// NewSampler builds a Sampler over d.
// Errors: ErrBadDomain when d is invalid.
func NewSampler(d Domain, opts ...Option) (*Sampler, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	cfg := samplerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.src == nil {
		cfg.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	u := distuv.Uniform{Min: d.Min, Max: d.Max, Src: cfg.src}
	return &Sampler{domain: d, x: u, y: u}, nil
}

// Domain returns the domain the sampler draws from.
func (s *Sampler) Domain() Domain {
	return s.domain
}

// Point draws one point; X is drawn before Y.
func (s *Sampler) Point() Point {
	x := s.x.Rand()
	y := s.y.Rand()
	return Point{X: x, Y: y}
}

// Points draws n points in order. n <= 0 yields an empty, non-nil slice.
// Complexity: O(n).
func (s *Sampler) Points(n int) []Point {
	if n <= 0 {
		return []Point{}
	}
	out := make([]Point, n)
	for i := range out {
		out[i] = s.Point()
	}

	return out
}
