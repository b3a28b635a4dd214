// SPDX-License-Identifier: MIT

// Package generator: functional options.
//
// Contract:
//   - Options are functional (type Option func(*config)).
//   - Option constructors validate and PANIC on meaningless inputs
//     (programmer error). Generate/Write never panic on user input.
//   - Without WithSeed every run draws fresh points.
package generator

import (
	"github.com/katalvlaran/distgen/geom"
	"github.com/katalvlaran/distgen/logging"
	"github.com/katalvlaran/distgen/sink"
	"github.com/katalvlaran/distgen/textmat"
)

// DefaultOutput is where the matrix is written when no destination is given.
const DefaultOutput = "./matrix.txt"

// Option customizes a generation run.
type Option func(*config)

type config struct {
	domain      geom.Domain
	samplerOpts []geom.Option
	encodeOpts  []textmat.Option
	sinkOpts    []sink.Option
	logger      *logging.Logger
	summary     bool
}

func newConfig(opts []Option) config {
	c := config{
		domain: geom.DefaultDomain,
		logger: logging.Noop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSeed makes point generation reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.samplerOpts = append(c.samplerOpts, geom.WithSeed(seed)) }
}

// WithDomain changes the square points are drawn from. Panics on an invalid domain.
func WithDomain(d geom.Domain) Option {
	if err := d.Validate(); err != nil {
		panic("generator: WithDomain: " + err.Error())
	}
	return func(c *config) { c.domain = d }
}

// WithPrecision sets the decimals written per value (default 3).
// Panics outside [0,17] (see textmat.WithPrecision).
func WithPrecision(p int) Option {
	opt := textmat.WithPrecision(p)
	return func(c *config) { c.encodeOpts = append(c.encodeOpts, opt) }
}

// WithLogger routes progress records to l. Panics on nil.
func WithLogger(l *logging.Logger) Option {
	if l == nil {
		panic("generator: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithSinkOptions forwards options to sink.Create / sink.Open (S3 endpoint, credentials).
func WithSinkOptions(opts ...sink.Option) Option {
	return func(c *config) { c.sinkOpts = append(c.sinkOpts, opts...) }
}

// WithSummary computes a stats.Summary of the distances and logs it.
func WithSummary() Option {
	return func(c *config) { c.summary = true }
}
