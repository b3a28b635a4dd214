// SPDX-License-Identifier: MIT

// Package generator is the matrix generator pipeline:
//
//	acquire n → draw n points → build the n×n distance matrix → write it as text
//
// A single linear pass, single-threaded. n <= 0 is not an error: it yields
// no points, a 0×0 matrix and an empty output file.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/distgen/distance"
	"github.com/katalvlaran/distgen/geom"
	"github.com/katalvlaran/distgen/matrix"
	"github.com/katalvlaran/distgen/sink"
	"github.com/katalvlaran/distgen/stats"
	"github.com/katalvlaran/distgen/textmat"
)

// Result is everything one run produced.
type Result struct {
	Points    []geom.Point
	Distances *matrix.Dense
	Summary   *stats.Summary // set only with WithSummary
}

// Generate draws n points and builds their distance matrix in memory.
//
// Errors: wrapped geom or matrix errors.
// Complexity: O(n²) time and memory.
func Generate(n int, opts ...Option) (*Result, error) {
	return generate(n, newConfig(opts))
}

func generate(n int, cfg config) (*Result, error) {
	s, err := geom.NewSampler(cfg.domain, cfg.samplerOpts...)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	points := s.Points(n)
	m, err := distance.Build(points)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	res := &Result{Points: points, Distances: m}
	if cfg.summary {
		sum, err := stats.Summarize(m)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		res.Summary = &sum
	}

	return res, nil
}

// Write runs Generate and writes the matrix to dest (a path, a compressed
// path or an s3:// URL, see package sink). On an encoding error the
// destination is aborted rather than committed.
func Write(ctx context.Context, dest string, n int, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	log := cfg.logger.WithCount(n).WithDest(dest)

	log.Info("Begin generating...")
	start := time.Now()

	res, err := generate(n, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("matrix built", "points", len(res.Points), "elapsed", time.Since(start))
	if res.Summary != nil {
		log.Info("distance summary", "summary", *res.Summary)
	}

	w, err := sink.Create(ctx, dest, cfg.sinkOpts...)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	if err = textmat.Encode(w, res.Distances, cfg.encodeOpts...); err != nil {
		return nil, errors.Join(fmt.Errorf("generator: %w", err), sink.Abort(w, err))
	}
	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	log.Info("Finished!!!", "elapsed", time.Since(start))
	return res, nil
}

// Load reads a matrix written by Write back from src.
func Load(ctx context.Context, src string, opts ...sink.Option) (*matrix.Dense, error) {
	r, err := sink.Open(ctx, src, opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	defer r.Close()

	m, err := textmat.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("generator: %s: %w", src, err)
	}
	return m, nil
}
