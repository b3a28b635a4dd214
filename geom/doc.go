// Package geom holds the 2D primitives of the generator: Point, the square
// Domain points are drawn from, the uniform Sampler and the Euclidean
// Distance between two points.
//
// Sampling policy:
//   - Each coordinate is drawn independently and uniformly from [Min, Max).
//   - Without WithSeed/WithSource the Sampler seeds itself from fresh
//     entropy, so two runs differ. With WithSeed(s) runs are reproducible.
//
// A Sampler is NOT goroutine-safe; give each goroutine its own.
package geom
