// Package distgen generates random 2D point sets and writes their pairwise
// Euclidean distance matrix as plain text.
//
// What it does:
//
//	• Draws n points uniformly from a square domain ([-100, 100]² by default)
//	• Builds the n×n distance matrix (symmetric, zero diagonal)
//	• Writes it as rows of space-separated "%.3f" values, one row per line
//	• Reads such files back and checks their invariants
//
// Packages:
//
//	geom/      — Point, Domain, uniform Sampler, Euclidean Distance
//	matrix/    — Dense row-major storage, sentinel errors, validators
//	distance/  — points → distance matrix, invariant Check
//	textmat/   — fixed-precision text Encode / Decode
//	sink/      — local, compressed (.gz/.zst/.lz4) and s3:// destinations
//	stats/     — min/max/mean/quantile summary of the distances
//	logging/   — slog wrapper
//	generator/ — the generate → build → write pipeline
//	cmd/distgen — the CLI
//
// Quick example (two points (0,0) and (3,4)):
//
//	0.000 5.000
//	5.000 0.000
//
//	go install github.com/katalvlaran/distgen/cmd/distgen@latest
package distgen
