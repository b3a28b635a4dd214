// Package sink resolves an output destination string into a writer (and a
// source string into a reader) for matrix files.
//
// Destinations:
//
//	matrix.txt               plain local file
//	matrix.txt.gz            gzip   (klauspost/compress/gzip)
//	matrix.txt.zst           zstd   (klauspost/compress/zstd)
//	matrix.txt.lz4           lz4 frame (pierrec/lz4/v4)
//	s3://bucket/path/key     streaming upload to an S3-compatible store (minio-go)
//
// Compression is picked from the extension for local files and object keys
// alike. Close flushes the compressor first, then closes the file or waits
// for the upload to finish. Abort discards an in-flight upload instead of
// committing a partial object; for local files it behaves like Close.
package sink
