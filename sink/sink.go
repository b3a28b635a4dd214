package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pierrec/lz4/v4"
)

// ErrBadURL is returned for malformed s3:// destinations.
var ErrBadURL = errors.New("sink: invalid s3 url")

const (
	schemeS3 = "s3"

	// DefaultS3Endpoint is used when no endpoint option is given.
	DefaultS3Endpoint = "s3.amazonaws.com"

	contentType = "text/plain; charset=utf-8"

	// Streamed uploads have no known size; minio buffers one part at a time.
	uploadPartSize = 16 << 20
)

// Option configures Create and Open.
type Option func(*config)

type config struct {
	endpoint string
	region   string
	secure   bool
	creds    *credentials.Credentials
	client   *minio.Client
}

func newConfig(opts []Option) config {
	c := config{endpoint: DefaultS3Endpoint, secure: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithS3Endpoint sets the host[:port] of the S3-compatible service. Panics on "".
func WithS3Endpoint(endpoint string) Option {
	if endpoint == "" {
		panic("sink: WithS3Endpoint(\"\")")
	}
	return func(c *config) { c.endpoint = endpoint }
}

// WithS3Secure toggles TLS for the S3 endpoint (default true).
func WithS3Secure(secure bool) Option {
	return func(c *config) { c.secure = secure }
}

// WithS3Region pins the bucket region and skips the location lookup.
func WithS3Region(region string) Option {
	return func(c *config) { c.region = region }
}

// WithCredentials overrides the default env chain (MINIO_*, then AWS_*). Panics on nil.
func WithCredentials(creds *credentials.Credentials) Option {
	if creds == nil {
		panic("sink: WithCredentials(nil)")
	}
	return func(c *config) { c.creds = creds }
}

// WithS3Client plugs a ready client; endpoint and credential options are then ignored.
func WithS3Client(client *minio.Client) Option {
	if client == nil {
		panic("sink: WithS3Client(nil)")
	}
	return func(c *config) { c.client = client }
}

func (c config) s3Client() (*minio.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	creds := c.creds
	if creds == nil {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvMinio{},
			&credentials.EnvAWS{},
		})
	}
	client, err := minio.New(c.endpoint, &minio.Options{Creds: creds, Secure: c.secure, Region: c.region})
	if err != nil {
		return nil, fmt.Errorf("sink: s3 client for %s: %w", c.endpoint, err)
	}
	return client, nil
}

// ParseS3URL splits "s3://bucket/key" into its parts. ok is false (and err
// nil) for anything that is not an s3:// URL, which callers treat as a local path.
func ParseS3URL(s string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(s, schemeS3+"://") {
		return "", "", false, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", true, fmt.Errorf("%w: %q: %v", ErrBadURL, s, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", true, fmt.Errorf("%w: %q: need s3://bucket/key", ErrBadURL, s)
	}
	return u.Host, key, true, nil
}

// Create opens dest for writing. See the package doc for supported forms.
func Create(ctx context.Context, dest string, opts ...Option) (io.WriteCloser, error) {
	bucket, key, isS3, err := ParseS3URL(dest)
	if err != nil {
		return nil, err
	}

	var base io.WriteCloser
	if isS3 {
		client, err := newConfig(opts).s3Client()
		if err != nil {
			return nil, err
		}
		base = newUpload(ctx, client, bucket, key)
	} else {
		f, err := os.Create(dest)
		if err != nil {
			return nil, fmt.Errorf("sink: %w", err)
		}
		base = f
	}

	w, err := compressWriter(dest, base)
	if err != nil {
		_ = Abort(base, err)
		return nil, err
	}
	return w, nil
}

// Open opens src for reading, decompressing by extension.
func Open(ctx context.Context, src string, opts ...Option) (io.ReadCloser, error) {
	bucket, key, isS3, err := ParseS3URL(src)
	if err != nil {
		return nil, err
	}

	var base io.ReadCloser
	if isS3 {
		client, err := newConfig(opts).s3Client()
		if err != nil {
			return nil, err
		}
		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("sink: get %s: %w", src, err)
		}
		base = obj
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("sink: %w", err)
		}
		base = f
	}

	r, err := decompressReader(src, base)
	if err != nil {
		_ = base.Close()
		return nil, err
	}
	return r, nil
}

// Abort releases w after a failed write. Uploads are cancelled with cause
// instead of being committed; other writers are simply closed.
func Abort(w io.WriteCloser, cause error) error {
	if a, ok := w.(interface{ abort(error) error }); ok {
		return a.abort(cause)
	}
	return w.Close()
}

// ---------- compression ----------

func ext(name string) string {
	return strings.ToLower(path.Ext(name))
}

// stacked closes the encoder before the underlying writer.
type stacked struct {
	io.Writer
	enc  io.Closer
	base io.WriteCloser
}

func (s *stacked) Close() error {
	return errors.Join(s.enc.Close(), s.base.Close())
}

func (s *stacked) abort(cause error) error {
	_ = s.enc.Close()
	return Abort(s.base, cause)
}

func compressWriter(name string, base io.WriteCloser) (io.WriteCloser, error) {
	switch ext(name) {
	case ".gz":
		gw := gzip.NewWriter(base)
		return &stacked{Writer: gw, enc: gw, base: base}, nil
	case ".zst":
		zw, err := zstd.NewWriter(base)
		if err != nil {
			return nil, fmt.Errorf("sink: zstd: %w", err)
		}
		return &stacked{Writer: zw, enc: zw, base: base}, nil
	case ".lz4":
		lw := lz4.NewWriter(base)
		return &stacked{Writer: lw, enc: lw, base: base}, nil
	default:
		return base, nil
	}
}

// readStack closes the decoder (when it has resources) and the source.
type readStack struct {
	io.Reader
	dec  func()
	base io.Closer
}

func (r *readStack) Close() error {
	if r.dec != nil {
		r.dec()
	}
	return r.base.Close()
}

func decompressReader(name string, base io.ReadCloser) (io.ReadCloser, error) {
	switch ext(name) {
	case ".gz":
		gr, err := gzip.NewReader(base)
		if err != nil {
			return nil, fmt.Errorf("sink: gzip: %w", err)
		}
		return &readStack{Reader: gr, dec: func() { _ = gr.Close() }, base: base}, nil
	case ".zst":
		zr, err := zstd.NewReader(base)
		if err != nil {
			return nil, fmt.Errorf("sink: zstd: %w", err)
		}
		return &readStack{Reader: zr, dec: zr.Close, base: base}, nil
	case ".lz4":
		return &readStack{Reader: lz4.NewReader(base), base: base}, nil
	default:
		return base, nil
	}
}

// ---------- s3 upload ----------

// upload streams writes into a background PutObject through a pipe.
type upload struct {
	pw   *io.PipeWriter
	done chan error
}

func newUpload(ctx context.Context, client *minio.Client, bucket, key string) *upload {
	pr, pw := io.Pipe()
	u := &upload{pw: pw, done: make(chan error, 1)}

	go func() {
		_, err := client.PutObject(ctx, bucket, key, pr, -1, minio.PutObjectOptions{
			ContentType: contentType,
			PartSize:    uploadPartSize,
		})
		_ = pr.CloseWithError(err)
		u.done <- err
	}()

	return u
}

func (u *upload) Write(p []byte) (int, error) {
	return u.pw.Write(p)
}

// Close ends the stream and waits for the object to be committed.
func (u *upload) Close() error {
	_ = u.pw.Close()
	if err := <-u.done; err != nil {
		return fmt.Errorf("sink: upload: %w", err)
	}
	return nil
}

func (u *upload) abort(cause error) error {
	if cause == nil {
		cause = errors.New("sink: upload aborted")
	}
	_ = u.pw.CloseWithError(cause)
	<-u.done
	return nil
}
