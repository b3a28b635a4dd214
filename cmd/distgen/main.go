// Command distgen writes the pairwise distance matrix of n random points.
//
// Usage:
//
//	distgen [flags]                 generate (prompts for n unless -n is given)
//	distgen inspect [flags] [file]  decode a matrix file, check it, log a summary
//
// Examples:
//
//	distgen                         # asks "Please enter # of points: ", writes ./matrix.txt
//	distgen -n 500 -o regions.txt.zst --seed 7
//	distgen -n 50 -o s3://models/regions/matrix.txt --s3-endpoint localhost:9000 --s3-secure=false
//	distgen inspect regions.txt.zst
//	distgen inspect --precision 0 coarse.txt
//
// Exit codes: 0 success, 1 runtime error, 2 usage error.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/katalvlaran/distgen/distance"
	"github.com/katalvlaran/distgen/generator"
	"github.com/katalvlaran/distgen/geom"
	"github.com/katalvlaran/distgen/logging"
	"github.com/katalvlaran/distgen/sink"
	"github.com/katalvlaran/distgen/stats"
	"github.com/katalvlaran/distgen/textmat"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	prompt = "Please enter # of points: "
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// common holds the flags shared by both modes.
type common struct {
	min, max   float64
	s3Endpoint string
	s3Secure   bool
	logLevel   string
	logFormat  string
}

func (c *common) register(fs *pflag.FlagSet) {
	fs.Float64Var(&c.min, "min", geom.DefaultDomain.Min, "lower bound of both coordinates")
	fs.Float64Var(&c.max, "max", geom.DefaultDomain.Max, "upper bound of both coordinates")
	fs.StringVar(&c.s3Endpoint, "s3-endpoint", sink.DefaultS3Endpoint, "S3-compatible endpoint for s3:// destinations")
	fs.BoolVar(&c.s3Secure, "s3-secure", true, "use TLS for the S3 endpoint")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&c.logFormat, "log-format", string(logging.FormatText), "log format: text or json")
}

func (c *common) domain() (geom.Domain, error) {
	d := geom.Domain{Min: c.min, Max: c.max}
	return d, d.Validate()
}

func (c *common) logger(w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(w, logging.Format(c.logFormat), level)
}

func (c *common) sinkOptions(fs *pflag.FlagSet) []sink.Option {
	opts := []sink.Option{sink.WithS3Secure(c.s3Secure)}
	if fs.Changed("s3-endpoint") && c.s3Endpoint != "" {
		opts = append(opts, sink.WithS3Endpoint(c.s3Endpoint))
	}
	return opts
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "inspect" {
		return runInspect(ctx, args[1:], stdout, stderr)
	}
	return runGenerate(ctx, args, stdin, stdout, stderr)
}

func runGenerate(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("distgen", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		c         common
		n         int
		output    string
		seed      uint64
		precision int
		summary   bool
	)
	c.register(fs)
	fs.IntVarP(&n, "count", "n", 0, "number of points (prompted for when omitted)")
	fs.StringVarP(&output, "output", "o", generator.DefaultOutput, "destination: path[.gz|.zst|.lz4] or s3://bucket/key")
	fs.Uint64Var(&seed, "seed", 0, "seed for reproducible points (default: fresh entropy)")
	fs.IntVar(&precision, "precision", textmat.DefaultPrecision, "decimals per value (0-17)")
	fs.BoolVar(&summary, "summary", false, "log min/max/mean/quantiles of the distances")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "distgen: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}
	if precision < 0 || precision > 17 {
		fmt.Fprintf(stderr, "distgen: --precision %d out of range [0,17]\n", precision)
		return exitUsage
	}
	d, err := c.domain()
	if err != nil {
		fmt.Fprintf(stderr, "distgen: %v\n", err)
		return exitUsage
	}
	log, err := c.logger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "distgen: %v\n", err)
		return exitUsage
	}

	if !fs.Changed("count") {
		if n, err = readCount(stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "distgen: %v\n", err)
			return exitError
		}
	}

	opts := []generator.Option{
		generator.WithDomain(d),
		generator.WithPrecision(precision),
		generator.WithLogger(log),
		generator.WithSinkOptions(c.sinkOptions(fs)...),
	}
	if fs.Changed("seed") {
		opts = append(opts, generator.WithSeed(seed))
	}
	if summary {
		opts = append(opts, generator.WithSummary())
	}

	if _, err = generator.Write(ctx, output, n, opts...); err != nil {
		fmt.Fprintf(stderr, "distgen: %v\n", err)
		return exitError
	}
	return exitOK
}

// readCount prompts on out and parses one integer line from in.
func readCount(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("read point count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("invalid point count %q", strings.TrimSpace(line))
	}
	return n, nil
}

func runInspect(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("distgen inspect", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		c         common
		tol       float64
		precision int
	)
	c.register(fs)
	fs.IntVar(&precision, "precision", textmat.DefaultPrecision, "decimals the file was written with (0-17)")
	fs.Float64Var(&tol, "tol", 0, "tolerance for symmetry, diagonal and bounds checks (default: half a unit of the last decimal)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "distgen inspect: at most one file")
		return exitUsage
	}
	src := generator.DefaultOutput
	if fs.NArg() == 1 {
		src = fs.Arg(0)
	}
	if precision < 0 || precision > 17 {
		fmt.Fprintf(stderr, "distgen inspect: --precision %d out of range [0,17]\n", precision)
		return exitUsage
	}
	if !fs.Changed("tol") {
		tol = textmat.MaxRoundingError(precision)
	}
	d, err := c.domain()
	if err != nil {
		fmt.Fprintf(stderr, "distgen inspect: %v\n", err)
		return exitUsage
	}
	log, err := c.logger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "distgen inspect: %v\n", err)
		return exitUsage
	}

	m, err := generator.Load(ctx, src, c.sinkOptions(fs)...)
	if err != nil {
		fmt.Fprintf(stderr, "distgen inspect: %v\n", err)
		return exitError
	}
	if err = distance.Check(m, d, tol); err != nil {
		fmt.Fprintf(stderr, "distgen inspect: %s: %v\n", src, err)
		return exitError
	}
	sum, err := stats.Summarize(m)
	if err != nil {
		fmt.Fprintf(stderr, "distgen inspect: %v\n", err)
		return exitError
	}

	log.Info("matrix ok", "src", src, "n", m.Rows(), "summary", sum)
	fmt.Fprintf(stdout, "%s: %d×%d ok\n", src, m.Rows(), m.Cols())
	return exitOK
}
