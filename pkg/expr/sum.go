package expr

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jpnock/opord/internal/logger"
)

// maxLineLength bounds a single input line.
const maxLineLength = 1 << 20

type options struct {
	workers int
	cache   bool
	verify  bool
	log     *logger.Logger
}

type Option func(*options)

// WithWorkers evaluates lines on a pool of n goroutines. n <= 1 evaluates
// sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithCache evaluates each distinct line only once.
func WithCache() Option {
	return func(o *options) { o.cache = true }
}

// WithVerify cross-checks every line with govaluate.
func WithVerify() Option {
	return func(o *options) { o.verify = true }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) *options {
	o := &options{workers: 1}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Discard()
	}
	return o
}

// LineResult is the outcome of evaluating one non-blank input line.
type LineResult struct {
	Line  int
	Text  string
	Value int64
	Err   error
}

type inputLine struct {
	number int
	text   string
}

func readLines(r io.Reader) ([]inputLine, error) {
	var lines []inputLine

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	for n := 1; sc.Scan(); n++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, inputLine{number: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return lines, nil
}

// SumFile evaluates every non-blank line of the file at path and returns the
// sum of the results. The first malformed line aborts the sum.
func SumFile(path string, mode PrecedenceMode, opts ...Option) (int64, error) {
	return SumFileContext(context.Background(), path, mode, opts...)
}

func SumFileContext(ctx context.Context, path string, mode PrecedenceMode, opts ...Option) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return SumReader(ctx, f, mode, opts...)
}

// SumReader is SumFile over an arbitrary reader.
func SumReader(ctx context.Context, r io.Reader, mode PrecedenceMode, opts ...Option) (int64, error) {
	o := buildOptions(opts)

	lines, err := readLines(r)
	if err != nil {
		return 0, err
	}
	o.log.Debug("evaluating %d lines in %s mode with %d workers", len(lines), mode, o.workers)

	results, err := newEvaluator(mode, o).run(ctx, lines, true)
	if err != nil {
		return 0, err
	}

	var sum int64
	for _, res := range results {
		sum, err = checkedAdd(sum, res.Value)
		if err != nil {
			return 0, &LineError{Line: res.Line, Err: err}
		}
	}
	o.log.Info("%s sum of %d lines: %d", mode, len(results), sum)
	return sum, nil
}

// EvaluateLines evaluates every non-blank line of r and reports each line's
// result or error individually. The returned error is only set when r cannot
// be read or ctx is cancelled.
func EvaluateLines(ctx context.Context, r io.Reader, mode PrecedenceMode, opts ...Option) ([]LineResult, error) {
	o := buildOptions(opts)

	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return newEvaluator(mode, o).run(ctx, lines, false)
}

type cachedResult struct {
	text  string
	value int64
	err   error
}

type evaluator struct {
	mode PrecedenceMode
	opts *options

	mu    sync.Mutex
	cache map[uint64]cachedResult
}

func newEvaluator(mode PrecedenceMode, o *options) *evaluator {
	e := &evaluator{mode: mode, opts: o}
	if o.cache {
		e.cache = make(map[uint64]cachedResult)
	}
	return e
}

func (e *evaluator) evaluate(text string) (int64, error) {
	if e.cache == nil {
		return e.compute(text)
	}

	key := strings.TrimSpace(text)
	h := xxhash.Sum64String(key)

	e.mu.Lock()
	hit, ok := e.cache[h]
	e.mu.Unlock()
	if ok && hit.text == key {
		e.opts.log.Debug("cache hit for %q", key)
		return hit.value, hit.err
	}

	v, err := e.compute(text)

	e.mu.Lock()
	e.cache[h] = cachedResult{text: key, value: v, err: err}
	e.mu.Unlock()
	return v, err
}

func (e *evaluator) compute(text string) (int64, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return 0, err
	}
	return EvaluateTokens(tokens, e.mode, e.opts.verify)
}

// run evaluates lines in input order, or on a worker pool when configured.
// With failFast the first line error is returned as a *LineError.
func (e *evaluator) run(ctx context.Context, lines []inputLine, failFast bool) ([]LineResult, error) {
	results := make([]LineResult, len(lines))

	if e.opts.workers <= 1 {
		for i, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := e.evaluateInto(&results[i], line, failFast); err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return e.evaluateInto(&results[i], line, failFast)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *evaluator) evaluateInto(res *LineResult, line inputLine, failFast bool) error {
	v, err := e.evaluate(line.text)
	*res = LineResult{Line: line.number, Text: line.text, Value: v}
	if err != nil {
		lerr := &LineError{Line: line.number, Err: err}
		e.opts.log.Debug("%v", lerr)
		if failFast {
			return lerr
		}
		res.Err = lerr
	}
	return nil
}
