package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/jpnock/opord/internal/logger"
	"github.com/jpnock/opord/pkg/expr"
)

type env struct {
	ctx context.Context
	log *logger.Logger
	out io.Writer
}

type cli struct {
	LogLevel string `help:"Log level (debug, info, warn, error, none)." default:"warn" env:"OPORD_LOG_LEVEL" enum:"debug,info,warn,error,none"`
	LogFile  string `help:"Write logs to this file instead of stderr." type:"path"`

	Sum  sumCmd  `cmd:"" help:"Sum the value of every expression in the given files."`
	Eval evalCmd `cmd:"" help:"Evaluate a single expression."`
	Tree treeCmd `cmd:"" help:"Show the expression tree built for an expression."`
}

type sumCmd struct {
	Mode      string   `help:"Precedence mode: both, flat, precedence or conventional." default:"both" env:"OPORD_MODE" enum:"both,flat,precedence,conventional"`
	Workers   int      `help:"Evaluate lines on this many goroutines." default:"1" env:"OPORD_WORKERS"`
	Verify    bool     `help:"Cross-check every line with govaluate."`
	Cache     bool     `help:"Evaluate repeated lines only once."`
	KeepGoing bool     `help:"Report malformed lines and keep summing the rest."`
	Files     []string `arg:"" help:"Input files, one expression per line."`
}

type evalCmd struct {
	Mode   string `help:"Precedence mode: both, flat, precedence or conventional." default:"both" enum:"both,flat,precedence,conventional"`
	Verify bool   `help:"Cross-check the result with govaluate."`
	Expr   string `arg:"" help:"Expression to evaluate."`
}

type treeCmd struct {
	Mode   string `help:"Precedence mode: flat, precedence or conventional." default:"precedence" enum:"flat,precedence,conventional"`
	Format string `help:"Output format: text, dot or repr." default:"text" enum:"text,dot,repr"`
	Expr   string `arg:"" help:"Expression to parse."`
}

// defaultConfig lists the JSON config files read by the opord binary. Later
// files override earlier ones.
var defaultConfig = []string{"~/.config/opord.json", ".opord.json"}

// run parses args and executes the selected command. Flag values are taken
// from the command line first, then from the config files, then from the
// OPORD_* environment variables.
func run(args []string, config []string, stdout, stderr io.Writer) error {
	var c cli
	exited := false
	parser, err := kong.New(&c,
		kong.Name("opord"),
		kong.Description("Evaluate +/* expressions under different operator precedence rules."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Configuration(kong.JSON, config...),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if exited {
		return nil
	}
	if err != nil {
		return err
	}

	level := logger.ParseLevel(c.LogLevel)
	log := logger.NewWriter(level, stderr, "opord")
	if c.LogFile != "" {
		if log, err = logger.New(level, c.LogFile, "opord"); err != nil {
			return err
		}
	}
	defer log.Close()

	return kctx.Run(&env{
		ctx: context.Background(),
		log: log,
		out: stdout,
	})
}

// modes expands a mode flag; "both" is flat followed by precedence.
func modes(name string) ([]expr.PrecedenceMode, error) {
	if name == "both" {
		return []expr.PrecedenceMode{expr.ModeFlat, expr.ModePrecedence}, nil
	}
	m, err := expr.ParseMode(name)
	if err != nil {
		return nil, err
	}
	return []expr.PrecedenceMode{m}, nil
}

func sumLabel(m expr.PrecedenceMode) string {
	switch m {
	case expr.ModeFlat:
		return "Sum of all expressions"
	case expr.ModePrecedence:
		return "Sum of all expressions with precedence"
	default:
		return fmt.Sprintf("Sum of all expressions (%s)", m)
	}
}

func (s *sumCmd) Run(e *env) error {
	ms, err := modes(s.Mode)
	if err != nil {
		return err
	}

	opts := []expr.Option{expr.WithWorkers(s.Workers)}
	if s.Verify {
		opts = append(opts, expr.WithVerify())
	}
	if s.Cache {
		opts = append(opts, expr.WithCache())
	}

	failed := 0
	for _, path := range s.Files {
		prefix := ""
		if len(s.Files) > 1 {
			prefix = path + ": "
		}
		fileOpts := append(opts[:len(opts):len(opts)], expr.WithLogger(e.log.WithPrefix(path)))
		for _, m := range ms {
			if !s.KeepGoing {
				sum, err := expr.SumFileContext(e.ctx, path, m, fileOpts...)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(e.out, "%s%s: %d\n", prefix, sumLabel(m), sum)
				continue
			}

			sum, bad, err := s.sumKeepGoing(e, path, m, fileOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			failed += bad
			fmt.Fprintf(e.out, "%s%s: %d\n", prefix, sumLabel(m), sum)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d malformed lines skipped", failed)
	}
	return nil
}

func (s *sumCmd) sumKeepGoing(e *env, path string, m expr.PrecedenceMode, opts []expr.Option) (int64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", expr.ErrIO, err)
	}
	defer f.Close()

	results, err := expr.EvaluateLines(e.ctx, f, m, opts...)
	if err != nil {
		return 0, 0, err
	}

	var sum int64
	bad := 0
	for _, res := range results {
		if res.Err != nil {
			e.log.WithPrefix(path).Warn("%s: skipped %v", m, res.Err)
			bad++
			continue
		}
		next, err := expr.OperatorAdd.Apply(sum, res.Value)
		if err != nil {
			return 0, bad, &expr.LineError{Line: res.Line, Err: err}
		}
		sum = next
	}
	return sum, bad, nil
}

func (c *evalCmd) Run(e *env) error {
	ms, err := modes(c.Mode)
	if err != nil {
		return err
	}

	tokens, err := expr.Tokenize(c.Expr)
	if err != nil {
		return err
	}

	for _, m := range ms {
		v, err := expr.EvaluateTokens(tokens, m, c.Verify)
		if err != nil {
			return fmt.Errorf("%s: %w", m, err)
		}
		if len(ms) == 1 {
			fmt.Fprintln(e.out, v)
		} else {
			fmt.Fprintf(e.out, "%s: %d\n", m, v)
		}
	}
	return nil
}

func (c *treeCmd) Run(e *env) error {
	m, err := expr.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	tokens, err := expr.Tokenize(c.Expr)
	if err != nil {
		return err
	}
	tree, err := expr.ParseTreeWith(tokens, m.Table())
	if err != nil {
		return err
	}
	e.log.Debug("built %d node tree for %q", tree.Len(), c.Expr)

	switch c.Format {
	case "dot":
		return tree.Dot(e.out)
	case "repr":
		fmt.Fprintln(e.out, repr.String(tree, repr.Indent("  ")))
		return nil
	}

	v, err := expr.EvaluateTree(tree)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s = %d\n", tree.Describe(), v)
	return nil
}
