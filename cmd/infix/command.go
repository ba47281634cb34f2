package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/internal/varfile"
)

// newRootCommand returns the infix command.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:      "infix",
		Usage:     "Evaluate arithmetic expressions",
		ArgsUsage: "[expression ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "in",
				Usage: "input file, or - for stdin (default stdin if no args given)",
			},
			&cli.StringFlag{
				Name:  "fmt",
				Usage: "result formatting string",
				Value: "%g",
			},
			&cli.StringSliceFlag{
				Name:  "given",
				Usage: "name=value variable definition; the value may be an expression",
			},
			&cli.StringSliceFlag{
				Name:  "vars",
				Usage: "YAML or JSON file of variable definitions; ** globs are allowed",
			},
			&cli.BoolFlag{
				Name:  "radians",
				Usage: "use radians for trigonometric functions instead of degrees",
			},
			&cli.BoolFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Usage:   "evaluate separate input lines as separate expressions",
			},
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "print each expression before its result",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log each reduction step",
			},
			&cli.IntFlag{
				Name:  "max-steps",
				Usage: "bound on the iterations of each reduction loop (0 derives it from the input)",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelWarn
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := []infix.Option{infix.Logger(logger), infix.MaxSteps(int(cmd.Int("max-steps")))}
	if cmd.Bool("radians") {
		opts = append(opts, infix.Radians())
	}
	vars, err := defines(cmd.StringSlice("vars"), cmd.StringSlice("given"), opts)
	if err != nil {
		return err
	}
	opts = append(opts, infix.SetVars(vars))

	srcs, err := inputs(cmd)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	verb := cmd.String("fmt") + "\n"
	failed := 0
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cmd.Bool("echo") {
			fmt.Fprintf(out, "%s : ", strings.TrimSpace(src))
		}
		r, err := infix.EvalString(src, opts...)
		if err != nil {
			fmt.Fprintln(out, err)
			failed++
			continue
		}
		fmt.Fprintf(out, verb, r)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(srcs))
	}
	return nil
}

// defines collects the variables from files and then from name=value
// definitions in order. Each value is evaluated with the variables defined
// before it.
func defines(files, given []string, opts []infix.Option) (map[string]float64, error) {
	vars := make(map[string]float64)
	if len(files) > 0 {
		v, err := varfile.LoadAll(files)
		if err != nil {
			return nil, err
		}
		vars = v
		slog.Debug("loaded variables", "names", varfile.Names(vars))
	}
	for _, d := range given {
		name, val, ok := strings.Cut(d, "=")
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		if !infix.ValidName(name) || infix.Reserved(name) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		r, err := infix.EvalString(val, append(opts[:len(opts):len(opts)], infix.SetVars(vars))...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		vars[name] = r
	}
	return vars, nil
}

// inputs collects the expressions to evaluate: the contents of the input
// file, then each argument.
func inputs(cmd *cli.Command) ([]string, error) {
	var srcs []string
	lines := cmd.Bool("lines")
	var r io.Reader
	switch in := cmd.String("in"); {
	case in != "" && in != "-":
		f, err := os.Open(in)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	case in == "-", cmd.Args().Len() == 0:
		r = cmd.Root().Reader
		if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			// A terminal implies one expression per line.
			lines = true
		}
	}
	if r != nil {
		s, err := read(r, lines)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		srcs = append(srcs, s...)
	}
	return append(srcs, cmd.Args().Slice()...), nil
}

// read reads either the entire input as one expression or each non-blank
// line as its own expression.
func read(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			srcs = append(srcs, sc.Text())
		}
	}
	return srcs, sc.Err()
}
