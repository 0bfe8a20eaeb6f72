package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/scenic/entity"
	"github.com/ardnew/scenic/host"
	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/log"
	"github.com/ardnew/scenic/session"
)

// Fmt parses scene expressions and prints their definitions in the chosen
// format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical scene source (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Tree   Tree   `cmd:""                    help:"Format as an indented application tree."`
}

// Input selects the expressions read by the fmt subcommands.
type Input struct {
	All      bool   `help:"Parse every non-blank line, not only lines marked @3."        short:"a"`
	Document bool   `help:"Read a YAML scene document and parse its expressions."        short:"d"`
	Source   string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// expressions returns the definitions of each selected expression in order.
func (in *Input) expressions(ctx context.Context) ([][]lang.Definition, error) {
	r, err := openSource(ctx, in.Source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	type line struct {
		where slog.Attr
		text  string
	}

	var lines []line

	if in.Document {
		doc, err := host.Load(ctx, r, host.WithLogger(log.Default()))
		if err != nil {
			return nil, err
		}

		for _, x := range doc.Expressions() {
			if x.ID != session.HeaderID {
				lines = append(lines, line{slog.String("id", x.ID), x.Text})
			}
		}
	} else {
		sc := bufio.NewScanner(r)
		for n := 1; sc.Scan(); n++ {
			lines = append(lines, line{slog.Int("line", n), sc.Text()})
		}

		if err := sc.Err(); err != nil {
			return nil, err
		}
	}

	parser := lang.NewParser(entity.NewRegistry(), lang.WithLogger(log.Default()))

	var exprs [][]lang.Definition

	for _, l := range lines {
		text := strings.TrimSpace(l.text)
		if text == "" || (!in.All && !lang.HasMarker(text)) {
			continue
		}

		defs, err := parser.Parse(lang.Normalize(text))
		if err != nil {
			return nil, ErrSource.With(l.where).Wrap(err)
		}

		exprs = append(exprs, defs)
	}

	return exprs, nil
}

func flatten(exprs [][]lang.Definition) []lang.Definition {
	var defs []lang.Definition
	for _, e := range exprs {
		defs = append(defs, e...)
	}

	return defs
}

// Native formats expressions as canonical scene source, one per line.
type Native struct {
	Input Input `embed:""`
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) error {
	return f.Input.each(ctx, func(w io.Writer, defs []lang.Definition) error {
		return lang.Format(w, defs)
	})
}

// Tree formats each expression as an indented application tree.
type Tree struct {
	Indent int `default:"2" help:"Indent width for tree output" short:"i"`

	Input Input `embed:""`
}

// Run executes the tree format command.
func (f *Tree) Run(ctx context.Context) error {
	return f.Input.each(ctx, func(w io.Writer, defs []lang.Definition) error {
		return lang.FormatTree(w, defs, f.Indent)
	})
}

func (in *Input) each(
	ctx context.Context,
	write func(io.Writer, []lang.Definition) error,
) error {
	exprs, err := in.expressions(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)
	for _, defs := range exprs {
		if err := write(w, defs); err != nil {
			return err
		}
	}

	return nil
}

// JSON formats all definitions as one JSON array.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`

	Input Input `embed:""`
}

// Run executes the json format command.
func (f *JSON) Run(ctx context.Context) error {
	exprs, err := f.Input.expressions(ctx)
	if err != nil {
		return err
	}

	if err := lang.FormatJSON(outputFrom(ctx), flatten(exprs), f.Indent); err != nil {
		return ErrMarshal.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML formats all definitions as one YAML sequence.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	Input Input `embed:""`
}

// Run executes the yaml format command.
func (f *YAML) Run(ctx context.Context) error {
	exprs, err := f.Input.expressions(ctx)
	if err != nil {
		return err
	}

	if err := lang.FormatYAML(ctx, outputFrom(ctx), flatten(exprs), f.Indent); err != nil {
		return ErrMarshal.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}
