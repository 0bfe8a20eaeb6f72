package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/scenic/log"
	"github.com/ardnew/scenic/session"
)

// Run evaluates a scene document and prints a report of the resulting scene.
type Run struct {
	Document string   `arg:"" help:"Scene document (YAML) or '-' for stdin." optional:""`
	Set      []string `       help:"Set host variable (name=expr); repeatable."           placeholder:"NAME=EXPR" short:"s"`
	Expr     []string `       help:"Append a scene expression; repeatable."                placeholder:"TEXT"      short:"e"`
	Format   string   `       help:"Report format."                                        default:"text"          enum:"text,json,yaml" short:"o"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := loadDocument(ctx, r.Document)
	if err != nil {
		return err
	}

	sess, err := session.New(doc, nil,
		session.WithLogger(log.Default()),
		session.WithStrictShapes(strictFrom(ctx)),
	)
	if err != nil {
		return err
	}

	for _, assign := range r.Set {
		name, src, err := parseAssignment(assign)
		if err != nil {
			return err
		}

		if err := doc.SetVariable(name, src); err != nil {
			return err
		}
	}

	for _, text := range r.Expr {
		id := doc.AppendExpression(text)
		log.DebugContext(ctx, "appended expression", slog.String("id", id))
	}

	if err := sess.Report().Encode(ctx, outputFrom(ctx), r.Format); err != nil {
		return ErrMarshal.With(slog.String("format", r.Format)).Wrap(err)
	}

	return nil
}

// parseAssignment splits "name=expr" and trims both sides.
func parseAssignment(s string) (name, src string, err error) {
	name, src, ok := strings.Cut(s, "=")
	name, src = strings.TrimSpace(name), strings.TrimSpace(src)

	if !ok || name == "" || src == "" {
		return "", "", ErrInvalidAssignment.With(slog.String("input", s))
	}

	return name, src, nil
}
