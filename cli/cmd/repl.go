package cmd

import (
	"context"

	"github.com/ardnew/scenic/cli/cmd/repl"
	"github.com/ardnew/scenic/log"
	"github.com/ardnew/scenic/session"
)

// Repl edits a scene document interactively.
type Repl struct {
	Document string `arg:"" help:"Scene document (YAML) to start from." optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var cache string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cache = ktx.Model.Vars()[CacheIdentifier]
	}

	doc, err := loadDocument(ctx, r.Document)
	if err != nil {
		return err
	}

	// Evaluation errors are listed by :errors; logging them would garble
	// the terminal.
	sess, err := session.New(doc, nil, session.WithStrictShapes(strictFrom(ctx)))
	if err != nil {
		return err
	}

	return repl.Run(ctx, sess, cache, log.Default())
}
