package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/scenic/entity"
)

var (
	signatureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	docStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Funcs lists the registered entity functions.
type Funcs struct {
	Query string `arg:"" help:"Fuzzy filter applied to function names." optional:""`
	Docs  bool   `help:"Print each function's description."      negatable:"" default:"true"`
}

// Run executes the funcs command.
func (f *Funcs) Run(ctx context.Context) error {
	reg := entity.NewRegistry()
	names := reg.Names()

	if f.Query != "" {
		matches := fuzzy.Find(f.Query, names)

		names = make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Str
		}
	}

	w := outputFrom(ctx)

	for _, name := range names {
		d, _ := reg.Lookup(name)

		if _, err := fmt.Fprintln(w, signatureStyle.Render(d.Signature())); err != nil {
			return err
		}

		if f.Docs && d.Doc != "" {
			if _, err := fmt.Fprintln(w, "  "+docStyle.Render(d.Doc)); err != nil {
				return err
			}
		}
	}

	return nil
}
