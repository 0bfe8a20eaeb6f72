package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/scenic/scene"
)

// Variable summarizes one bound variable.
type Variable struct {
	Name     string `json:"name"               yaml:"name"`
	Function string `json:"function"           yaml:"function"`
	State    string `json:"state"              yaml:"state"`
	Entities int    `json:"entities"           yaml:"entities"`
	Expr     string `json:"expr,omitempty"     yaml:"expr,omitempty"`
}

// Report is a serializable summary of a session.
type Report struct {
	Version   string            `json:"version,omitempty" yaml:"version,omitempty"`
	Variables []Variable        `json:"variables"         yaml:"variables"`
	Errors    map[string]string `json:"errors,omitempty"  yaml:"errors,omitempty"`
	Scene     scene.Snapshot    `json:"scene"             yaml:"scene"`
}

// Report returns the current state of s.
func (s *Session) Report() Report {
	r := Report{
		Version: s.version,
		Errors:  s.Errors(),
		Scene:   s.graph.Snapshot(),
	}

	for _, name := range s.ev.Variables() {
		n, _ := s.ev.Lookup(name)
		r.Variables = append(r.Variables, Variable{
			Name:     name,
			Function: n.Descriptor().Name,
			State:    n.State().String(),
			Entities: len(n.Children()),
			Expr:     n.ExprID(),
		})
	}

	if len(r.Errors) == 0 {
		r.Errors = nil
	}

	return r
}

// Formats lists the report encodings accepted by [Report.Encode].
var Formats = []string{"text", "json", "yaml"}

// Encode writes r to w in the given format.
func (r Report) Encode(ctx context.Context, w io.Writer, format string) error {
	switch format {
	case "text", "":
		_, err := io.WriteString(w, r.Text())

		return err

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)

	case "yaml":
		data, err := yaml.MarshalContext(ctx, r, yaml.Indent(2))
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	default:
		return ErrFormat.With(slog.String("format", format))
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Text renders r for a terminal.
func (r Report) Text() string {
	var b strings.Builder

	title := "scene"
	if r.Version != "" {
		title += " " + r.Version
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	if len(r.Variables) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return cellStyle }).
			Headers("variable", "function", "state", "entities", "expr")

		for _, v := range r.Variables {
			t.Row(v.Name, v.Function, v.State, strconv.Itoa(v.Entities), v.Expr)
		}

		b.WriteString(t.String())
		b.WriteByte('\n')
	}

	ids := make([]string, 0, len(r.Errors))
	for id := range r.Errors {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	for _, id := range ids {
		b.WriteString(errStyle.Render(fmt.Sprintf("error [%s]: %s", id, r.Errors[id])))
		b.WriteByte('\n')
	}

	for _, o := range r.Scene.Objects {
		b.WriteString("  ")
		b.WriteString(o)
		b.WriteByte('\n')
	}

	b.WriteString(dimStyle.Render(r.Scene.Camera.String()))
	b.WriteByte('\n')

	if r.Scene.Fog != nil {
		b.WriteString(dimStyle.Render(r.Scene.Fog.String()))
		b.WriteByte('\n')
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d redraws", r.Scene.Renders)))
	b.WriteByte('\n')

	return b.String()
}
