package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes defs as one line of canonical source. Definitions with
// generated names are inlined into the argument that refers to them, so the
// output parses back to the same definition structure.
func Format(w io.Writer, defs []Definition) error {
	if len(defs) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(w, Inline(defs))

	return err
}

// Inline renders defs as canonical source text. The last definition is the
// root; the others are rendered where they are referenced.
func Inline(defs []Definition) string {
	if len(defs) == 0 {
		return ""
	}

	index := make(map[string]Definition, len(defs))
	for _, d := range defs[:len(defs)-1] {
		if !d.Ref {
			index[d.Variable] = d
		}
	}

	var b strings.Builder

	inline(&b, defs[len(defs)-1], index)

	return b.String()
}

func inline(b *strings.Builder, d Definition, index map[string]Definition) {
	if d.Ref {
		b.WriteString(d.Variable)

		return
	}

	if !d.Generated {
		b.WriteString(d.Variable)
		b.WriteString(" = ")
	}

	b.WriteString(d.Func)
	b.WriteByte('(')

	for i, arg := range d.Args {
		if i > 0 {
			b.WriteString(", ")
		}

		if sub, ok := index[arg]; ok {
			delete(index, arg)
			inline(b, sub, index)

			continue
		}

		b.WriteString(arg)
	}

	b.WriteByte(')')
}

// FormatTree writes defs as an indented tree rooted at the last definition,
// one application per line.
func FormatTree(w io.Writer, defs []Definition, indent int) error {
	if len(defs) == 0 {
		return nil
	}

	index := make(map[string]Definition, len(defs))
	for _, d := range defs {
		index[d.Variable] = d
	}

	var walk func(d Definition, depth int) error

	walk = func(d Definition, depth int) error {
		pad := strings.Repeat(" ", depth*max(indent, 1))

		if d.Ref {
			_, err := fmt.Fprintf(w, "%s%s (ref)\n", pad, d.Variable)

			return err
		}

		_, err := fmt.Fprintf(w, "%s%s = %s(%s)\n",
			pad, d.Variable, d.Func, strings.Join(d.Args, ", "))
		if err != nil {
			return err
		}

		for _, arg := range d.Args {
			sub, ok := index[arg]
			if !ok || sub.Variable == d.Variable {
				continue
			}

			delete(index, arg)

			if err := walk(sub, depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	root := defs[len(defs)-1]
	delete(index, root.Variable)

	return walk(root, 0)
}

// record is the serialized form of a [Definition].
type record struct {
	Variable  string   `json:"variable"            yaml:"variable"`
	Func      *string  `json:"func"                yaml:"func"`
	Args      []string `json:"args"                yaml:"args"`
	Generated bool     `json:"generated,omitempty" yaml:"generated,omitempty"`
	Position  Position `json:"position"            yaml:"position"`
}

func records(defs []Definition) []record {
	out := make([]record, 0, len(defs))

	for _, d := range defs {
		r := record{
			Variable:  d.Variable,
			Generated: d.Generated,
			Position:  d.Pos,
		}

		if !d.Ref {
			fn := d.Func
			r.Func = &fn
			r.Args = append(make([]string, 0, len(d.Args)), d.Args...)
		}

		out = append(out, r)
	}

	return out
}

// FormatJSON writes defs as a JSON array. Bare references have a null func
// and args. An indent of zero writes compact JSON.
func FormatJSON(w io.Writer, defs []Definition, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(records(defs), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(records(defs))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes defs as a YAML sequence. An indent of zero writes flow
// style.
func FormatYAML(ctx context.Context, w io.Writer, defs []Definition, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, records(defs), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
