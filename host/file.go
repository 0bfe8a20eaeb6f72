package host

import (
	"context"
	"io"
	"log/slog"
	"maps"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

type file struct {
	Variables   map[string]string `yaml:"variables,omitempty"`
	Expressions []Expression      `yaml:"expressions,omitempty"`
}

// Load reads a YAML document from r.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	var f file
	if err := yaml.UnmarshalContext(ctx, data, &f); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	d := New(opts...)

	seen := make(map[string]bool, len(f.Expressions))
	for _, x := range f.Expressions {
		if seen[x.ID] {
			return nil, ErrDuplicateID.With(slog.String("id", x.ID))
		}

		seen[x.ID] = true
	}

	for name := range f.Variables {
		if _, reserved := functions[name]; reserved || !isIdentifier(name) {
			return nil, ErrVariableName.With(slog.String("name", name))
		}
	}

	d.exprs = f.Expressions
	maps.Copy(d.vars, f.Variables)
	d.recompute()

	d.logger.DebugContext(ctx, "loaded document",
		slog.Int("bytes", len(data)),
		slog.Int("variables", len(d.vars)),
		slog.Int("expressions", len(d.exprs)),
	)

	return d, nil
}

// Save writes d to w as YAML.
func (d *Document) Save(ctx context.Context, w io.Writer) error {
	f := file{
		Variables:   maps.Clone(d.vars),
		Expressions: d.Expressions(),
	}

	data, err := yaml.MarshalContext(ctx, f, yaml.Indent(2))
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	if _, err := w.Write(data); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}
