package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/pkg"
)

const source = `@3 m=Mesh(Box( 1,2,3 ))
Box(4, 5, 6)

@3 Show(m)
`

func TestNative(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.txt", source)

	tests := []struct {
		name string
		all  bool
		want string
	}{
		{"marked", false, "m = Mesh(Box(1, 2, 3))\nShow(m)\n"},
		{"all", true, "m = Mesh(Box(1, 2, 3))\nBox(4, 5, 6)\nShow(m)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := testContext(t)

			f := Native{Input: Input{All: tt.all, Source: path}}
			if err := f.Run(ctx); err != nil {
				t.Fatal(err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNative_Document(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.yaml", `expressions:
  - id: header
    text: "@3 not parsed"
  - id: "1"
    text: "@3 Show(Mesh(Sphere(2)))"
`)
	ctx, buf := testContext(t)

	f := Native{Input: Input{Document: true, Source: path}}
	if err := f.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), "Show(Mesh(Sphere(2)))\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNative_Error(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.txt", "@3 Show(m)\n@3 Nope(1, 2)\n")
	ctx, _ := testContext(t)

	err := (&Native{Input: Input{Source: path}}).Run(ctx)
	if !errors.Is(err, ErrSource) {
		t.Fatalf("error = %v, want ErrSource", err)
	}

	if !errors.Is(err, lang.ErrUnknownFunction) {
		t.Errorf("error = %v, want ErrUnknownFunction cause", err)
	}

	var pe *pkg.Error
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not a *pkg.Error", err)
	}

	if line, ok := pe.Attr("line"); !ok || line.Int64() != 2 {
		t.Errorf("line attr = %v, %v, want 2", line, ok)
	}
}

func TestTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.txt", "@3 s = Show(Mesh(g = Box(1, 2, 3)))\n")
	ctx, buf := testContext(t)

	if err := (&Tree{Indent: 2, Input: Input{Source: path}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	want := "s = Show(...)\n  __expr1 = Mesh(g)\n    g = Box(1, 2, 3)\n"
	if got := buf.String(); !strings.HasPrefix(got, "s = Show(") || !strings.Contains(got, "    g = Box(1, 2, 3)") {
		t.Errorf("output = %q, want like %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.txt", source)
	ctx, buf := testContext(t)

	if err := (&JSON{Indent: 2, Input: Input{Source: path}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	var recs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}

	// box, m, the reference to m, and the generated show root.
	if len(recs) != 4 {
		t.Errorf("records = %d, want 4", len(recs))
	}
}

func TestYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.txt", source)
	ctx, buf := testContext(t)

	if err := (&YAML{Indent: 2, Input: Input{All: true, Source: path}}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	var recs []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}

	if len(recs) != 5 {
		t.Errorf("records = %d, want 5", len(recs))
	}
}
