package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/scenic/host"
	"github.com/ardnew/scenic/log"
	"github.com/ardnew/scenic/pkg"
)

func load(t *testing.T, src string) *host.Document {
	t.Helper()

	d, err := host.Load(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	return d
}

func header() string { return "    text: version " + pkg.Version() + "\n" }

func document() string {
	return `variables:
  n: "[1, 2, 3]"
expressions:
  - id: header
` + header() + `  - id: "1"
    text: "@3 m = Mesh(Sphere(n))"
  - id: "2"
    text: "@3 Show(m)"
  - id: note
    text: "a plain expression without the marker"
`
}

func TestSession_Sync(t *testing.T) {
	s, err := New(load(t, document()), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(s.Graph().Objects()); got != 3 {
		t.Fatalf("objects = %d, want 3", got)
	}

	if s.Version() != pkg.Version() {
		t.Errorf("version = %q, want %q", s.Version(), pkg.Version())
	}

	if errs := s.Errors(); len(errs) != 0 {
		t.Errorf("errors = %v", errs)
	}

	if _, ok := s.Evaluator().Context().Source("note"); ok {
		t.Error("unmarked expression evaluated")
	}

	if err := s.Document().SetVariable("n", "[4, 5]"); err != nil {
		t.Fatal(err)
	}

	if got := len(s.Graph().Objects()); got != 2 {
		t.Errorf("objects after variable edit = %d, want 2", got)
	}

	batches := s.Batches()

	s.Document().RemoveExpression("2")

	if s.Batches() != batches+1 {
		t.Errorf("batches = %d, want %d", s.Batches(), batches+1)
	}

	if got := len(s.Graph().Objects()); got != 0 {
		t.Errorf("objects after removing Show = %d, want 0", got)
	}
}

func TestSession_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		vars string
		text string
		want int
	}{
		{"scalar", `"3"`, "@3 Show(Mesh(Sphere(n * 2)))", 1},
		{"list", `"[1, 2]"`, "@3 Show(Mesh(Sphere(map(n, # * 2))))", 2},
		{"function", `"3"`, "@3 Show(Mesh(Sphere(sqrt(n) + 1)))", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "variables:\n  n: " + tt.vars + "\nexpressions:\n  - id: header\n" +
				header() + "  - id: \"1\"\n    text: \"" + tt.text + "\"\n"

			s, err := New(load(t, src), nil)
			if err != nil {
				t.Fatal(err)
			}

			if errs := s.Errors(); len(errs) != 0 {
				t.Errorf("errors = %v", errs)
			}

			if got := len(s.Graph().Objects()); got != tt.want {
				t.Errorf("objects = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSession_AppendExpression(t *testing.T) {
	s, err := New(host.New(), nil)
	if err != nil {
		t.Fatal(err)
	}

	id := s.Document().AppendExpression("@3 Show(Mesh(Box(1,1,1)))")

	if got := len(s.Graph().Objects()); got != 1 {
		t.Errorf("objects = %d, want 1", got)
	}

	s.Document().SetExpression(id, "@3 Show(Mesh(Box(1,")

	if _, ok := s.Errors()[id]; !ok {
		t.Errorf("no error for expression %s", id)
	}

	if got := len(s.Graph().Objects()); got != 0 {
		t.Errorf("objects = %d, want 0", got)
	}
}

func TestSession_Header(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		wantLog string
	}{
		{"current", "version " + pkg.Version(), false, ""},
		{"dev", "version " + pkg.Version() + "-dev", false, ""},
		{"other major", "version 99.0.0", false, "differs"},
		{"malformed", "version one", true, "invalid header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			d := host.New()
			d.SetExpression(HeaderID, tt.text)

			s, err := New(d, nil, WithLogger(log.Make(&buf, log.WithTimeLayout("none"))))
			if err != nil {
				t.Fatal(err)
			}

			_, gotErr := s.Errors()[HeaderID]
			if gotErr != tt.wantErr {
				t.Errorf("header error = %v, want %v", gotErr, tt.wantErr)
			}

			if tt.wantLog != "" && !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log missing %q:\n%s", tt.wantLog, buf.String())
			}
		})
	}

	if !errors.Is(ErrHeader.With(), ErrHeader) {
		t.Error("ErrHeader does not match itself")
	}
}

func TestSession_Reload(t *testing.T) {
	s, err := New(load(t, document()), nil)
	if err != nil {
		t.Fatal(err)
	}

	batches := s.Batches()

	if s.Reload(load(t, document())) {
		t.Error("reloaded an identical document")
	}

	if s.Batches() != batches {
		t.Errorf("batches = %d, want %d", s.Batches(), batches)
	}

	old := s.Document()
	next := load(t, strings.Replace(document(), "[1, 2, 3]", "[1]", 1))

	if !s.Reload(next) {
		t.Fatal("changed document not reloaded")
	}

	if got := len(s.Graph().Objects()); got != 1 {
		t.Errorf("objects = %d, want 1", got)
	}

	batches = s.Batches()
	old.AppendExpression("@3 Show(Mesh(Box(1,1,1)))")

	if s.Batches() != batches {
		t.Error("edit of the replaced document ran a batch")
	}
}

func TestReport_Encode(t *testing.T) {
	s, err := New(load(t, document()), nil)
	if err != nil {
		t.Fatal(err)
	}

	r := s.Report()

	var m *Variable

	for i := range r.Variables {
		if r.Variables[i].Name == "m" {
			m = &r.Variables[i]
		}
	}

	if m == nil || m.Function != "Mesh" || m.Entities != 3 || m.State != "defined" || m.Expr != "1" {
		t.Errorf("variable m = %+v", m)
	}

	ctx := context.Background()

	var buf bytes.Buffer
	if err := r.Encode(ctx, &buf, "json"); err != nil {
		t.Fatal(err)
	}

	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}

	if len(back.Scene.Objects) != 3 {
		t.Errorf("json objects = %d, want 3", len(back.Scene.Objects))
	}

	buf.Reset()

	if err := r.Encode(ctx, &buf, "yaml"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "function: Mesh") {
		t.Errorf("yaml missing variable:\n%s", buf.String())
	}

	buf.Reset()

	if err := r.Encode(ctx, &buf, "text"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "Mesh") || !strings.Contains(buf.String(), "redraws") {
		t.Errorf("text report:\n%s", buf.String())
	}

	if err := r.Encode(ctx, &buf, "xml"); !errors.Is(err, ErrFormat) {
		t.Errorf("Encode(xml) = %v, want %v", err, ErrFormat)
	}
}
