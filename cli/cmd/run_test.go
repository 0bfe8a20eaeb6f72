package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/scenic/session"
)

const sphereDoc = `variables:
  n: "3"
expressions:
  - id: "1"
    text: "@3 Show(Mesh(Sphere(n)))"
`

func TestRun(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.yaml", sphereDoc)

	tests := []struct {
		name    string
		run     Run
		objects int
	}{
		{"document", Run{Document: path, Format: "json"}, 1},
		{"set", Run{Document: path, Set: []string{"n = [1, 2]"}, Format: "json"}, 2},
		{
			"expr",
			Run{
				Document: path,
				Set:      []string{"n=[1, 2]"},
				Expr:     []string{"@3 Show(Mesh(Box(1, 1, 1)))"},
				Format:   "json",
			},
			3,
		},
		{"empty", Run{Expr: []string{"@3 Show(Mesh(Box(1, 1, 1)))"}, Format: "json"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := testContext(t)

			if err := tt.run.Run(ctx); err != nil {
				t.Fatalf("Run: %v", err)
			}

			var r session.Report
			if err := json.Unmarshal(buf.Bytes(), &r); err != nil {
				t.Fatalf("decode report: %v\n%s", err, buf.String())
			}

			if len(r.Scene.Objects) != tt.objects {
				t.Errorf("objects = %d, want %d", len(r.Scene.Objects), tt.objects)
			}
		})
	}
}

func TestRun_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.yaml", sphereDoc)
	ctx, buf := testContext(t)

	if err := (&Run{Document: path, Format: "text"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "Show") {
		t.Errorf("text report missing Show:\n%s", buf.String())
	}
}

func TestRun_Errors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.yaml", sphereDoc)

	tests := []struct {
		name string
		run  Run
		err  error
	}{
		{"missing document", Run{Document: "no-such-scene.yaml"}, ErrNoDocument},
		{"bad assignment", Run{Document: path, Set: []string{"n"}}, ErrInvalidAssignment},
		{"empty source", Run{Document: path, Set: []string{"n="}}, ErrInvalidAssignment},
		{"bad format", Run{Document: path, Format: "xml"}, ErrMarshal},
		{"session format", Run{Document: path, Format: "xml"}, session.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)

			if err := tt.run.Run(ctx); !errors.Is(err, tt.err) {
				t.Errorf("Run error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in, name, src string
		ok            bool
	}{
		{"n=3", "n", "3", true},
		{" t = sin(pi / 4) ", "t", "sin(pi / 4)", true},
		{"xs=[1, 2] ", "xs", "[1, 2]", true},
		{"a==b", "a", "=b", true},
		{"n", "", "", false},
		{"=3", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, src, err := parseAssignment(tt.in)
			if (err == nil) != tt.ok || name != tt.name || src != tt.src {
				t.Errorf("parseAssignment(%q) = (%q, %q, %v)", tt.in, name, src, err)
			}
		})
	}
}
