package host

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/scenic/engine"
)

var _ engine.Watcher = (*Document)(nil)

func TestDocument_Eval(t *testing.T) {
	d := New()

	for name, src := range map[string]string{"n": "3", "m": "n * 2", "l": "[1, n, m]"} {
		if err := d.SetVariable(name, src); err != nil {
			t.Fatalf("SetVariable(%s): %v", name, err)
		}
	}

	tests := []struct {
		source string
		want   engine.Observation
	}{
		{"m + 1", engine.Observation{Kind: engine.ObservedScalar, Scalar: 7}},
		{"l", engine.Observation{Kind: engine.ObservedList, List: []float64{1, 3, 6}}},
		{"seq(0, 1, 0.5)", engine.Observation{Kind: engine.ObservedList, List: []float64{0, 0.5, 1}}},
		{"map(l, # * 2)", engine.Observation{Kind: engine.ObservedList, List: []float64{2, 6, 12}}},
		{"'text'", engine.Observation{}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := d.Eval(tt.source)
			if err != nil {
				t.Fatal(err)
			}

			if got.Kind != tt.want.Kind || got.Scalar != tt.want.Scalar ||
				!slices.Equal(got.List, tt.want.List) {
				t.Errorf("Eval(%q) = %+v, want %+v", tt.source, got, tt.want)
			}
		})
	}
}

func TestDocument_Errors(t *testing.T) {
	d := New()

	if err := d.SetVariable("1x", "1"); !errors.Is(err, ErrVariableName) {
		t.Errorf("SetVariable(1x) = %v, want %v", err, ErrVariableName)
	}

	if err := d.SetVariable("sin", "1"); !errors.Is(err, ErrVariableName) {
		t.Errorf("SetVariable(sin) = %v, want %v", err, ErrVariableName)
	}

	if err := d.SetVariable("a", "1 +"); !errors.Is(err, ErrCompile) {
		t.Errorf("SetVariable(a) = %v, want %v", err, ErrCompile)
	}

	if _, ok := d.Variable("a"); ok {
		t.Error("variable kept after compile error")
	}

	if _, err := d.Eval("nope + 1"); !errors.Is(err, ErrEvaluate) {
		t.Errorf("Eval = %v, want %v", err, ErrEvaluate)
	}
}

func TestDocument_Observe(t *testing.T) {
	d := New()
	_ = d.SetVariable("n", "2")

	var got []engine.Observation

	cancel := d.Observe("n * 10", engine.ObservedScalar, func(o engine.Observation) {
		got = append(got, o)
	})

	if len(got) != 1 || got[0].Scalar != 20 {
		t.Fatalf("initial = %+v, want 20", got)
	}

	_ = d.SetVariable("n", "2")
	_ = d.SetVariable("other", "1")

	if len(got) != 1 {
		t.Errorf("notified %d times without a change", len(got)-1)
	}

	_ = d.SetVariable("n", "[1, 2]")

	if len(got) != 2 || got[1].Kind != engine.ObservedUndefined {
		t.Errorf("after list = %+v, want undefined", got)
	}

	_ = d.SetVariable("n", "5")

	if len(got) != 3 || got[2].Scalar != 50 {
		t.Errorf("after 5 = %+v, want 50", got)
	}

	cancel()
	d.DeleteVariable("n")

	if len(got) != 3 {
		t.Errorf("notified after cancel: %+v", got)
	}
}

func TestDocument_ObserveCompileError(t *testing.T) {
	tests := []struct {
		source  string
		wantErr bool
	}{
		{"n * 2", false},
		{"sin(n) + n", false},
		{"n *", true},
		{"(n", true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			d := New()
			_ = d.SetVariable("n", "3")

			var got engine.Observation

			d.Observe(tt.source, engine.ObservedScalar, func(o engine.Observation) { got = o })

			if tt.wantErr {
				if !errors.Is(got.Err, ErrCompile) || got.Kind != engine.ObservedUndefined {
					t.Errorf("Observe(%q) = %+v, want undefined with %v", tt.source, got, ErrCompile)
				}

				return
			}

			if got.Err != nil || got.Kind != engine.ObservedScalar {
				t.Errorf("Observe(%q) = %+v, want a scalar", tt.source, got)
			}
		})
	}
}

func TestDocument_FixedPoint(t *testing.T) {
	d := New()

	_ = d.SetVariable("c", "b + 1")
	_ = d.SetVariable("b", "a + 1")
	_ = d.SetVariable("a", "1")

	if got := d.Value("c"); got.Kind != engine.ObservedScalar || got.Scalar != 3 {
		t.Errorf("c = %+v, want 3", got)
	}

	_ = d.SetVariable("x", "y + 1")
	_ = d.SetVariable("y", "x + 1")

	if got := d.Value("x"); got.Kind != engine.ObservedUndefined {
		t.Errorf("x = %+v, want undefined", got)
	}
}

func TestDocument_Expressions(t *testing.T) {
	d := New()
	calls := 0

	d.OnChange(func() { calls++ })

	d.SetExpression("header", "version 0.1.0")

	if id := d.AppendExpression("@3 Box(1,1,1)"); id != "1" {
		t.Errorf("AppendExpression = %q, want 1", id)
	}

	if id := d.AppendExpression("@3 Box(2,2,2)"); id != "2" {
		t.Errorf("AppendExpression = %q, want 2", id)
	}

	d.SetExpression("1", "@3 Box(1,1,1)")
	d.SetExpression("1", "@3 Sphere(1)")

	if !d.RemoveExpression("2") || d.RemoveExpression("2") {
		t.Error("RemoveExpression did not remove exactly once")
	}

	if calls != 5 {
		t.Errorf("change listener called %d times, want 5", calls)
	}

	var ids []string
	for _, x := range d.Expressions() {
		ids = append(ids, x.ID)
	}

	if !slices.Equal(ids, []string{"header", "1"}) {
		t.Errorf("ids = %v", ids)
	}
}

const sample = `variables:
  n: "3"
  t: "0.5"
expressions:
  - id: header
    text: version 0.1.0
  - id: "1"
    text: "@3 Show(Mesh(Box(n, 1, 1)))"
`

func TestLoad(t *testing.T) {
	ctx := context.Background()

	d, err := Load(ctx, strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	if got := d.Variables(); !slices.Equal(got, []string{"n", "t"}) {
		t.Errorf("variables = %v", got)
	}

	if got := d.Value("t"); got.Scalar != 0.5 {
		t.Errorf("t = %+v", got)
	}

	x, ok := d.Expression("1")
	if !ok || x.Text != "@3 Show(Mesh(Box(n, 1, 1)))" {
		t.Errorf("expression 1 = %+v", x)
	}

	var buf bytes.Buffer
	if err := d.Save(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	again, err := Load(ctx, &buf)
	if err != nil {
		t.Fatal(err)
	}

	if again.Fingerprint() != d.Fingerprint() {
		t.Errorf("fingerprint changed across save and load:\n%s", buf.String())
	}

	again.SetExpression("1", "@3 Box(1,1,1)")

	if again.Fingerprint() == d.Fingerprint() {
		t.Error("fingerprint unchanged after edit")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"syntax", "variables: [", ErrDecode},
		{"duplicate id", "expressions:\n  - id: a\n  - id: a\n", ErrDuplicateID},
		{"variable name", "variables:\n  \"2x\": \"1\"\n", ErrVariableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Load = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSeq(t *testing.T) {
	tests := []struct {
		start, stop, step float64
		want              []float64
	}{
		{0, 3, 1, []float64{0, 1, 2, 3}},
		{3, 0, -1.5, []float64{3, 1.5, 0}},
		{0, 1, 0, nil},
		{0, 1, -1, nil},
	}

	for _, tt := range tests {
		if got := seq(tt.start, tt.stop, tt.step); !slices.Equal(got, tt.want) {
			t.Errorf("seq(%v, %v, %v) = %v, want %v",
				tt.start, tt.stop, tt.step, got, tt.want)
		}
	}
}
