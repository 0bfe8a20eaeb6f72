package engine

import (
	"testing"

	"github.com/ardnew/scenic/lang"
)

func TestValue_Index(t *testing.T) {
	rec := newRecorder()
	a, b := rec.entity("A", Args{}), rec.entity("B", Args{})

	multi := &Node{variable: "m", list: true, children: []Entity{a, b}}
	single := &Node{variable: "s", children: []Entity{a}}
	empty := &Node{variable: "e", list: true}

	tests := []struct {
		name string
		v    Value
		i    int
		want Value
	}{
		{"multi node", NodeValue(multi), 1, EntityValue(b)},
		{"multi node out of range", NodeValue(multi), 5, NodeValue(multi)},
		{"single node", NodeValue(single), 7, EntityValue(a)},
		{"empty node", NodeValue(empty), 0, NodeValue(empty)},
		{"sequence", Numbers(1, 2, 3), 2, Scalar(3)},
		{"sequence out of range", Numbers(1, 2), 2, Numbers(1, 2)},
		{"scalar", Scalar(4), 9, Scalar(4)},
		{"entity", EntityValue(a), 3, EntityValue(a)},
		{"undefined", Undefined(), 0, Undefined()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Index(tt.i)
			if got.Kind() != tt.want.Kind() || got.String() != tt.want.String() {
				t.Errorf("Index(%d) = %v, want %v", tt.i, got, tt.want)
			}

			if tt.want.Kind() == KindEntity && got.Entity() != tt.want.Entity() {
				t.Errorf("Index(%d) entity = %p, want %p",
					tt.i, got.Entity(), tt.want.Entity())
			}
		})
	}
}

func TestValue_Len(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
	}{
		{"scalar", Scalar(1), Unbounded},
		{"sequence", Numbers(1, 2, 3), 3},
		{"empty sequence", Sequence(), 0},
		{"single node", NodeValue(&Node{children: make([]Entity, 1)}), Unbounded},
		{"multi node", NodeValue(&Node{list: true, children: make([]Entity, 4)}), 4},
		{"undefined", Undefined(), Unbounded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValue_Defined(t *testing.T) {
	if Undefined().Defined() {
		t.Error("undefined value is defined")
	}

	if NodeValue(nil).Kind() != KindUndefined {
		t.Error("nil node is not undefined")
	}

	n := &Node{state: StateUndefined}
	if NodeValue(n).Defined() {
		t.Error("undefined node value is defined")
	}

	n.state = StateDefined
	if !NodeValue(n).Defined() {
		t.Error("defined node value is undefined")
	}

	if got := Numbers(1, 2).Floats(); len(got) != 2 || got[1] != 2 {
		t.Errorf("Floats() = %v", got)
	}
}

func TestObservation_Value(t *testing.T) {
	if v := (Observation{Kind: ObservedScalar, Scalar: 2}).Value(); v.String() != "2" {
		t.Errorf("scalar = %v", v)
	}

	if v := (Observation{Kind: ObservedList, List: []float64{1, 2.5}}).Value(); v.String() != "[1, 2.5]" {
		t.Errorf("list = %v", v)
	}

	if v := (Observation{}).Value(); v.Kind() != KindUndefined {
		t.Errorf("undefined = %v", v)
	}
}

func TestRegistry(t *testing.T) {
	reg := testRegistry(newRecorder())

	types, ok := reg.ArgTypes("Mesh")
	if !ok || len(types) != 2 || types[0] != lang.TypeGeometry {
		t.Errorf("ArgTypes(Mesh) = %v, %v", types, ok)
	}

	if _, ok := reg.ArgTypes("Cube"); ok {
		t.Error("ArgTypes(Cube) found")
	}

	names := reg.Names()
	if len(names) == 0 || names[0] != "Box" {
		t.Errorf("Names() = %v", names)
	}

	d, _ := reg.Lookup("Box")
	if got, want := d.Signature(), "Box(w number = 1, h number = 1, d number = 1) geometry"; got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}

	d, _ = reg.Lookup("Points")
	if got, want := d.Signature(), "Points(pts list[], size number = 1) object"; got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}

	if err := reg.Register(Descriptor{Name: "Box", New: d.New}); err == nil {
		t.Error("duplicate registration accepted")
	}

	if err := reg.Register(Descriptor{Name: "Empty"}); err == nil {
		t.Error("registration without constructor accepted")
	}
}
