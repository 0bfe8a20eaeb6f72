package entity

import (
	"fmt"

	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/scene"
)

// Mesh is a geometry rendered with a material.
type Mesh struct{ object }

// Geometry returns the shape of m, or nil.
func (m *Mesh) Geometry() *Geometry {
	g, _ := m.args.Entity("geometry").(*Geometry)

	return g
}

// Material returns the material of m, or nil.
func (m *Mesh) Material() *Material {
	mat, _ := m.args.Entity("material").(*Material)

	return mat
}

// Position returns the position of m.
func (m *Mesh) Position() scene.Vec3 { return m.vec("position") }

func (m *Mesh) String() string {
	return fmt.Sprintf("mesh %v %v at %v", m.Geometry(), m.Material(), m.Position())
}

// Group places an object at an offset.
type Group struct{ object }

// Object returns the grouped object.
func (g *Group) Object() engine.Entity { return g.args.Entity("object") }

// Position returns the offset of the group.
func (g *Group) Position() scene.Vec3 { return g.vec("position") }

func (g *Group) String() string {
	return fmt.Sprintf("group at %v [%v]", g.Position(), g.Object())
}

// Polyline is a connected line through a list of points.
type Polyline struct{ object }

// Points returns the vertices of p. The flat coordinate list is read in
// triples; a trailing partial triple is dropped.
func (p *Polyline) Points() []scene.Vec3 {
	fs := p.args.Floats("points")

	pts := make([]scene.Vec3, 0, len(fs)/3)
	for i := 0; i+2 < len(fs); i += 3 {
		pts = append(pts, scene.Vec3{fs[i], fs[i+1], fs[i+2]})
	}

	return pts
}

// Color returns the line color.
func (p *Polyline) Color() scene.Color { return p.color("color") }

func (p *Polyline) String() string {
	return fmt.Sprintf("polyline %d points %v", len(p.Points()), p.Color())
}

// Helper is a grid drawn as a visual aid.
type Helper struct {
	object
	kind string
}

func (h *Helper) String() string {
	if h.kind == "polar grid" {
		return fmt.Sprintf("polar grid radius %g, %g radials, %g circles",
			h.float("radius"), h.float("radials"), h.float("circles"))
	}

	return fmt.Sprintf("grid size %g, %g divisions %v/%v",
		h.float("size"), h.float("divisions"),
		h.color("colorCenterLine"), h.color("colorGrid"))
}

// Light illuminates the scene.
type Light struct {
	object
	kind string
}

// Intensity returns the light intensity.
func (l *Light) Intensity() float64 { return l.float("intensity") }

// Color returns the light color.
func (l *Light) Color() scene.Color { return l.color("color") }

// Position returns the light position.
func (l *Light) Position() scene.Vec3 { return l.vec("position") }

func (l *Light) String() string {
	return fmt.Sprintf("%s light %g %v at %v",
		l.kind, l.Intensity(), l.Color(), l.Position())
}

func (o *object) bind(a engine.Args, self engine.Entity) engine.Entity {
	o.base = newBase(a)
	o.self = self

	return self
}

func objects() []engine.Descriptor {
	light := func(name, kind string) engine.Descriptor {
		return engine.Descriptor{
			Name: name,
			Type: lang.TypeObject,
			Doc:  kind + " light",
			Params: []engine.ArgSpec{
				{Name: "intensity", Type: lang.TypeNumber, Default: number(1)},
				{Name: "color", Type: lang.TypeColor, Default: white},
				{Name: "position", Type: lang.TypeVector3, Default: zero},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				l := &Light{kind: kind}

				return l.bind(a, l), nil
			},
		}
	}

	return []engine.Descriptor{
		{
			Name: "Mesh",
			Type: lang.TypeObject,
			Doc:  "geometry with a material",
			Params: []engine.ArgSpec{
				{Name: "geometry", Type: lang.TypeGeometry},
				{Name: "material", Type: lang.TypeMaterial, Default: defaultMaterial},
				{Name: "position", Type: lang.TypeVector3, Default: zero},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				e := &Mesh{}

				return e.bind(a, e), nil
			},
		},
		{
			Name: "Position",
			Type: lang.TypeObject,
			Doc:  "object moved to a position",
			Params: []engine.ArgSpec{
				{Name: "object", Type: lang.TypeObject},
				{Name: "position", Type: lang.TypeVector3},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				e := &Group{}

				return e.bind(a, e), nil
			},
		},
		{
			Name: "Polyline",
			Type: lang.TypeObject,
			Doc:  "line through a flat list of x, y, z coordinates",
			Params: []engine.ArgSpec{
				{Name: "points", Type: lang.TypeList, TakesList: true},
				{Name: "color", Type: lang.TypeColor, Default: white},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				e := &Polyline{}

				return e.bind(a, e), nil
			},
		},
		{
			Name: "GridHelper",
			Type: lang.TypeObject,
			Doc:  "square grid",
			Params: []engine.ArgSpec{
				{Name: "size", Type: lang.TypeNumber},
				{Name: "divisions", Type: lang.TypeNumber, Default: number(10)},
				{Name: "colorCenterLine", Type: lang.TypeColor, Default: white},
				{Name: "colorGrid", Type: lang.TypeColor, Default: gray},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				h := &Helper{kind: "grid"}

				return h.bind(a, h), nil
			},
		},
		{
			Name: "PolarGridHelper",
			Type: lang.TypeObject,
			Doc:  "polar grid",
			Params: []engine.ArgSpec{
				{Name: "radius", Type: lang.TypeNumber},
				{Name: "radials", Type: lang.TypeNumber, Default: number(16)},
				{Name: "circles", Type: lang.TypeNumber, Default: number(6)},
				{Name: "divisions", Type: lang.TypeNumber, Default: number(64)},
				{Name: "color1", Type: lang.TypeColor, Default: white},
				{Name: "color2", Type: lang.TypeColor, Default: white},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				h := &Helper{kind: "polar grid"}

				return h.bind(a, h), nil
			},
		},
		light("PointLight", "point"),
		light("AmbientLight", "ambient"),
	}
}
