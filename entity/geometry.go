package entity

import (
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/lang"
)

// Geometry is a parametric shape.
type Geometry struct {
	base
	kind   string
	params []string
}

// Kind returns the shape name, such as "box".
func (g *Geometry) Kind() string { return g.kind }

// Params returns the current parameter values in declaration order.
func (g *Geometry) Params() []float64 {
	ps := make([]float64, len(g.params))
	for i, name := range g.params {
		ps[i] = g.float(name)
	}

	return ps
}

// Param returns the current value of parameter name.
func (g *Geometry) Param(name string) float64 { return g.float(name) }

func (g *Geometry) String() string {
	part := make([]string, len(g.params))
	for i, f := range g.Params() {
		part[i] = strconv.FormatFloat(f, 'g', 6, 64)
	}

	return g.kind + "(" + strings.Join(part, ", ") + ")"
}

// param declares a number parameter. A non-nil def makes it optional.
type param struct {
	name string
	def  *float64
}

func req(name string) param { return param{name: name} }

func opt(name string, def float64) param { return param{name: name, def: &def} }

func geometry(name, kind, doc string, ps ...param) engine.Descriptor {
	specs := make([]engine.ArgSpec, len(ps))
	names := make([]string, len(ps))

	for i, p := range ps {
		specs[i] = engine.ArgSpec{Name: p.name, Type: lang.TypeNumber}
		if p.def != nil {
			specs[i].Default = number(*p.def)
		}

		names[i] = p.name
	}

	return engine.Descriptor{
		Name:   name,
		Type:   lang.TypeGeometry,
		Doc:    doc,
		Params: specs,
		New: func(a engine.Args) (engine.Entity, error) {
			return &Geometry{base: newBase(a), kind: kind, params: names}, nil
		},
	}
}

func geometries() []engine.Descriptor {
	polyhedron := func(name, kind string) engine.Descriptor {
		return geometry(name, kind, kind+" with optional subdivision",
			req("radius"), opt("detail", 0))
	}

	return []engine.Descriptor{
		geometry("Box", "box", "rectangular cuboid",
			req("width"), req("height"), req("depth")),
		geometry("Sphere", "sphere", "sphere",
			req("radius"), opt("widthSegments", 16), opt("heightSegments", 12)),
		geometry("Torus", "torus", "ring with a circular cross section",
			req("radius"), req("tube"),
			opt("radialSegments", 8), opt("tubularSegments", 32),
			opt("arc", 2*math.Pi)),
		geometry("TorusKnot", "torusKnot", "torus knot winding p and q times",
			req("radius"), req("tube"),
			opt("tubularSegments", 64), opt("radialSegments", 8),
			opt("p", 2), opt("q", 3)),
		geometry("Cone", "cone", "cone",
			req("radius"), req("height"),
			opt("radialSegments", 16), opt("heightSegments", 1)),
		geometry("Frustum", "frustum", "cone with its tip cut off",
			req("radiusTop"), req("radiusBottom"), req("height"),
			opt("radialSegments", 16), opt("heightSegments", 1)),
		geometry("Cylinder", "cylinder", "cylinder",
			req("radius"), req("height"),
			opt("radialSegments", 16), opt("heightSegments", 1)),
		polyhedron("Icosahedron", "icosahedron"),
		polyhedron("Dodecahedron", "dodecahedron"),
		polyhedron("Octahedron", "octahedron"),
		polyhedron("Tetrahedron", "tetrahedron"),
	}
}
