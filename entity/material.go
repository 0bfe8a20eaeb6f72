package entity

import (
	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/scene"
)

// Material is a surface material.
type Material struct {
	base
	kind string
}

// Kind returns the material kind, such as "lambert" or "normal".
func (m *Material) Kind() string { return m.kind }

// Color returns the material color. Materials without a color parameter
// report white.
func (m *Material) Color() scene.Color { return m.color("color") }

func (m *Material) String() string {
	if _, ok := m.args["color"]; !ok {
		return m.kind + " material"
	}

	return m.kind + " material " + m.Color().Hex()
}

func materials() []engine.Descriptor {
	colored := func(name, kind, doc string) engine.Descriptor {
		return engine.Descriptor{
			Name: name,
			Type: lang.TypeMaterial,
			Doc:  doc,
			Params: []engine.ArgSpec{
				{Name: "color", Type: lang.TypeColor, Default: white},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				return &Material{base: newBase(a), kind: kind}, nil
			},
		}
	}

	plain := func(name, kind, doc string) engine.Descriptor {
		return engine.Descriptor{
			Name: name,
			Type: lang.TypeMaterial,
			Doc:  doc,
			New: func(a engine.Args) (engine.Entity, error) {
				return &Material{base: newBase(a), kind: kind}, nil
			},
		}
	}

	return []engine.Descriptor{
		colored("LambertMaterial", "lambert", "matte material, needs lights"),
		plain("NormalMaterial", "normal", "colors faces by their normals"),
		colored("BasicMaterial", "basic", "flat color regardless of lighting"),
		plain("DepthMaterial", "depth", "shades by distance from the camera"),
		colored("PhongMaterial", "phong", "shiny material, needs lights"),
		colored("ToonMaterial", "toon", "cel-shaded material"),
	}
}

// defaultMaterial is the material of a mesh built without one.
func defaultMaterial() engine.Value {
	return engine.EntityValue(&Material{base: newBase(nil), kind: "normal"})
}
