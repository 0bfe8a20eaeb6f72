package entity

import (
	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/scene"
)

// Vector3 is a point built by the unnamed function: (x, y, z).
type Vector3 struct{ base }

// Vec returns the current coordinates.
func (v *Vector3) Vec() scene.Vec3 {
	return scene.Vec3{v.float("x"), v.float("y"), v.float("z")}
}

func (v *Vector3) String() string { return v.Vec().String() }

// RGB is a color built from components in [0, 255].
type RGB struct{ base }

// Color returns the current color.
func (c *RGB) Color() scene.Color {
	return scene.Color{
		R: clampComponent(c.float("r")),
		G: clampComponent(c.float("g")),
		B: clampComponent(c.float("b")),
	}
}

func (c *RGB) String() string { return c.Color().Hex() }

// clampComponent maps a component in [0, 255] to [0, 1]. Negative input
// maps to 0 and input above 255 to 1.
func clampComponent(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 1
	default:
		return x / 255
	}
}

func numbers(names ...string) []engine.ArgSpec {
	specs := make([]engine.ArgSpec, len(names))
	for i, name := range names {
		specs[i] = engine.ArgSpec{Name: name, Type: lang.TypeNumber}
	}

	return specs
}

func values() []engine.Descriptor {
	return []engine.Descriptor{
		{
			Name:   "",
			Type:   lang.TypeVector3,
			Doc:    "point in space",
			Params: numbers("x", "y", "z"),
			New: func(a engine.Args) (engine.Entity, error) {
				return &Vector3{newBase(a)}, nil
			},
		},
		{
			Name:   "RGB",
			Type:   lang.TypeColor,
			Doc:    "color from 0-255 components",
			Params: numbers("r", "g", "b"),
			New: func(a engine.Args) (engine.Entity, error) {
				return &RGB{newBase(a)}, nil
			},
		},
	}
}
