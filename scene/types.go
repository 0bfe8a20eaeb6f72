package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Vec3 is a point or direction in scene space.
type Vec3 [3]float64

// String returns "(x, y, z)".
func (v Vec3) String() string { return "(" + join(v[:]) + ")" }

// Color is an RGB color with components in [0, 1].
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// White is the default color of materials, helpers, lights, and fog.
var White = Color{R: 1, G: 1, B: 1}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	b := func(f float64) int { return int(max(0, min(1, f))*255 + 0.5) }

	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

// String returns c in hex notation.
func (c Color) String() string { return c.Hex() }

// Camera is a perspective camera.
type Camera struct {
	Position Vec3    `json:"position" yaml:"position"`
	LookAt   Vec3    `json:"lookAt"   yaml:"lookAt"`
	FOV      float64 `json:"fov"      yaml:"fov"`
	Near     float64 `json:"near"     yaml:"near"`
	Far      float64 `json:"far"      yaml:"far"`
}

// DefaultCamera is the camera of a graph nobody has set a camera on.
var DefaultCamera = Camera{
	Position: Vec3{0, 0, 5},
	FOV:      75,
	Near:     0.1,
	Far:      1000,
}

// String returns a one-line description of c.
func (c Camera) String() string {
	return fmt.Sprintf("camera at %v looking at %v (fov %s, %s..%s)",
		c.Position, c.LookAt, num(c.FOV), num(c.Near), num(c.Far))
}

// FogKind selects the fog falloff.
type FogKind string

const (
	FogLinear FogKind = "linear"
	FogExp2   FogKind = "exp2"
)

// Fog is the scene fog.
type Fog struct {
	Kind    FogKind `json:"kind"              yaml:"kind"`
	Color   Color   `json:"color"             yaml:"color"`
	Near    float64 `json:"near,omitempty"    yaml:"near,omitempty"`
	Far     float64 `json:"far,omitempty"     yaml:"far,omitempty"`
	Density float64 `json:"density,omitempty" yaml:"density,omitempty"`
}

// String returns a one-line description of f.
func (f Fog) String() string {
	if f.Kind == FogExp2 {
		return fmt.Sprintf("exp2 fog %v density %s", f.Color, num(f.Density))
	}

	return fmt.Sprintf("linear fog %v %s..%s", f.Color, num(f.Near), num(f.Far))
}

func num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func join(fs []float64) string {
	part := make([]string, len(fs))
	for i, f := range fs {
		part[i] = num(f)
	}

	return strings.Join(part, ", ")
}
