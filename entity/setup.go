package entity

import (
	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/scene"
)

// Show adds an object to the scene for as long as it lives.
type Show struct {
	base
	scene engine.Scene
	shown engine.Handle
}

func (s *Show) Init(sc engine.Scene) {
	s.scene = sc
	s.attach()
}

func (s *Show) ArgChanged(name string, v engine.Value) {
	s.base.ArgChanged(name, v)

	if name == "object" && s.scene != nil {
		s.attach()
	}
}

func (s *Show) Dispose() { s.detach() }

func (s *Show) attach() {
	obj := s.args.Entity("object")
	if obj == s.shown {
		return
	}

	s.detach()

	if obj != nil {
		s.scene.Add(obj)
		s.shown = obj
	}
}

func (s *Show) detach() {
	if s.shown != nil && s.scene != nil {
		s.scene.Remove(s.shown)
	}

	s.shown = nil
}

// Camera is a perspective camera. It replaces the scene camera while it
// lives.
type Camera struct {
	base
	scene engine.Scene
}

// Camera returns the current camera parameters.
func (c *Camera) Camera() scene.Camera {
	return scene.Camera{
		Position: c.vec("position"),
		LookAt:   c.vec("lookAt"),
		FOV:      c.float("fov"),
		Near:     c.float("near"),
		Far:      c.float("far"),
	}
}

func (c *Camera) Init(sc engine.Scene) {
	c.scene = sc
	c.apply()
}

func (c *Camera) ArgChanged(name string, v engine.Value) {
	c.base.ArgChanged(name, v)
	c.apply()
}

func (c *Camera) Dispose() {
	if cs, ok := c.scene.(scene.Cameras); ok {
		cs.ResetCamera(c)
	}
}

func (c *Camera) apply() {
	if cs, ok := c.scene.(scene.Cameras); ok {
		cs.SetCamera(c, c.Camera())
	}
}

// Fog sets the scene fog while it lives.
type Fog struct {
	base
	kind  scene.FogKind
	scene engine.Scene
}

// Fog returns the current fog parameters.
func (f *Fog) Fog() scene.Fog {
	fog := scene.Fog{Kind: f.kind, Color: f.color("color")}

	if f.kind == scene.FogExp2 {
		fog.Density = f.float("density")
	} else {
		fog.Near, fog.Far = f.float("near"), f.float("far")
	}

	return fog
}

func (f *Fog) Init(sc engine.Scene) {
	f.scene = sc
	f.apply()
}

func (f *Fog) ArgChanged(name string, v engine.Value) {
	f.base.ArgChanged(name, v)
	f.apply()
}

func (f *Fog) Dispose() {
	if fs, ok := f.scene.(scene.Fogs); ok {
		fs.ClearFog(f)
	}
}

func (f *Fog) apply() {
	if fs, ok := f.scene.(scene.Fogs); ok {
		fs.SetFog(f, f.Fog())
	}
}

func setup() []engine.Descriptor {
	return []engine.Descriptor{
		{
			Name:         "Show",
			Type:         lang.TypeNull,
			Doc:          "adds an object to the scene",
			AffectsScene: true,
			Params: []engine.ArgSpec{
				{Name: "object", Type: lang.TypeObject},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				return &Show{base: newBase(a)}, nil
			},
		},
		{
			Name:         "PerspectiveCamera",
			Type:         lang.TypeNull,
			Doc:          "replaces the scene camera",
			AffectsScene: true,
			Params: []engine.ArgSpec{
				{Name: "position", Type: lang.TypeVector3},
				{Name: "lookAt", Type: lang.TypeVector3, Default: zero},
				{Name: "fov", Type: lang.TypeNumber, Default: number(75)},
				{Name: "near", Type: lang.TypeNumber, Default: number(0.1)},
				{Name: "far", Type: lang.TypeNumber, Default: number(1000)},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				return &Camera{base: newBase(a)}, nil
			},
		},
		{
			Name:         "LinearFog",
			Type:         lang.TypeNull,
			Doc:          "fog growing linearly between near and far",
			AffectsScene: true,
			Params: []engine.ArgSpec{
				{Name: "near", Type: lang.TypeNumber},
				{Name: "far", Type: lang.TypeNumber},
				{Name: "color", Type: lang.TypeColor, Default: white},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				return &Fog{base: newBase(a), kind: scene.FogLinear}, nil
			},
		},
		{
			Name:         "FogExp2",
			Type:         lang.TypeNull,
			Doc:          "fog growing exponentially with distance",
			AffectsScene: true,
			Params: []engine.ArgSpec{
				{Name: "density", Type: lang.TypeNumber},
				{Name: "color", Type: lang.TypeColor, Default: white},
			},
			New: func(a engine.Args) (engine.Entity, error) {
				return &Fog{base: newBase(a), kind: scene.FogExp2}, nil
			},
		},
	}
}
