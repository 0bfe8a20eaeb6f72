package entity

import (
	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/scene"
)

// Colorer is implemented by color entities.
type Colorer interface {
	Color() scene.Color
}

// Vectorer is implemented by vector entities.
type Vectorer interface {
	Vec() scene.Vec3
}

// base holds the current arguments of an entity.
type base struct {
	args engine.Args
}

func newBase(args engine.Args) base {
	if args == nil {
		args = engine.Args{}
	}

	return base{args: args}
}

func (b *base) Init(engine.Scene) {}

func (b *base) ArgChanged(name string, v engine.Value) { b.args[name] = v }

func (b *base) Dispose() {}

func (b *base) float(name string) float64 { return b.args.Float(name) }

func (b *base) color(name string) scene.Color {
	if c, ok := b.args.Entity(name).(Colorer); ok {
		return c.Color()
	}

	return scene.White
}

func (b *base) vec(name string) scene.Vec3 {
	if v, ok := b.args.Entity(name).(Vectorer); ok {
		return v.Vec()
	}

	return scene.Vec3{}
}

// object is the base of entities that can be shown. It removes itself from
// the scene when disposed.
type object struct {
	base
	scene engine.Scene
	self  engine.Handle
}

func (o *object) Init(s engine.Scene) { o.scene = s }

func (o *object) Dispose() {
	if o.scene != nil && o.self != nil {
		o.scene.Remove(o.self)
	}
}

// constant is a fixed value used for defaults.
type constant struct {
	c scene.Color
	v scene.Vec3
}

func (*constant) Init(engine.Scene)               {}
func (*constant) ArgChanged(string, engine.Value) {}
func (*constant) Dispose()                        {}

func (k *constant) Color() scene.Color { return k.c }
func (k *constant) Vec() scene.Vec3    { return k.v }

func colorDefault(c scene.Color) func() engine.Value {
	return func() engine.Value { return engine.EntityValue(&constant{c: c}) }
}

func vecDefault(v scene.Vec3) func() engine.Value {
	return func() engine.Value { return engine.EntityValue(&constant{v: v}) }
}

func number(f float64) func() engine.Value {
	return func() engine.Value { return engine.Scalar(f) }
}

var (
	white = colorDefault(scene.White)
	gray  = colorDefault(scene.Color{R: 160.0 / 255, G: 160.0 / 255, B: 160.0 / 255})
	zero  = vecDefault(scene.Vec3{})
)
