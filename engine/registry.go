package engine

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/scenic/lang"
)

// ArgSpec describes one parameter of a function.
type ArgSpec struct {
	Name string
	Type lang.Type
	// Default produces the value of an omitted argument. It is called once
	// for every entity built, so entity-valued defaults are never shared.
	// A nil Default makes the parameter required.
	Default func() Value
	// TakesList marks a parameter that receives its whole value instead of
	// the element at the entity's broadcast index.
	TakesList bool
}

// Args holds the argument values handed to a constructor.
type Args map[string]Value

// Float returns the scalar argument name, or 0.
func (a Args) Float(name string) float64 {
	f, _ := a[name].Float()

	return f
}

// Floats returns the scalars of argument name.
func (a Args) Floats(name string) []float64 { return a[name].Floats() }

// Entity returns the entity argument name, or nil.
func (a Args) Entity(name string) Entity { return a[name].Entity() }

// String renders a as "name type", with "[]" for list-taking parameters and
// the default value, if any. Entity-valued defaults render as "default".
func (a ArgSpec) String() string {
	var b strings.Builder

	b.WriteString(a.Name)
	b.WriteByte(' ')
	b.WriteString(a.Type.String())

	if a.TakesList {
		b.WriteString("[]")
	}

	if a.Default != nil {
		b.WriteString(" = ")

		if v := a.Default(); v.Kind() == KindEntity {
			b.WriteString("default")

			if e := v.Entity(); e != nil {
				e.Dispose()
			}
		} else {
			b.WriteString(v.String())
		}
	}

	return b.String()
}

// Descriptor describes a function that can appear in a definition.
type Descriptor struct {
	Name string
	Type lang.Type
	Doc  string
	// Params lists the parameters in positional order.
	Params []ArgSpec
	// New constructs the entity for one broadcast index.
	New func(args Args) (Entity, error)
	// AffectsScene requests a rerender whenever the node's state changes.
	AffectsScene bool
}

// Signature returns a one-line rendering of d's parameter list.
func (d *Descriptor) Signature() string {
	var b strings.Builder

	b.WriteString(d.Name)
	b.WriteByte('(')

	for i, a := range d.Params {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(a.String())
	}

	b.WriteString(") ")
	b.WriteString(d.Type.String())

	return b.String()
}

// Registry maps function names to descriptors. It implements
// [lang.Signatures] so a parser can be built directly on it.
//
// A Registry is not safe for concurrent registration.
type Registry struct {
	funcs map[string]*Descriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]*Descriptor)}
}

// Register adds d. Names must be unique and every descriptor needs a
// constructor.
func (r *Registry) Register(d Descriptor) error {
	if d.New == nil {
		return ErrRegister.With(slog.String("function", d.Name)).
			Wrap(errMissingConstructor)
	}

	if _, ok := r.funcs[d.Name]; ok {
		return ErrRegister.With(slog.String("function", d.Name)).
			Wrap(errDuplicateFunction)
	}

	r.funcs[d.Name] = &d

	return nil
}

// MustRegister is like [Registry.Register] but panics on error.
func (r *Registry) MustRegister(ds ...Descriptor) {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.funcs[name]

	return d, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ArgTypes implements [lang.Signatures].
func (r *Registry) ArgTypes(name string) ([]lang.Type, bool) {
	d, ok := r.funcs[name]
	if !ok {
		return nil, false
	}

	types := make([]lang.Type, len(d.Params))
	for i, a := range d.Params {
		types[i] = a.Type
	}

	return types, true
}
