package entity

import (
	"slices"

	"github.com/ardnew/scenic/engine"
)

// Library returns the descriptor of every function in the library.
func Library() []engine.Descriptor {
	return slices.Concat(values(), materials(), geometries(), objects(), setup())
}

// Register adds every library function to reg.
func Register(reg *engine.Registry) error {
	for _, d := range Library() {
		if err := reg.Register(d); err != nil {
			return err
		}
	}

	return nil
}

// NewRegistry returns a registry holding the library.
func NewRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.MustRegister(Library()...)

	return reg
}
