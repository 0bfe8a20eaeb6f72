package lang

//go:generate go tool stringer --linecomment --type Type --output type_string.go

// Type is the declared type of a function parameter or result.
//
// Types only drive how arguments are wired: [TypeNumber] and [TypeList]
// parameters are raw host expressions, all others are references to other
// definitions. They say nothing about the runtime shape of a value.
type Type int

const (
	TypeNumber   Type = iota // number
	TypeList                 // list
	TypeColor                // color
	TypeVector2              // vector2
	TypeVector3              // vector3
	TypeMaterial             // material
	TypeGeometry             // geometry
	TypeObject               // object
	TypeNull                 // null
)

// Raw reports whether arguments of type t are raw host expressions.
func (t Type) Raw() bool { return t == TypeNumber || t == TypeList }

// Signatures resolves a function name to the declared types of its
// parameters, in positional order.
type Signatures interface {
	ArgTypes(name string) ([]Type, bool)
}

// SignatureMap is a static [Signatures] implementation.
type SignatureMap map[string][]Type

// ArgTypes implements [Signatures].
func (m SignatureMap) ArgTypes(name string) ([]Type, bool) {
	t, ok := m[name]

	return t, ok
}
