package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Unbounded is the broadcast length of a value that does not constrain the
// number of entities a node builds.
const Unbounded = -1

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindUndefined Kind = iota // undefined
	KindScalar                // scalar
	KindSequence              // sequence
	KindNode                  // node
	KindEntity                // entity
)

// String returns the name of k.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindNode:
		return "node"
	case KindEntity:
		return "entity"
	default:
		return "undefined"
	}
}

// Value is an argument value delivered to a node or an entity.
//
// The zero Value is undefined.
type Value struct {
	kind Kind
	num  float64
	seq  []Value
	node *Node
	ent  Entity
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{} }

// Scalar returns a scalar value.
func Scalar(f float64) Value { return Value{kind: KindScalar, num: f} }

// Sequence returns a sequence holding vs.
func Sequence(vs ...Value) Value { return Value{kind: KindSequence, seq: vs} }

// Numbers returns a sequence of scalars.
func Numbers(fs ...float64) Value {
	vs := make([]Value, len(fs))
	for i, f := range fs {
		vs[i] = Scalar(f)
	}

	return Sequence(vs...)
}

// NodeValue returns a value referring to the entities built by n.
func NodeValue(n *Node) Value {
	if n == nil {
		return Value{}
	}

	return Value{kind: KindNode, node: n}
}

// EntityValue returns a value holding a single entity.
func EntityValue(e Entity) Value {
	if e == nil {
		return Value{}
	}

	return Value{kind: KindEntity, ent: e}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Defined reports whether v holds something usable. A node value is defined
// only while its node is.
func (v Value) Defined() bool {
	switch v.kind {
	case KindUndefined:
		return false
	case KindNode:
		return v.node.Defined()
	default:
		return true
	}
}

// Float returns the scalar held by v.
func (v Value) Float() (float64, bool) {
	if v.kind != KindScalar {
		return 0, false
	}

	return v.num, true
}

// Floats returns the scalars of a sequence, skipping any element that is
// not a scalar. A scalar yields a one-element slice.
func (v Value) Floats() []float64 {
	switch v.kind {
	case KindScalar:
		return []float64{v.num}
	case KindSequence:
		fs := make([]float64, 0, len(v.seq))
		for _, e := range v.seq {
			if f, ok := e.Float(); ok {
				fs = append(fs, f)
			}
		}

		return fs
	default:
		return nil
	}
}

// Seq returns the elements of a sequence.
func (v Value) Seq() []Value {
	if v.kind != KindSequence {
		return nil
	}

	return v.seq
}

// Node returns the node referred to by v, or nil.
func (v Value) Node() *Node { return v.node }

// Entity returns the entity that v resolves to when used whole: the entity
// itself, or the single entity of a node that is not broadcasting.
func (v Value) Entity() Entity {
	switch v.kind {
	case KindEntity:
		return v.ent
	case KindNode:
		if !v.node.list && len(v.node.children) == 1 {
			return v.node.children[0]
		}
	}

	return nil
}

// Entities returns every entity v refers to.
func (v Value) Entities() []Entity {
	switch v.kind {
	case KindEntity:
		return []Entity{v.ent}
	case KindNode:
		return v.node.Children()
	case KindSequence:
		var es []Entity
		for _, e := range v.seq {
			es = append(es, e.Entities()...)
		}

		return es
	default:
		return nil
	}
}

// Len returns the broadcast length of v: the element count of a sequence or
// of a broadcasting node, and [Unbounded] for everything else.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindNode:
		if v.node.list {
			return len(v.node.children)
		}
	}

	return Unbounded
}

// Index returns the part of v destined for the entity at index i.
//
// A broadcasting node yields its i-th entity, a node with a single entity
// yields that entity, and a sequence yields its i-th element. Anything else,
// including an index out of range, yields v unchanged.
func (v Value) Index(i int) Value {
	switch v.kind {
	case KindNode:
		kids := v.node.children
		if v.node.list {
			if i >= 0 && i < len(kids) {
				return EntityValue(kids[i])
			}
		} else if len(kids) == 1 {
			return EntityValue(kids[0])
		}
	case KindSequence:
		if i >= 0 && i < len(v.seq) {
			return v.seq[i]
		}
	}

	return v
}

// String returns a short human-readable rendering of v.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindSequence:
		part := make([]string, len(v.seq))
		for i, e := range v.seq {
			part[i] = e.String()
		}

		return "[" + strings.Join(part, ", ") + "]"
	case KindNode:
		return "<" + v.node.variable + ">"
	case KindEntity:
		if s, ok := v.ent.(fmt.Stringer); ok {
			return s.String()
		}

		return fmt.Sprintf("<%T>", v.ent)
	default:
		return "undefined"
	}
}
