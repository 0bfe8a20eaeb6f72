package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardnew/scenic/lang"
)

// State is the lifecycle state of a [Node].
type State int

const (
	StateUnbound   State = iota // unbound
	StateUndefined              // undefined
	StateDefined                // defined
	StateDisposed               // disposed
)

// String returns the name of s.
func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateDefined:
		return "defined"
	case StateDisposed:
		return "disposed"
	default:
		return "unbound"
	}
}

type slot struct {
	spec ArgSpec
	val  Value
	set  bool
	// def marks a slot filled by spec.Default.
	def bool
}

// ready reports whether the slot holds a usable value.
func (s *slot) ready() bool {
	return s.def || (s.set && s.val.Defined())
}

// value returns the slot's value for the entity at index i, producing a
// fresh default when needed.
func (s *slot) value(i int) Value {
	switch {
	case s.def:
		return s.spec.Default()
	case s.spec.TakesList:
		return s.val
	default:
		return s.val.Index(i)
	}
}

// Node is the binding of one variable to the entities built from its
// definition.
type Node struct {
	ev       *Evaluator
	variable string
	exprID   string
	desc     *Descriptor
	tokens   []string
	slots    []*slot
	// deps maps each source variable to the parameters it feeds.
	deps    map[string][]string
	cancels []func()
	dirty   map[string]bool

	children []Entity
	owned    []Entity
	// list marks entities built from a list argument, one per element.
	list  bool
	state State
}

func newNode(ev *Evaluator, def lang.Definition, desc *Descriptor, id string) *Node {
	n := &Node{
		ev:       ev,
		variable: def.Variable,
		exprID:   id,
		desc:     desc,
		tokens:   slices.Clone(def.Args),
		deps:     make(map[string][]string),
		dirty:    make(map[string]bool),
	}

	for _, spec := range desc.Params {
		n.slots = append(n.slots, &slot{spec: spec})
	}

	return n
}

// Variable returns the variable n is bound to.
func (n *Node) Variable() string { return n.variable }

// ExprID returns the id of the expression that defined n.
func (n *Node) ExprID() string { return n.exprID }

// Descriptor returns the function n applies.
func (n *Node) Descriptor() *Descriptor { return n.desc }

// State returns the lifecycle state of n.
func (n *Node) State() State {
	if n == nil {
		return StateUnbound
	}

	return n.state
}

// Defined reports whether n currently holds constructed entities.
func (n *Node) Defined() bool { return n.State() == StateDefined }

// Broadcasting reports whether n was built from at least one list argument.
func (n *Node) Broadcasting() bool { return n.list }

// Children returns the entities built by n.
func (n *Node) Children() []Entity { return slices.Clone(n.children) }

// Arg returns the current value of parameter name.
func (n *Node) Arg(name string) (Value, bool) {
	s := n.slot(name)
	if s == nil || !s.set {
		return Value{}, false
	}

	return s.val, true
}

func (n *Node) slot(name string) *slot {
	for _, s := range n.slots {
		if s.spec.Name == name {
			return s
		}
	}

	return nil
}

func (n *Node) log() []slog.Attr {
	return []slog.Attr{
		slog.String("variable", n.variable),
		slog.String("function", n.desc.Name),
	}
}

// bind wires every parameter to its source: defaults for omitted ones,
// host observers for raw ones, and dependency registration for the rest.
func (n *Node) bind() {
	n.state = StateUndefined

	for i, s := range n.slots {
		if i >= len(n.tokens) && s.spec.Default != nil {
			s.def = true
			s.set = true
		}
	}

	for i, s := range n.slots {
		if i >= len(n.tokens) {
			continue
		}

		token := n.tokens[i]
		name := s.spec.Name

		if s.spec.Type.Raw() {
			n.observe(name, token, s.spec.Type)

			continue
		}

		if token == n.variable {
			n.ev.fail(n.exprID, ErrCycle.With(append(n.log(),
				slog.String("param", name))...))

			continue
		}

		n.deps[token] = append(n.deps[token], name)
		n.ev.ctx.addDependent(token, n)

		if src, ok := n.ev.ctx.values[token]; ok {
			n.changeArg(name, NodeValue(src))
		}
	}

	if n.state == StateUndefined {
		n.update()
	}
}

// observe registers host observers for a raw parameter. Number parameters
// accept scalars and lists, list parameters accept only lists.
func (n *Node) observe(name, source string, t lang.Type) {
	wants := []Observed{ObservedList}
	if t == lang.TypeNumber {
		wants = []Observed{ObservedScalar, ObservedList}
	}

	for _, want := range wants {
		cancel := n.ev.watcher.Observe(source, want, func(o Observation) {
			if o.Err != nil {
				n.ev.fail(n.exprID, ErrHostSource.Wrap(o.Err).With(append(n.log(),
					slog.String("param", name), slog.String("source", source))...))
			}

			if o.Kind == ObservedUndefined {
				n.changeArg(name, Undefined())

				return
			}

			if o.usable(want) {
				n.changeArg(name, o.Value())
			}
		})

		if cancel != nil {
			n.cancels = append(n.cancels, cancel)
		}
	}
}

// changeArg stores a new value for parameter name and brings the built
// entities up to date.
func (n *Node) changeArg(name string, v Value) {
	if n.state == StateDisposed {
		return
	}

	s := n.slot(name)
	if s == nil {
		return
	}

	if v.Kind() == KindUndefined {
		s.val, s.set, s.def = v, true, false
		n.dirty[name] = true
		n.undefine()

		return
	}

	if !n.checkShape(s, v) && n.ev.strict {
		n.undefine()

		return
	}

	s.val, s.set, s.def = v, true, false
	n.dirty[name] = true

	n.update()
}

// update rebuilds or refreshes the entities from the current slots.
func (n *Node) update() {
	for _, s := range n.slots {
		if !s.ready() {
			n.undefine()

			return
		}
	}

	length := n.broadcastLength()

	if length == n.count() {
		n.list = length != Unbounded

		for _, name := range n.dirtyNames() {
			s := n.slot(name)

			for i, c := range n.children {
				c.ArgChanged(name, s.value(i))
			}
		}
	} else if !n.rebuild(length) {
		n.undefine()

		return
	}

	clear(n.dirty)

	n.state = StateDefined
	n.ev.logger.Trace("node defined",
		append(n.log(), slog.Int("entities", len(n.children)))...)

	n.ev.NotifyDependents(n.variable)

	if n.desc.AffectsScene {
		n.ev.scene.Rerender()
	}
}

func (n *Node) dirtyNames() []string {
	var names []string

	for _, s := range n.slots {
		if n.dirty[s.spec.Name] {
			names = append(names, s.spec.Name)
		}
	}

	return names
}

// broadcastLength returns the shortest length of any list-shaped argument
// that does not take its list whole, or [Unbounded] if there is none.
func (n *Node) broadcastLength() int {
	length := Unbounded

	for _, s := range n.slots {
		if s.def || s.spec.TakesList {
			continue
		}

		if l := s.val.Len(); l != Unbounded && (length == Unbounded || l < length) {
			length = l
		}
	}

	return length
}

// count returns the current number of entities in broadcast terms. A node
// that has built nothing counts zero.
func (n *Node) count() int {
	if n.list || len(n.children) == 0 {
		return len(n.children)
	}

	return Unbounded
}

// rebuild discards every entity and builds length new ones.
func (n *Node) rebuild(length int) bool {
	n.disposeChildren()

	k := length
	if length == Unbounded {
		k = 1
	}

	built := make([]Entity, 0, k)

	for i := range k {
		args := make(Args, len(n.slots))

		for _, s := range n.slots {
			v := s.value(i)
			if s.def && v.Kind() == KindEntity {
				n.owned = append(n.owned, v.Entity())
			}

			args[s.spec.Name] = v
		}

		e, err := n.construct(args)
		if err != nil {
			for _, b := range built {
				b.Dispose()
			}

			n.disposeOwned()
			n.ev.fail(n.exprID, err)

			return false
		}

		built = append(built, e)
	}

	n.children = built
	n.list = length != Unbounded

	n.ev.logger.Trace("node rebuilt",
		append(n.log(), slog.Int("entities", len(built)))...)

	for _, c := range built {
		c.Init(n.ev.scene)
	}

	return true
}

func (n *Node) construct(args Args) (e Entity, err error) {
	defer func() {
		if r := recover(); r != nil {
			e = nil
			err = ErrConstruct.With(n.log()...).Wrap(fmt.Errorf("panic: %v", r))
		}
	}()

	e, err = n.desc.New(args)
	if err != nil {
		return nil, ErrConstruct.With(n.log()...).Wrap(err)
	}

	if e == nil {
		return nil, ErrConstruct.With(n.log()...)
	}

	return e, nil
}

// checkShape reports whether v fits the declared type of s, recording an
// advisory error when it does not.
func (n *Node) checkShape(s *slot, v Value) bool {
	ok := true

	switch t := s.spec.Type; {
	case s.spec.TakesList || t == lang.TypeList:
		ok = v.Kind() == KindSequence
	case t == lang.TypeNumber:
		ok = v.Kind() == KindScalar || v.Kind() == KindSequence
	case v.Kind() == KindNode:
		ok = v.Node().desc.Type == t
	}

	if !ok {
		n.ev.fail(n.exprID, ErrTypeShape.With(append(n.log(),
			slog.String("param", s.spec.Name),
			slog.String("type", s.spec.Type.String()),
			slog.String("kind", v.Kind().String()),
		)...))
	}

	return ok
}

// undefine moves n to the undefined state. Built entities are kept so a
// later change with the same broadcast length can update them in place.
func (n *Node) undefine() {
	if n.state == StateUndefined {
		return
	}

	was := n.state
	n.state = StateUndefined

	if was != StateDefined {
		return
	}

	n.ev.logger.Trace("node undefined", n.log()...)
	n.ev.NotifyDependents(n.variable)

	if n.desc.AffectsScene {
		n.ev.scene.Rerender()
	}
}

func (n *Node) disposeChildren() {
	for _, c := range n.children {
		c.Dispose()
	}

	n.children = nil
	n.list = false

	n.disposeOwned()
}

func (n *Node) disposeOwned() {
	for _, o := range n.owned {
		if o != nil {
			o.Dispose()
		}
	}

	n.owned = nil
}

// dispose detaches n from the graph and disposes every entity it built.
func (n *Node) dispose() {
	if n.state == StateDisposed {
		return
	}

	for _, cancel := range n.cancels {
		cancel()
	}

	n.cancels = nil

	for src := range n.deps {
		n.ev.ctx.removeDependent(src, n)
	}

	hadChildren := len(n.children) > 0

	n.disposeChildren()
	n.state = StateDisposed

	n.ev.logger.Trace("node disposed", n.log()...)

	if n.desc.AffectsScene && hadChildren {
		n.ev.scene.Rerender()
	}
}
