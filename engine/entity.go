package engine

import "math"

// Entity is an object built by a node for one broadcast index.
//
// The node calls Init once after every sibling has been constructed,
// ArgChanged whenever an argument changes without altering the broadcast
// length, and Dispose exactly once when the entity is discarded.
type Entity interface {
	Init(scene Scene)
	ArgChanged(name string, v Value)
	Dispose()
}

// Handle is anything a [Scene] can hold.
type Handle interface {
	Dispose()
}

// Scene receives the renderable objects entities produce.
type Scene interface {
	Add(h Handle)
	Remove(h Handle)
	Rerender()
}

// Observed identifies the shape of a host value.
type Observed int

const (
	ObservedUndefined Observed = iota // undefined
	ObservedScalar                    // scalar
	ObservedList                      // list
)

// Observation is one host value delivered to an observer. Err is set when
// the observed source cannot be evaluated at all; Kind is then undefined.
type Observation struct {
	Kind   Observed
	Scalar float64
	List   []float64
	Err    error
}

// Value converts o to a [Value].
func (o Observation) Value() Value {
	switch o.Kind {
	case ObservedScalar:
		return Scalar(o.Scalar)
	case ObservedList:
		return Numbers(o.List...)
	default:
		return Undefined()
	}
}

// usable reports whether o carries a value of the wanted shape.
func (o Observation) usable(want Observed) bool {
	if o.Kind != want {
		return false
	}

	return o.Kind != ObservedScalar || !math.IsNaN(o.Scalar)
}

// Watcher evaluates raw host expressions and reports their values.
//
// Observe must deliver the current value of source to fn before returning,
// then deliver every later change until cancel is called. Implementations
// may deliver observations of a kind other than want; they are ignored.
type Watcher interface {
	Observe(source string, want Observed, fn func(Observation)) (cancel func())
}

type nopWatcher struct{}

func (nopWatcher) Observe(string, Observed, func(Observation)) func() {
	return func() {}
}

type nopScene struct{}

func (nopScene) Add(Handle)    {}
func (nopScene) Remove(Handle) {}
func (nopScene) Rerender()     {}
