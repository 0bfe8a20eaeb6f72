package engine

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/ardnew/scenic/lang"
)

type change struct {
	fn   string
	name string
	v    Value
}

type recorder struct {
	built    map[string]int
	disposed map[string]int
	twice    int
	changes  []change
}

func newRecorder() *recorder {
	return &recorder{built: map[string]int{}, disposed: map[string]int{}}
}

func (r *recorder) changed(fn, name string) int {
	n := 0

	for _, c := range r.changes {
		if c.fn == fn && c.name == name {
			n++
		}
	}

	return n
}

type fakeEntity struct {
	rec      *recorder
	fn       string
	args     Args
	scene    Scene
	inited   bool
	disposed bool
}

func (r *recorder) entity(fn string, args Args) *fakeEntity {
	r.built[fn]++

	return &fakeEntity{rec: r, fn: fn, args: args}
}

func (e *fakeEntity) Init(s Scene) {
	e.scene = s
	e.inited = true

	if e.fn == "Show" {
		s.Add(e)
	}
}

func (e *fakeEntity) ArgChanged(name string, v Value) {
	e.args[name] = v
	e.rec.changes = append(e.rec.changes, change{e.fn, name, v})
}

func (e *fakeEntity) Dispose() {
	if e.disposed {
		e.rec.twice++

		return
	}

	e.disposed = true
	e.rec.disposed[e.fn]++

	if e.fn == "Show" && e.scene != nil {
		e.scene.Remove(e)
	}
}

type fakeScene struct {
	objects   []Handle
	rerenders int
}

func (s *fakeScene) Add(h Handle) { s.objects = append(s.objects, h) }

func (s *fakeScene) Remove(h Handle) {
	s.objects = slices.DeleteFunc(s.objects, func(o Handle) bool { return o == h })
}

func (s *fakeScene) Rerender() { s.rerenders++ }

type observer struct {
	fn        func(Observation)
	cancelled bool
}

// fakeWatcher resolves sources from a table, falling back to numeric
// literals.
type fakeWatcher struct {
	vals map[string]Observation
	obs  map[string][]*observer
}

func newWatcher() *fakeWatcher {
	return &fakeWatcher{
		vals: map[string]Observation{},
		obs:  map[string][]*observer{},
	}
}

func (w *fakeWatcher) Observe(src string, _ Observed, fn func(Observation)) func() {
	o := &observer{fn: fn}
	w.obs[src] = append(w.obs[src], o)

	if v, ok := w.vals[src]; ok {
		fn(v)
	} else if f, err := strconv.ParseFloat(src, 64); err == nil {
		fn(Observation{Kind: ObservedScalar, Scalar: f})
	}

	return func() { o.cancelled = true }
}

func (w *fakeWatcher) active(src string) int {
	n := 0

	for _, o := range w.obs[src] {
		if !o.cancelled {
			n++
		}
	}

	return n
}

func (w *fakeWatcher) set(src string, o Observation) {
	w.vals[src] = o

	for _, ob := range slices.Clone(w.obs[src]) {
		if !ob.cancelled {
			ob.fn(o)
		}
	}
}

func (w *fakeWatcher) scalar(src string, f float64) {
	w.set(src, Observation{Kind: ObservedScalar, Scalar: f})
}

func (w *fakeWatcher) list(src string, fs ...float64) {
	w.set(src, Observation{Kind: ObservedList, List: fs})
}

func (w *fakeWatcher) undefine(src string) {
	w.set(src, Observation{Kind: ObservedUndefined})
}

func one() Value { return Scalar(1) }

func testRegistry(rec *recorder) *Registry {
	ctor := func(fn string) func(Args) (Entity, error) {
		return func(a Args) (Entity, error) { return rec.entity(fn, a), nil }
	}

	reg := NewRegistry()
	reg.MustRegister(
		Descriptor{
			Name: "Box", Type: lang.TypeGeometry, New: ctor("Box"),
			Params: []ArgSpec{
				{Name: "w", Type: lang.TypeNumber, Default: one},
				{Name: "h", Type: lang.TypeNumber, Default: one},
				{Name: "d", Type: lang.TypeNumber, Default: one},
			},
		},
		Descriptor{
			Name: "Mat", Type: lang.TypeMaterial, New: ctor("Mat"),
		},
		Descriptor{
			Name: "Mesh", Type: lang.TypeObject, New: ctor("Mesh"),
			Params: []ArgSpec{
				{Name: "geometry", Type: lang.TypeGeometry},
				{Name: "material", Type: lang.TypeMaterial, Default: func() Value {
					return EntityValue(rec.entity("Mat", Args{}))
				}},
			},
		},
		Descriptor{
			Name: "Points", Type: lang.TypeObject, New: ctor("Points"),
			Params: []ArgSpec{
				{Name: "pts", Type: lang.TypeList, TakesList: true},
				{Name: "size", Type: lang.TypeNumber, Default: one},
			},
		},
		Descriptor{
			Name: "Show", Type: lang.TypeNull, New: ctor("Show"),
			AffectsScene: true,
			Params: []ArgSpec{
				{Name: "object", Type: lang.TypeObject},
			},
		},
		Descriptor{
			Name: "Fail", Type: lang.TypeGeometry,
			New: func(Args) (Entity, error) {
				return nil, errors.New("no geometry")
			},
		},
		Descriptor{
			Name: "Panic", Type: lang.TypeGeometry,
			New: func(Args) (Entity, error) { panic("boom") },
		},
	)

	return reg
}

type expr struct{ id, text string }

type harness struct {
	rec   *recorder
	w     *fakeWatcher
	scene *fakeScene
	ev    *Evaluator
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{rec: newRecorder(), w: newWatcher(), scene: &fakeScene{}}
	h.ev = New(testRegistry(h.rec), h.w, h.scene, opts...)

	return h
}

func (h *harness) batch(exprs ...expr) {
	h.ev.StartBatch()

	for _, x := range exprs {
		h.ev.ProcessSourceExpression(x.text, x.id)
	}

	h.ev.EndBatch()
}

func (h *harness) node(t *testing.T, variable string) *Node {
	t.Helper()

	n, ok := h.ev.Context().Lookup(variable)
	if !ok {
		t.Fatalf("variable %q not bound", variable)
	}

	return n
}
