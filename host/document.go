package host

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/log"
)

// Expression is one source expression of a document.
type Expression struct {
	ID   string `json:"id"   yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

type observer struct {
	source string
	fn     func(engine.Observation)
	last   result
	live   bool
}

// Document is the host state a scene is evaluated from.
//
// A Document is not safe for concurrent use.
type Document struct {
	vars      map[string]string
	values    map[string]result
	exprs     []Expression
	observers []*observer
	listeners []func()
	programs  map[uint64]*vm.Program
	logger    log.Logger
}

// Option configures a [Document].
type Option func(*Document)

// WithLogger sets the logger for document events.
func WithLogger(logger log.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

// New returns an empty Document.
func New(opts ...Option) *Document {
	d := &Document{
		vars:     make(map[string]string),
		values:   make(map[string]result),
		programs: make(map[uint64]*vm.Program),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Variables returns every variable name in sorted order.
func (d *Document) Variables() []string {
	return slices.Sorted(maps.Keys(d.vars))
}

// Variable returns the source of variable name.
func (d *Document) Variable(name string) (string, bool) {
	src, ok := d.vars[name]

	return src, ok
}

// Value returns the current value of variable name.
func (d *Document) Value(name string) engine.Observation {
	return d.values[name].observation()
}

// SetVariable sets the source of variable name and re-evaluates every
// variable and observed source.
func (d *Document) SetVariable(name, source string) error {
	if _, reserved := functions[name]; reserved || !isIdentifier(name) {
		return ErrVariableName.With(slog.String("name", name))
	}

	if _, err := d.compile(source); err != nil {
		return err
	}

	d.vars[name] = source
	d.recompute()

	return nil
}

// DeleteVariable removes variable name.
func (d *Document) DeleteVariable(name string) bool {
	if _, ok := d.vars[name]; !ok {
		return false
	}

	delete(d.vars, name)
	d.recompute()

	return true
}

// Expressions returns the expressions in order.
func (d *Document) Expressions() []Expression { return slices.Clone(d.exprs) }

// Expression returns the expression with the given id.
func (d *Document) Expression(id string) (Expression, bool) {
	i := d.index(id)
	if i < 0 {
		return Expression{}, false
	}

	return d.exprs[i], true
}

// SetExpression replaces the text of expression id, appending it if no
// expression has that id.
func (d *Document) SetExpression(id, text string) {
	if i := d.index(id); i >= 0 {
		if d.exprs[i].Text == text {
			return
		}

		d.exprs[i].Text = text
	} else {
		d.exprs = append(d.exprs, Expression{ID: id, Text: text})
	}

	d.changed()
}

// AppendExpression adds an expression with the next free numeric id and
// returns the id.
func (d *Document) AppendExpression(text string) string {
	next := 1

	for _, x := range d.exprs {
		if n, err := strconv.Atoi(x.ID); err == nil && n >= next {
			next = n + 1
		}
	}

	id := strconv.Itoa(next)
	d.SetExpression(id, text)

	return id
}

// RemoveExpression removes expression id.
func (d *Document) RemoveExpression(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}

	d.exprs = slices.Delete(d.exprs, i, i+1)
	d.changed()

	return true
}

// OnChange registers fn to run after every expression edit.
func (d *Document) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// Observe implements [engine.Watcher]. The observer receives the current
// value of source immediately and again whenever it changes.
func (d *Document) Observe(
	source string,
	_ engine.Observed,
	fn func(engine.Observation),
) func() {
	o := &observer{source: source, fn: fn, live: true}
	o.last = d.eval(source)
	d.observers = append(d.observers, o)

	fn(o.last.observation())

	return func() {
		o.live = false
		d.observers = slices.DeleteFunc(d.observers, func(x *observer) bool {
			return x == o
		})
	}
}

// Eval evaluates source against the current variables.
func (d *Document) Eval(source string) (engine.Observation, error) {
	prog, err := d.compile(source)
	if err != nil {
		return engine.Observation{}, err
	}

	out, err := vm.Run(prog, d.env())
	if err != nil {
		return engine.Observation{}, ErrEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	return convert(out).observation(), nil
}

// Fingerprint returns a hash of the variables and expressions of d.
func (d *Document) Fingerprint() uint64 {
	var buf []byte

	for _, name := range d.Variables() {
		buf = append(buf, name...)
		buf = append(buf, 0)
		buf = append(buf, d.vars[name]...)
		buf = append(buf, 0)
	}

	buf = append(buf, 1)

	for _, x := range d.exprs {
		buf = append(buf, x.ID...)
		buf = append(buf, 0)
		buf = append(buf, x.Text...)
		buf = append(buf, 0)
	}

	return xxh3.Hash(buf)
}

func (d *Document) index(id string) int {
	return slices.IndexFunc(d.exprs, func(x Expression) bool { return x.ID == id })
}

func (d *Document) changed() {
	for _, fn := range slices.Clone(d.listeners) {
		fn()
	}
}

// compile returns the program for source, compiling it on first use.
// Variables are left out of the compile environment so their type stays
// unknown to the checker, which keeps a program valid while their values
// change shape. Names not yet bound evaluate to nil.
func (d *Document) compile(source string) (*vm.Program, error) {
	key := xxh3.HashString(source)
	if prog, ok := d.programs[key]; ok {
		return prog, nil
	}

	prog, err := expr.Compile(source, expr.Env(functions), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	d.programs[key] = prog

	return prog, nil
}

func (d *Document) env() map[string]any {
	env := make(map[string]any, len(d.vars)+len(functions))
	for name := range d.vars {
		env[name] = d.values[name].env()
	}

	maps.Copy(env, functions)

	return env
}

// eval evaluates source, mapping every failure to an undefined result. A
// compile failure is kept on the result so observers can report it.
func (d *Document) eval(source string) result {
	prog, err := d.compile(source)
	if err != nil {
		d.logger.Debug("host expression does not compile",
			slog.String("source", source), slog.Any("error", err))

		return result{err: err}
	}

	out, err := vm.Run(prog, d.env())
	if err != nil {
		d.logger.Trace("host expression failed",
			slog.String("source", source), slog.Any("error", err))

		return result{}
	}

	return convert(out)
}

// recompute evaluates the variables to a fixed point, then notifies every
// observer whose value changed.
func (d *Document) recompute() {
	for name := range d.values {
		if _, ok := d.vars[name]; !ok {
			delete(d.values, name)
		}
	}

	names := d.Variables()

	for round := 0; round <= len(names); round++ {
		changed := false

		for _, name := range names {
			r := d.eval(d.vars[name])
			if !r.equal(d.values[name]) {
				d.values[name] = r
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	for _, o := range slices.Clone(d.observers) {
		if !o.live {
			continue
		}

		r := d.eval(o.source)
		if !r.equal(o.last) {
			o.last = r
			o.fn(r.observation())
		}
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return utf8.RuneCountInString(s) > 0
}
