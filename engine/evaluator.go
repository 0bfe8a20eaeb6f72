package engine

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/log"
)

// Evaluator turns source expressions into a live graph of nodes.
//
// An Evaluator is not safe for concurrent use. Hosts must serialize batches
// and watcher deliveries on a single goroutine.
type Evaluator struct {
	ctx     *Context
	reg     *Registry
	parser  *lang.Parser
	watcher Watcher
	scene   Scene
	logger  log.Logger
	strict  bool
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the logger for evaluation events.
func WithLogger(logger log.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// WithStrictShapes rejects argument values whose shape does not fit the
// declared parameter type. By default such values are accepted and only
// an advisory error is recorded.
func WithStrictShapes(strict bool) Option {
	return func(e *Evaluator) { e.strict = strict }
}

// WithParser replaces the parser built from the registry.
func WithParser(p *lang.Parser) Option {
	return func(e *Evaluator) { e.parser = p }
}

// WithContext evaluates into an existing context.
func WithContext(ctx *Context) Option {
	return func(e *Evaluator) { e.ctx = ctx }
}

// New returns an Evaluator resolving functions from reg, raw arguments from
// w, and placing renderable objects into s. A nil w never delivers values;
// a nil s discards objects.
func New(reg *Registry, w Watcher, s Scene, opts ...Option) *Evaluator {
	e := &Evaluator{reg: reg, watcher: w, scene: s}

	for _, opt := range opts {
		opt(e)
	}

	if e.ctx == nil {
		e.ctx = NewContext()
	}

	if e.watcher == nil {
		e.watcher = nopWatcher{}
	}

	if e.scene == nil {
		e.scene = nopScene{}
	}

	if e.parser == nil {
		e.parser = lang.NewParser(reg, lang.WithLogger(e.logger))
	}

	return e
}

// Context returns the evaluation state.
func (e *Evaluator) Context() *Context { return e.ctx }

// Registry returns the function registry.
func (e *Evaluator) Registry() *Registry { return e.reg }

// Errors returns the message of every recorded error keyed by expression id.
func (e *Evaluator) Errors() map[string]string { return e.ctx.Errors() }

// Err returns the error recorded for expression id.
func (e *Evaluator) Err(id string) error { return e.ctx.Err(id) }

// Variables returns every bound variable in sorted order.
func (e *Evaluator) Variables() []string { return e.ctx.Variables() }

// Lookup returns the node bound to variable.
func (e *Evaluator) Lookup(variable string) (*Node, bool) {
	return e.ctx.Lookup(variable)
}

// StartBatch begins a batch. Every variable must be produced again before
// [Evaluator.EndBatch] or it is torn down.
func (e *Evaluator) StartBatch() {
	clear(e.ctx.live)
	clear(e.ctx.seen)
}

// EndBatch tears down every variable not produced during the batch and
// forgets expressions that were not processed.
func (e *Evaluator) EndBatch() {
	removed := 0

	for _, v := range e.ctx.Variables() {
		if !e.ctx.live[v] {
			e.ChangeVariable(v, nil)

			removed++
		}
	}

	for id := range e.ctx.source {
		if !e.ctx.seen[id] {
			delete(e.ctx.source, id)
			delete(e.ctx.exprVariables, id)
			delete(e.ctx.claims, id)
			delete(e.ctx.errors, id)
		}
	}

	for v, id := range e.ctx.owner {
		if !e.ctx.live[v] || !e.ctx.seen[id] {
			delete(e.ctx.owner, v)
		}
	}

	e.logger.Debug("batch complete",
		slog.Int("variables", len(e.ctx.values)),
		slog.Int("removed", removed),
		slog.Int("errors", len(e.ctx.errors)),
	)
}

// ProcessSourceExpression evaluates the raw text of expression id.
//
// Text identical to the previous batch only marks its variables as still
// live, unless a variable it lost to another expression has since become
// free. Changed text clears the expression's error and is parsed again.
func (e *Evaluator) ProcessSourceExpression(raw, id string) {
	e.ctx.seen[id] = true

	if prev, ok := e.ctx.source[id]; ok && prev == raw && e.current(id) {
		for _, v := range e.ctx.claims[id] {
			if e.ctx.live[v] || e.ctx.owner[v] != id {
				e.fail(id, ErrDuplicateVariable.With(slog.String("variable", v)))

				continue
			}

			e.ctx.live[v] = true
		}

		return
	}

	e.ctx.source[id] = raw
	delete(e.ctx.errors, id)
	delete(e.ctx.exprVariables, id)
	delete(e.ctx.claims, id)

	defs, err := e.parser.Parse(lang.Normalize(raw))
	if err != nil {
		e.fail(id, err)

		return
	}

	for _, def := range defs {
		e.AddDefinition(def, id)
	}
}

// AddDefinition binds def.Variable to a new node on behalf of expression id.
// References are ignored.
func (e *Evaluator) AddDefinition(def lang.Definition, id string) {
	if def.Ref {
		return
	}

	e.ctx.claims[id] = append(e.ctx.claims[id], def.Variable)

	if e.ctx.live[def.Variable] {
		e.fail(id, ErrDuplicateVariable.With(
			slog.String("variable", def.Variable),
			def.Pos.Attr(),
		))

		return
	}

	e.ctx.live[def.Variable] = true
	e.ctx.exprVariables[id] = append(e.ctx.exprVariables[id], def.Variable)
	e.ctx.owner[def.Variable] = id

	desc, ok := e.reg.Lookup(def.Func)
	if !ok {
		e.fail(id, ErrUnknownFunction.With(
			slog.String("function", def.Func),
			def.Pos.Attr(),
		))
		e.ChangeVariable(def.Variable, nil)

		return
	}

	e.ChangeVariable(def.Variable, func() *Node {
		return newNode(e, def, desc, id)
	})
}

// ChangeVariable disposes the node bound to variable, binds the node made
// by factory in its place, and notifies every dependent. A nil factory, or
// one returning nil, leaves variable unbound.
func (e *Evaluator) ChangeVariable(variable string, factory func() *Node) {
	if old, ok := e.ctx.values[variable]; ok {
		delete(e.ctx.values, variable)
		old.dispose()
	}

	if factory != nil {
		if n := factory(); n != nil {
			e.ctx.values[variable] = n
			n.bind()
		}
	}

	e.NotifyDependents(variable)
}

// current reports whether every variable expression id claimed is still
// either owned by it or taken by another expression in this batch.
func (e *Evaluator) current(id string) bool {
	for _, v := range e.ctx.claims[id] {
		if e.ctx.owner[v] != id && !e.ctx.live[v] {
			return false
		}
	}

	return true
}

// NotifyDependents delivers the current value of variable to each node
// consuming it. An unbound variable delivers undefined.
//
// A variable reached again while its own dependents are being notified
// closes a cycle. Every variable on the cycle records [ErrCycle] against
// its expression and is left undefined once the notification unwinds.
func (e *Evaluator) NotifyDependents(variable string) {
	if i := slices.Index(e.ctx.notifying, variable); i >= 0 {
		for _, v := range e.ctx.notifying[i:] {
			e.ctx.cyclic[v] = true
			e.fail(e.ctx.owner[v], ErrCycle.With(slog.String("variable", v)))
		}

		return
	}

	e.deliver(variable)

	if len(e.ctx.notifying) == 0 {
		e.cutCycles()
	}
}

func (e *Evaluator) deliver(variable string) {
	e.ctx.notifying = append(e.ctx.notifying, variable)
	defer func() { e.ctx.notifying = e.ctx.notifying[:len(e.ctx.notifying)-1] }()

	v := NodeValue(e.ctx.values[variable])

	for _, dep := range e.ctx.Dependents(variable) {
		for _, name := range dep.deps[variable] {
			dep.changeArg(name, v)
		}
	}
}

func (e *Evaluator) cutCycles() {
	for len(e.ctx.cyclic) > 0 {
		for _, v := range slices.Sorted(maps.Keys(e.ctx.cyclic)) {
			delete(e.ctx.cyclic, v)

			if n, ok := e.ctx.values[v]; ok {
				n.undefine()
			}
		}
	}
}

func (e *Evaluator) fail(id string, err error) {
	if e.ctx.record(id, err) {
		e.logger.Warn("expression error",
			slog.String("expr", id),
			slog.Any("error", err),
		)
	}
}
