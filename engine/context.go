package engine

import (
	"errors"
	"maps"
	"slices"
)

// Context holds the evaluation state of one document.
type Context struct {
	// values maps each variable to its node.
	values map[string]*Node
	// dependents maps each variable to the nodes that consume it, in
	// registration order.
	dependents map[string][]*Node
	// exprVariables maps each expression id to the variables it produced.
	exprVariables map[string][]string
	// claims maps each expression id to every variable it defined,
	// including those rejected as duplicates.
	claims map[string][]string
	// source maps each expression id to the raw text last processed.
	source map[string]string
	// errors maps each expression id to the first error it recorded.
	errors map[string]error
	// owner maps each variable to the expression id that produced it.
	owner map[string]string

	live map[string]bool
	seen map[string]bool
	// notifying is the stack of variables whose dependents are being
	// notified; cyclic collects the variables found on a cycle.
	notifying []string
	cyclic    map[string]bool
}

// NewContext returns an empty Context.
func NewContext() *Context {
	c := &Context{}
	c.init()

	return c
}

func (c *Context) init() {
	c.values = make(map[string]*Node)
	c.dependents = make(map[string][]*Node)
	c.exprVariables = make(map[string][]string)
	c.claims = make(map[string][]string)
	c.source = make(map[string]string)
	c.errors = make(map[string]error)
	c.owner = make(map[string]string)
	c.live = make(map[string]bool)
	c.seen = make(map[string]bool)
	c.notifying = nil
	c.cyclic = make(map[string]bool)
}

// Reset disposes every node and forgets all state.
func (c *Context) Reset() {
	for _, name := range c.Variables() {
		if n := c.values[name]; n != nil {
			n.dispose()
		}
	}

	c.init()
}

// Lookup returns the node bound to variable.
func (c *Context) Lookup(variable string) (*Node, bool) {
	n, ok := c.values[variable]

	return n, ok
}

// Variables returns every bound variable in sorted order.
func (c *Context) Variables() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Dependents returns the nodes consuming variable.
func (c *Context) Dependents(variable string) []*Node {
	return slices.Clone(c.dependents[variable])
}

// ExprVariables returns the variables produced by expression id.
func (c *Context) ExprVariables(id string) []string {
	return slices.Clone(c.exprVariables[id])
}

// Source returns the raw text last processed for expression id.
func (c *Context) Source(id string) (string, bool) {
	s, ok := c.source[id]

	return s, ok
}

// Owner returns the id of the expression that produced variable.
func (c *Context) Owner(variable string) (string, bool) {
	id, ok := c.owner[variable]

	return id, ok
}

// Err returns the error recorded for expression id.
func (c *Context) Err(id string) error { return c.errors[id] }

// Errors returns the message of every recorded error keyed by expression id.
func (c *Context) Errors() map[string]string {
	m := make(map[string]string, len(c.errors))
	for id, err := range c.errors {
		m[id] = err.Error()
	}

	return m
}

func (c *Context) addDependent(variable string, n *Node) {
	if !slices.Contains(c.dependents[variable], n) {
		c.dependents[variable] = append(c.dependents[variable], n)
	}
}

func (c *Context) removeDependent(variable string, n *Node) {
	deps := slices.DeleteFunc(c.dependents[variable], func(d *Node) bool {
		return d == n
	})

	if len(deps) == 0 {
		delete(c.dependents, variable)
	} else {
		c.dependents[variable] = deps
	}
}

// record stores err for id. The first error wins, except that an advisory
// shape error gives way to any other error.
func (c *Context) record(id string, err error) bool {
	if id == "" {
		return false
	}

	if prev, ok := c.errors[id]; ok &&
		(!errors.Is(prev, ErrTypeShape) || errors.Is(err, ErrTypeShape)) {
		return false
	}

	c.errors[id] = err

	return true
}
