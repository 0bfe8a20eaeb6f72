package lang

import (
	"log/slog"
	"strconv"
)

// Position identifies a location in source text.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Attr returns p as a structured logging attribute.
func (p Position) Attr() slog.Attr {
	return slog.Group("position",
		slog.Int("offset", p.Offset),
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// Definition is one parsed function application or variable reference.
//
// A reference (Ref true) names an existing variable and creates nothing;
// its Func and Args are empty. Otherwise Func names the called function
// (possibly the empty name) and Args holds one token per supplied argument:
// raw host expression text for number and list parameters, and the name of
// the referenced variable for every other parameter.
type Definition struct {
	Variable  string
	Func      string
	Args      []string
	Ref       bool
	Generated bool // Variable was produced by the parser's counter
	Pos       Position
}

// Equal reports whether d and o describe the same application, ignoring
// source position.
func (d Definition) Equal(o Definition) bool {
	if d.Variable != o.Variable || d.Func != o.Func ||
		d.Ref != o.Ref || d.Generated != o.Generated ||
		len(d.Args) != len(o.Args) {
		return false
	}

	for i := range d.Args {
		if d.Args[i] != o.Args[i] {
			return false
		}
	}

	return true
}
