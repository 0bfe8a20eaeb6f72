// Package lang parses the scene definition language.
//
// A source expression defines one entity, optionally naming it:
//
//	definition := [ident '='] call | ident
//	call       := ['\operatorname{'] [ident] ['}'] '(' [arg {',' arg}] ')'
//	arg        := raw | definition
//
// Whether an argument is raw or a nested definition depends on the declared
// [Type] of the called function's parameter at that position, which the
// parser obtains from a [Signatures] implementation. Number and list
// parameters take raw text: everything up to the next top-level ',' or ')',
// passed through verbatim after checking that '(', '[' and '{' are balanced.
// Every other parameter takes a nested definition or a bare identifier that
// refers to a definition elsewhere.
//
// The parser flattens nested calls. Each call becomes one [Definition], and
// nested definitions precede the definition that refers to them:
//
//	Mesh(Box(1,2,3), RGB(255,0,0))
//
// yields
//
//	__expr2 = Box(1, 2, 3)
//	__expr3 = RGB(255, 0, 0)
//	__expr1 = Mesh(__expr2, __expr3)
//
// Calls without an explicit name receive a generated one from a counter
// owned by the [Parser], so names stay unique across every expression parsed
// by the same instance.
//
// Expressions taken from a host document carry the "@3" marker and may
// contain typesetting commands; [Normalize] reduces them to plain source.
package lang
