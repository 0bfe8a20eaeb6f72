// Package host holds the document a scene is evaluated from.
//
// A [Document] pairs named host variables with an ordered list of source
// expressions. Variables are expr-lang expressions evaluated against each
// other; the document implements [engine.Watcher] so raw scene arguments
// such as "n * 2" or "[1, 2, t]" are evaluated the same way and observed
// for changes.
//
// Documents are stored as YAML:
//
//	variables:
//	  n: "3"
//	  t: "0.5"
//	expressions:
//	  - id: header
//	    text: version 0.1.0
//	  - id: "1"
//	    text: "@3 Show(Mesh(Box(n, 1, 1)))"
package host
