// Package session connects a host document to a live scene.
//
// A [Session] owns the scene graph and the evaluator built on the document.
// Every expression edit in the document runs one evaluation batch over the
// expressions carrying the scene marker; host variable edits reach the
// affected nodes directly through the document's observers.
package session
