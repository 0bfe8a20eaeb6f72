// Package entity is the library of functions available to scene
// definitions.
//
// Entities keep the arguments they were built with and read them when asked
// for their state, so in-place argument changes are always reflected.
// Renderable objects describe themselves with String for scene listings.
//
// Use [Register] to add the library to an [engine.Registry], or
// [NewRegistry] for a registry holding only the library.
package entity
