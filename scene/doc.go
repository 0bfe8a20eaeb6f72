// Package scene is an in-memory scene graph.
//
// A [Graph] records the objects, lights, camera, and fog that entities
// contribute, and counts the redraws requested of it. It renders nothing;
// hosts inspect it with [Graph.Snapshot] or print it with [Graph.Dump].
package scene
