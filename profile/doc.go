// Package profile wraps [github.com/pkg/profile] so the scenic command can
// record runtime profiles while it evaluates scene documents.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof -o scenic .
//	./scenic --pprof-mode cpu --pprof-dir ./profiles run scene.yaml
//
// Without the tag [Start] returns a no-op [Stopper] and [Modes] is empty, so
// callers never need their own build constraints.
//
// Profiles are written to the configured directory using the file names of
// the underlying library (cpu.pprof, mem.pprof, trace.out, ...) and can be
// inspected with go tool pprof:
//
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Tagged builds also import [net/http/pprof], registering its handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
