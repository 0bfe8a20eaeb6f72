package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scenic/host"
	"github.com/ardnew/scenic/log"
)

type (
	contextKey    struct{}
	searchPathKey struct{}
	strictKey     struct{}
	outputKey     struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// WithSearchPath returns a new context.Context carrying the directories
// searched, in order, for relative document names.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// WithStrictShapes returns a new context.Context selecting strict argument
// shape checking for sessions created by commands.
func WithStrictShapes(ctx context.Context, strict bool) context.Context {
	return context.WithValue(ctx, strictKey{}, strict)
}

func strictFrom(ctx context.Context) bool {
	strict, _ := ctx.Value(strictKey{}).(bool)

	return strict
}

// WithOutput returns a new context.Context whose commands print to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// locate resolves name to a readable file. Absolute names and names that
// exist relative to the working directory are used as is; otherwise each
// search path directory is tried in order.
func locate(ctx context.Context, name string) (string, error) {
	if name == stdinSource {
		return name, nil
	}

	if isFile(name) {
		return name, nil
	}

	if !filepath.IsAbs(name) {
		for _, dir := range searchPathFrom(ctx) {
			path := filepath.Join(dir, name)
			if isFile(path) {
				return path, nil
			}
		}
	}

	return "", ErrNoDocument.With(slog.String("document", name))
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// openSource opens the named source, "-" being standard input.
func openSource(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := locate(ctx, name)
	if err != nil {
		return nil, err
	}

	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	log.TraceContext(ctx, "open source", slog.String("path", path))

	return os.Open(path)
}

// loadDocument reads the named YAML document. An empty name yields an empty
// document.
func loadDocument(ctx context.Context, name string) (*host.Document, error) {
	opts := []host.Option{host.WithLogger(log.Default())}

	if name == "" {
		return host.New(opts...), nil
	}

	r, err := openSource(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := host.Load(ctx, r, opts...)
	if err != nil {
		return nil, err
	}

	return doc, nil
}
