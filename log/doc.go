// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is a small value. Its zero value discards everything, so types
// that accept an optional logger can call it without checking for nil:
//
//	var logger log.Logger
//	logger.Debug("dropped") // no output, no panic
//
// Loggers are created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
// Attributes are always typed [slog.Attr] values:
//
//	logger.Info("batch complete", slog.Int("variables", n))
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and is
// used for per-node state transitions in the evaluation engine.
//
// The package also owns a default logger used by the package-level
// functions [Debug], [Info], [Warn], [Error] and their Context variants.
// The CLI reconfigures it with [Config] while parsing flags.
package log
