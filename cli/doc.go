// Package cli is the scenic command line interface.
//
// # Commands
//
//	scenic [run] [document] [--set name=expr]... [--expr text]... [--format text|json|yaml]
//	scenic fmt native|json|yaml|tree [--all] [--document] [source]
//	scenic funcs [query]
//	scenic repl [document]
//	scenic init [--force]
//
// Relative document names are looked up in the working directory, then in
// each directory of $SCENIC_PATH, then in the configuration directory.
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory ($XDG_CONFIG_HOME/scenic on Linux). Keys are flag
// names; nested mappings join with '-':
//
//	log:
//	  level: debug
//	  format: json
//	strict: true
//
// Every flag can also be set from the environment with the SCENIC_ prefix,
// e.g. SCENIC_LOG_LEVEL=debug. "scenic init" writes the effective flag values
// back to config.yaml.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, error
//   - --log-format: text, json
//   - --log-time-layout: Go layout, a time package constant name, or "none"
//   - --[no-]log-caller, --[no-]log-pretty
//
// # Profiling Options
//
// Built with -tags pprof, --pprof-mode selects a profile kind and --pprof-dir
// its output directory (default: the cache directory's pprof subdirectory).
package cli
