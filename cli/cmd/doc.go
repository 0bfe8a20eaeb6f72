// Package cmd implements the scenic subcommands.
//
// Commands receive a [context.Context] carrying the parsed [kong.Context]
// ([WithContext]), the document search path ([WithSearchPath]), the shape
// checking mode ([WithStrictShapes]) and optionally an output writer
// ([WithOutput]), which defaults to standard output.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
