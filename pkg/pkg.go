//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the scenic module embedded at build
// time. Scene documents declare the version they were written for in their
// header expression, and the session compares it against this value.
//
//go:embed VERSION
var version string

// Version returns the trimmed module version.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default config paths, and the
	// environment variable prefix.
	Name = "scenic"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Reactive 3D scene definition engine"
)

// EnvPrefix returns the prefix of environment variables read by the CLI.
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
