// Package pkg holds project-wide metadata and the structured [Error] type
// shared by every dataindex package.
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the module embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version with surrounding whitespace
// removed.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "dataindex"

	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Hierarchical scoped configuration index"
)
