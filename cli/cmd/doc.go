// Package cmd implements the dataindex subcommands. Each command reads the
// index loaded from --source and the current scope from its
// [context.Context].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the markup configuration file. It is also the name of the
	// container in that file whose children supply flag defaults.
	ConfigIdentifier = "config"
)
