package repl

import "github.com/ardnew/dataindex/pkg"

var (
	ErrNoIndex      = pkg.NewError("no index loaded")
	ErrOutOfBounds  = pkg.NewError("history index out of range")
	ErrEditDeclined = pkg.NewError("decline edit")
	ErrNotContainer = pkg.NewError("not a container")
	ErrUsage        = pkg.NewError("missing argument")
)
