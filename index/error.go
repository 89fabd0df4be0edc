package index

import "github.com/ardnew/dataindex/pkg"

// Predefined errors (sentinel values).
var (
	ErrNotFound           = pkg.NewError("name not found")
	ErrOverwriteForbidden = pkg.NewError("overwriting values not allowed")
	ErrKindMismatch       = pkg.NewError("value kind mismatch")
	ErrInvalidName        = pkg.NewError("invalid name")
	ErrReadInput          = pkg.NewError("failed to read input")
	ErrExprCompile        = pkg.NewError("expression compilation failed")
	ErrExprEvaluate       = pkg.NewError("expression evaluation failed")
)
