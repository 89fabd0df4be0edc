package value

import "github.com/ardnew/dataindex/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownType    = pkg.NewError("unknown value type")
	ErrInvalidPayload = pkg.NewError("invalid payload")
	ErrInvalidChar    = pkg.NewError("character not allowed in markup")
)
