package markup

import "github.com/ardnew/dataindex/pkg"

// ErrMalformed is returned when text is not well-formed markup.
var ErrMalformed = pkg.NewError("malformed markup")
