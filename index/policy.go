package index

import "strings"

// Policy decides what happens when a value is inserted under a name that
// already exists.
type Policy int

const (
	// Forbid fails the insertion with [ErrOverwriteForbidden].
	Forbid Policy = iota
	// AlwaysOverwrite replaces the existing value in place.
	AlwaysOverwrite
	// NeverOverwrite keeps the existing value and reports false.
	NeverOverwrite
)

// DefaultPolicy is the policy of an Index created without [WithPolicy].
const DefaultPolicy = Forbid

// String returns the policy name as accepted by [ParsePolicy].
func (p Policy) String() string {
	switch p {
	case AlwaysOverwrite:
		return "overwrite"
	case NeverOverwrite:
		return "keep"
	default:
		return "forbid"
	}
}

// Policies returns the names of all policies.
func Policies() []string {
	return []string{Forbid.String(), AlwaysOverwrite.String(), NeverOverwrite.String()}
}

// ParsePolicy parses a policy name. Unknown names return [DefaultPolicy]
// and false.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forbid":
		return Forbid, true
	case "overwrite", "always":
		return AlwaysOverwrite, true
	case "keep", "never":
		return NeverOverwrite, true
	default:
		return DefaultPolicy, false
	}
}
