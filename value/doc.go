// Package value defines the typed values stored in an index.
//
// A [Value] is a closed sum of five kinds, each identified on the wire by a
// stable type tag:
//
//	int        32-bit signed integer, base-10 payload
//	float      float64, shortest payload that reparses to the same bits
//	string     text with leading and trailing " \t\n\r" removed
//	vecfloat   fixed-arity []float64, space-separated payload
//	container  ordered list of child name fragments, no payload
//
// Values are constructed from native Go values ([NewInt], [NewFloat], ...)
// or from a tag and payload through the factory [New]. Every value renders
// itself as a markup fragment with [Markup]:
//
//	<height type="float">4.5</height>
//
// Use a type switch over [*Int], [*Float], [*String], [*VecFloat] and
// [*Container] to reach the concrete kind; no other implementations exist.
package value
