package value

import (
	"slices"
	"strconv"
	"strings"
)

// Value is a typed value held by an index entry.
type Value interface {
	// Kind returns the variant of the value.
	Kind() Kind
	// Payload returns the unescaped text encoding of the value. Containers
	// have an empty payload.
	Payload() string
	// Native returns the value as int32, float64, string, []float64 or
	// []string (container children). Slices are copies.
	Native() any
	// Clone returns a deep copy.
	Clone() Value

	sealed()
}

// Native is the set of Go types returned by [Value.Native].
type Native interface {
	int32 | float64 | string | []float64 | []string
}

// Whitespace is the set of characters trimmed from string values.
const Whitespace = " \t\n\r"

// Int is a 32-bit signed integer value.
type Int struct{ v int32 }

// NewInt returns a new Int holding i.
func NewInt(i int32) *Int { return &Int{v: i} }

func (*Int) Kind() Kind { return KindInt }
func (x *Int) Payload() string { return strconv.FormatInt(int64(x.v), 10) }
func (x *Int) Native() any { return x.v }
func (x *Int) Clone() Value { return NewInt(x.v) }
func (*Int) sealed() {}
func (x *Int) Get() int32 { return x.v }

// Set replaces the integer.
func (x *Int) Set(i int32) bool {
	x.v = i

	return true
}

func (x *Int) String() string { return x.Payload() }

// Float is a double-precision floating-point value.
type Float struct{ v float64 }

// NewFloat returns a new Float holding f.
func NewFloat(f float64) *Float { return &Float{v: f} }

func (*Float) Kind() Kind { return KindFloat }
func (x *Float) Payload() string { return formatFloat(x.v) }
func (x *Float) Native() any { return x.v }
func (x *Float) Clone() Value { return NewFloat(x.v) }
func (*Float) sealed() {}
func (x *Float) Get() float64 { return x.v }

// Set replaces the float.
func (x *Float) Set(f float64) bool {
	x.v = f

	return true
}

func (x *Float) String() string { return x.Payload() }

// String is a text value. Leading and trailing [Whitespace] is removed on
// construction and on [String.Set].
type String struct{ v string }

// NewString returns a new String holding s with [Whitespace] trimmed.
// The result may be empty; an index refuses to store empty strings. An
// index also refuses text that fails [Check].
func NewString(s string) *String { return &String{v: strings.Trim(s, Whitespace)} }

func (*String) Kind() Kind { return KindString }
func (x *String) Payload() string { return x.v }
func (x *String) Native() any { return x.v }
func (x *String) Clone() Value { return &String{v: x.v} }
func (*String) sealed() {}
func (x *String) Get() string { return x.v }
func (x *String) String() string { return x.v }

// Empty reports whether the trimmed text is empty.
func (x *String) Empty() bool { return x.v == "" }

// Set replaces the text with s, trimmed. It fails if nothing remains after
// trimming or if s holds a character markup cannot carry.
func (x *String) Set(s string) bool {
	t := strings.Trim(s, Whitespace)
	if t == "" || checkText(t) != nil {
		return false
	}

	x.v = t

	return true
}

// VecFloat is a fixed-arity vector of float64, e.g. a 3-element position or
// a 16-element row-major transform.
type VecFloat struct{ v []float64 }

// NewVecFloat returns a new VecFloat holding a copy of elems. The arity of
// the vector is len(elems) for its lifetime.
func NewVecFloat(elems ...float64) *VecFloat {
	return &VecFloat{v: slices.Clone(elems)}
}

func (*VecFloat) Kind() Kind { return KindVecFloat }
func (x *VecFloat) Native() any { return x.Get() }
func (x *VecFloat) Clone() Value { return NewVecFloat(x.v...) }
func (*VecFloat) sealed() {}
func (x *VecFloat) Get() []float64 { return slices.Clone(x.v) }
func (x *VecFloat) Len() int { return len(x.v) }
func (x *VecFloat) String() string { return x.Payload() }

// Payload returns the elements separated by a single space.
func (x *VecFloat) Payload() string {
	parts := make([]string, len(x.v))
	for i, f := range x.v {
		parts[i] = formatFloat(f)
	}

	return strings.Join(parts, " ")
}

// Set replaces the elements with a copy of elems. It fails if the arity
// differs.
func (x *VecFloat) Set(elems []float64) bool {
	if len(elems) != len(x.v) {
		return false
	}

	copy(x.v, elems)

	return true
}

// Container holds the ordered, duplicate-free names of its children. The
// children themselves are separate entries nested under the container's
// name.
type Container struct{ children []string }

// NewContainer returns a new Container with the given children. Duplicate
// and empty names are dropped.
func NewContainer(children ...string) *Container {
	c := &Container{}
	c.Add(children...)

	return c
}

func (*Container) Kind() Kind { return KindContainer }
func (*Container) Payload() string { return "" }
func (x *Container) Native() any { return x.Children() }
func (x *Container) Clone() Value { return NewContainer(x.children...) }
func (*Container) sealed() {}
func (x *Container) Children() []string { return slices.Clone(x.children) }
func (x *Container) Len() int { return len(x.children) }
func (x *Container) Has(name string) bool { return slices.Contains(x.children, name) }

// Add appends each child not already present and returns the number
// appended.
func (x *Container) Add(children ...string) int {
	n := 0

	for _, name := range children {
		if name == "" || x.Has(name) {
			continue
		}

		x.children = append(x.children, name)
		n++
	}

	return n
}

// Of returns the Value holding the native value v.
func Of[T Native](v T) Value {
	switch n := any(v).(type) {
	case int32:
		return NewInt(n)
	case float64:
		return NewFloat(n)
	case string:
		return NewString(n)
	case []float64:
		return NewVecFloat(n...)
	case []string:
		return NewContainer(n...)
	}

	panic("unreachable")
}

// Assign replaces the contents of dst with those of src in place. It fails
// if the kinds differ or the replacement is rejected by dst (a vector arity
// change or an empty string). Containers merge children instead of
// replacing them.
func Assign(dst, src Value) bool {
	switch d := dst.(type) {
	case *Int:
		if s, ok := src.(*Int); ok {
			return d.Set(s.v)
		}

	case *Float:
		if s, ok := src.(*Float); ok {
			return d.Set(s.v)
		}

	case *String:
		if s, ok := src.(*String); ok {
			return d.Set(s.v)
		}

	case *VecFloat:
		if s, ok := src.(*VecFloat); ok {
			return d.Set(s.v)
		}

	case *Container:
		if s, ok := src.(*Container); ok {
			d.Add(s.children...)

			return true
		}
	}

	return false
}

// Equal reports whether a and b hold the same kind and contents.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch x := a.(type) {
	case *Int:
		y, ok := b.(*Int)

		return ok && x.v == y.v

	case *Float:
		y, ok := b.(*Float)

		return ok && x.v == y.v

	case *String:
		y, ok := b.(*String)

		return ok && x.v == y.v

	case *VecFloat:
		y, ok := b.(*VecFloat)

		return ok && slices.Equal(x.v, y.v)

	case *Container:
		y, ok := b.(*Container)

		return ok && slices.Equal(x.children, y.children)
	}

	return false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
