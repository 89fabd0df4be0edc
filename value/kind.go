package value

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindVecFloat
	KindContainer
)

// Type tags used in the type attribute of markup elements.
const (
	TagInt       = "int"
	TagFloat     = "float"
	TagString    = "string"
	TagVecFloat  = "vecfloat"
	TagContainer = "container"
)

// String returns the type tag of k.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return TagInt
	case KindFloat:
		return TagFloat
	case KindString:
		return TagString
	case KindVecFloat:
		return TagVecFloat
	case KindContainer:
		return TagContainer
	default:
		return "invalid"
	}
}

// ParseKind returns the Kind registered for tag.
func ParseKind(tag string) (Kind, bool) {
	c, ok := registry[tag]
	if !ok {
		return KindInvalid, false
	}

	return c.kind, true
}
