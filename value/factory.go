package value

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

type constructor struct {
	kind  Kind
	parse func(payload string) (Value, error)
}

// registry maps each type tag to the constructor of its variant. Adding a
// kind means adding a Kind constant and one entry here.
var registry = map[string]constructor{
	TagInt:       {KindInt, parseInt},
	TagFloat:     {KindFloat, parseFloat},
	TagString:    {KindString, parseString},
	TagVecFloat:  {KindVecFloat, parseVecFloat},
	TagContainer: {KindContainer, parseContainer},
}

// New constructs the Value identified by tag from its text payload.
//
// It returns [ErrUnknownType] if no variant is registered for tag and
// [ErrInvalidPayload] if payload cannot be parsed as that variant.
// Container payloads are ignored; children are added by the caller.
func New(tag, payload string) (Value, error) {
	c, ok := registry[tag]
	if !ok {
		return nil, ErrUnknownType.With(slog.String("type", tag))
	}

	v, err := c.parse(payload)
	if err != nil {
		return nil, ErrInvalidPayload.Wrap(err).With(
			slog.String("type", tag),
			slog.String("payload", payload),
		)
	}

	return v, nil
}

// Tags returns the registered type tags in sorted order.
func Tags() []string {
	return slices.Sorted(maps.Keys(registry))
}

func parseInt(payload string) (Value, error) {
	i, err := strconv.ParseInt(strings.Trim(payload, Whitespace), 10, 32)
	if err != nil {
		return nil, err
	}

	return NewInt(int32(i)), nil
}

func parseFloat(payload string) (Value, error) {
	f, err := strconv.ParseFloat(strings.Trim(payload, Whitespace), 64)
	if err != nil {
		return nil, err
	}

	return NewFloat(f), nil
}

func parseString(payload string) (Value, error) {
	if err := checkText(payload); err != nil {
		return nil, err
	}

	return NewString(payload), nil
}

func parseVecFloat(payload string) (Value, error) {
	fields := strings.Fields(payload)
	elems := make([]float64, len(fields))

	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}

		elems[i] = f
	}

	return &VecFloat{v: elems}, nil
}

func parseContainer(string) (Value, error) {
	return NewContainer(), nil
}
