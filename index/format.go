package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/dataindex/value"
)

// ToMap converts the index to nested maps keyed by name segment.
// Containers become map[string]any; other entries hold their native value.
func (idx *Index) ToMap() map[string]any {
	result := make(map[string]any)

	for _, root := range idx.Roots() {
		result[Base(root)] = idx.native(root)
	}

	return result
}

func (idx *Index) native(fqn string) any {
	v := idx.entries[fqn]

	c, ok := v.(*value.Container)
	if !ok {
		return v.Native()
	}

	m := make(map[string]any, c.Len())

	for _, child := range c.Children() {
		if _, ok := idx.entries[fqn+Separator+child]; ok {
			m[child] = idx.native(fqn + Separator + child)
		}
	}

	return m
}

// toMapSlice is like native but keeps container children in insertion
// order.
func (idx *Index) toMapSlice(fqn string) any {
	v := idx.entries[fqn]

	c, ok := v.(*value.Container)
	if !ok {
		return v.Native()
	}

	ms := make(yaml.MapSlice, 0, c.Len())

	for _, child := range c.Children() {
		if _, ok := idx.entries[fqn+Separator+child]; ok {
			ms = append(ms, yaml.MapItem{
				Key:   child,
				Value: idx.toMapSlice(fqn + Separator + child),
			})
		}
	}

	return ms
}

// MarshalJSON implements json.Marshaler.
func (idx *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(idx.ToMap())
}

// FormatJSON writes the index as JSON.
func (idx *Index) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(idx, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(idx)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the index as YAML. Container children keep their
// insertion order.
func (idx *Index) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	roots := make(yaml.MapSlice, 0)
	for _, root := range idx.Roots() {
		roots = append(roots, yaml.MapItem{Key: Base(root), Value: idx.toMapSlice(root)})
	}

	data, err := yaml.MarshalContext(ctx, roots, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
