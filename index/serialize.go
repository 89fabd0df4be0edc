package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/dataindex/value"
)

// Describe returns <tag type="T"/> for an entry.
//
// Without a scope, name is looked up as a fully-qualified name and used
// verbatim as the tag. With a scope, name is resolved and the last segment
// of name becomes the tag. Multiple scope arguments are joined.
func (idx *Index) Describe(name string, scope ...string) (string, error) {
	if len(scope) == 0 {
		v, err := idx.Lookup(name)
		if err != nil {
			return "", err
		}

		return value.Describe(name, v.Kind()), nil
	}

	v, err := idx.Get(name, Join(scope...))
	if err != nil {
		return "", err
	}

	return value.Describe(Base(name), v.Kind()), nil
}

// Serialize returns the markup fragment for an entry. The tag is the last
// segment of the entry's fully-qualified name. Containers include the
// serialized form of each of their children that exists.
//
// Without a scope, name is looked up as a fully-qualified name; with a
// scope, it is resolved first.
func (idx *Index) Serialize(name string, scope ...string) (string, error) {
	var fqn string

	if len(scope) == 0 {
		fqn = Canonical(name)
	} else {
		var ok bool
		if fqn, ok = idx.Resolve(name, Join(scope...)); !ok {
			return "", ErrNotFound.With(
				slog.String("name", name),
				slog.String("scope", Join(scope...)),
			)
		}

		fqn = Canonical(fqn)
	}

	if _, ok := idx.entries[fqn]; !ok {
		return "", ErrNotFound.With(slog.String("name", name))
	}

	var b strings.Builder

	idx.serialize(&b, fqn)

	return b.String(), nil
}

func (idx *Index) serialize(b *strings.Builder, fqn string) {
	v := idx.entries[fqn]
	tag := Base(fqn)

	c, ok := v.(*value.Container)
	if !ok {
		b.WriteString(value.Markup(tag, v))

		return
	}

	var inner strings.Builder

	for _, child := range c.Children() {
		path := fqn + Separator + child
		if _, ok := idx.entries[path]; ok {
			idx.serialize(&inner, path)
		}
	}

	b.WriteString(value.Element(tag, value.KindContainer, inner.String()))
}

// Roots returns the fully-qualified names of top-level entries in sorted
// order.
func (idx *Index) Roots() []string {
	var roots []string

	for _, name := range idx.Names() {
		if len(segments(name)) == 1 {
			roots = append(roots, name)
		}
	}

	return roots
}

// FormatMarkup writes every top-level entry as markup, one per line. The
// output can be ingested to rebuild an equivalent index.
func (idx *Index) FormatMarkup(_ context.Context, w io.Writer) error {
	for _, root := range idx.Roots() {
		s, err := idx.Serialize(root)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}

	return nil
}
