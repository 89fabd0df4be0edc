package markup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/ardnew/dataindex/log"
)

// Option configures parsing.
type Option func(*options)

// options that change the resulting Document are part of the cache key.
type options struct {
	permissive bool
	logger     log.Logger // not part of the cache key
}

// WithPermissive accepts common markup mistakes such as unescaped
// ampersands and undeclared entities instead of failing.
func WithPermissive(enable bool) Option {
	return func(o *options) {
		o.permissive = enable
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Parse parses text into a [Document]. Text with no elements but with
// non-whitespace content, or text that is not well-formed, fails with
// [ErrMalformed].
func Parse(ctx context.Context, text string, opts ...Option) (*Document, error) {
	return parse(ctx, text, applyOptions(opts...))
}

func parse(ctx context.Context, text string, o options) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = o.permissive

	if err := doc.ReadFromString(text); err != nil {
		return nil, ErrMalformed.Wrap(err).With(
			slog.Int("source_bytes", len(text)),
		)
	}

	root := &Node{}
	for _, el := range doc.ChildElements() {
		root.children = append(root.children, convert(el))
	}

	if len(root.children) == 0 && strings.TrimSpace(text) != "" &&
		!onlyDirectives(doc) {
		return nil, ErrMalformed.With(
			slog.String("issue", "no elements"),
			slog.Int("source_bytes", len(text)),
		)
	}

	d := &Document{root: root}

	o.logger.TraceContext(ctx, "parsed markup",
		slog.Int("source_bytes", len(text)),
		slog.Int("elements", d.Len()),
	)

	return d, nil
}

func convert(el *etree.Element) *Node {
	n := &Node{
		name: el.Tag,
		text: el.Text(),
	}

	if attr := el.SelectAttr(TypeAttr); attr != nil {
		n.typ, n.hasType = attr.Value, true
	}

	for _, child := range el.ChildElements() {
		n.children = append(n.children, convert(child))
	}

	return n
}

// onlyDirectives reports whether every non-element token in doc is a
// comment, processing instruction, directive or whitespace.
func onlyDirectives(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return false
		}
	}

	return true
}
