package value

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// escaper also encodes carriage returns, which parsers otherwise fold into
// line feeds.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#xD;",
)

// isMarkupChar reports whether r may appear in markup text, even as a
// character reference.
func isMarkupChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= utf8.MaxRune
	}
}

// checkText fails with [ErrInvalidChar] if s is not valid UTF-8 or holds a
// character that markup cannot carry.
func checkText(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidChar.With(slog.String("issue", "invalid UTF-8"))
	}

	for i, r := range s {
		if !isMarkupChar(r) {
			return ErrInvalidChar.With(
				slog.String("char", fmt.Sprintf("%U", r)),
				slog.Int("offset", i),
			)
		}
	}

	return nil
}

// Check fails with [ErrInvalidPayload] if v cannot be written as markup
// and parsed back to an equal value.
func Check(v Value) error {
	s, ok := v.(*String)
	if !ok {
		return nil
	}

	if err := checkText(s.v); err != nil {
		return ErrInvalidPayload.Wrap(err).With(slog.String("type", TagString))
	}

	return nil
}

// Escape replaces the markup-special characters in s with entities.
func Escape(s string) string { return escaper.Replace(s) }

// Markup returns the fragment <tag type="T">payload</tag> for v. Container
// fragments are empty; see [Element] for emitting children.
func Markup(tag string, v Value) string {
	return Element(tag, v.Kind(), Escape(v.Payload()))
}

// Element returns the fragment <tag type="T">inner</tag>. The inner text is
// written verbatim and must already be escaped.
func Element(tag string, kind Kind, inner string) string {
	var b strings.Builder

	b.Grow(2*len(tag) + len(inner) + len(kind.String()) + 16)
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(` type="`)
	b.WriteString(kind.String())
	b.WriteString(`">`)
	b.WriteString(inner)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")

	return b.String()
}

// Describe returns the self-closing fragment <tag type="T"/>.
func Describe(tag string, kind Kind) string {
	return "<" + tag + ` type="` + kind.String() + `"/>`
}
