package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isExprBoundary reports whether r separates words in an expression. The
// member-access dot is a boundary; hyphens are not, since entry names may
// contain them.
func isExprBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';', '\'', '"':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(
	input string,
	cursor int,
	boundary func(rune) bool,
) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if boundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if boundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word at
// wordStart. For "x + stella.eyes.co" and the word "co" it is
// "stella.eyes". It is empty for a word not preceded by a dot.
func parentPath(input string, wordStart int) string {
	if wordStart == 0 || input[wordStart-1] != '.' {
		return ""
	}

	prefix := strings.TrimRight(input[:wordStart], ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isExprBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// exprCandidates returns the completions for a member of parent in env, or
// every top-level variable and builtin function if parent is empty.
func exprCandidates(env map[string]any, parent string) []string {
	if parent == "" {
		return append(slices.Sorted(maps.Keys(env)), builtinNames()...)
	}

	v, ok := lookupPath(env, parent)
	if !ok {
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}

// computeMatches ranks the candidates for the word at the cursor. An empty
// word yields no matches, except after a member-access dot where every
// member is listed.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	var (
		word       string
		candidates []string
	)

	if m.mode == modeCtrl {
		word, wordStart, wordEnd = wordBounds(input, cursor, unicode.IsSpace)
		candidates = m.ctrlCandidates(input[:wordStart])
	} else {
		word, wordStart, wordEnd = wordBounds(input, cursor, isExprBoundary)
		parent := parentPath(input, wordStart)
		candidates = exprCandidates(m.idx.Env(m.scope), parent)

		if word == "" && parent != "" {
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if word == "" || len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// ctrlCandidates returns command names for the first word and entry names
// visible from the current scope for the argument of a command that takes
// one.
func (m model) ctrlCandidates(before string) []string {
	fields := strings.Fields(before)

	switch {
	case len(fields) == 0:
		return ctrlCommandNames()

	case len(fields) == 1:
		cmd, ok := lookupCtrl(fields[0])
		if !ok || !cmd.takesName {
			return nil
		}

		names := m.idx.Visible(m.scope)
		if cmd.name == "cd" {
			names = append([]string{"..", "/"}, names...)
		}

		return names
	}

	return nil
}

// renderCandidateBar renders the matches on one line, ellipsized to width.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == selected)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && used+w+reserve > width && !(last && used+w <= width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		hit[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if hit[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := exprBuiltins[match.Str]; ok {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
