package index

import "github.com/sahilm/fuzzy"

// DefaultSuggestions is the number of names callers usually ask
// [Index.Suggest] for.
const DefaultSuggestions = 5

// Suggest returns up to n fully-qualified names that fuzzy-match name, best
// match first. A non-positive n returns nothing.
func (idx *Index) Suggest(name string, n int) []string {
	if n <= 0 {
		return nil
	}

	matches := fuzzy.Find(name, idx.Names())

	out := make([]string, 0, min(n, len(matches)))
	for _, m := range matches[:min(n, len(matches))] {
		out = append(out, m.Str)
	}

	return out
}

// Complete returns the names visible from scope that fuzzy-match prefix,
// best match first. Each result is the shortest name that resolves to
// the entry from scope.
func (idx *Index) Complete(prefix, scope string) []string {
	visible := idx.Visible(scope)

	matches := fuzzy.Find(prefix, visible)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}

	return out
}

// Visible returns the short names that resolve from scope, each to the
// entry that [Index.Resolve] would return.
func (idx *Index) Visible(scope string) []string {
	segs := segments(scope)
	seen := make(map[string]bool)

	var out []string

	for n := len(segs); n >= 0; n-- {
		prefix := qualify(segs[:n]...)
		if n == 0 {
			prefix = ""
		}

		for _, name := range idx.Names() {
			if len(name) <= len(prefix)+1 || name[:len(prefix)+1] != prefix+Separator {
				continue
			}

			short := name[len(prefix)+1:]
			if !seen[short] {
				seen[short] = true

				out = append(out, short)
			}
		}
	}

	return out
}
