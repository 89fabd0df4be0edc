package repl

import (
	"slices"
	"testing"
	"unicode"
)

func TestWordBounds_ExprOperators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "bar.baz", 7, "baz", 4, 7},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"in_ternary", "x ? fo", 6, "fo", 4, 6},
		{"after_slash", "a / fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"hyphenated", "Head-Move", 9, "Head-Move", 0, 9},
		{"empty_after_dot", "stella.", 7, "", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor, isExprBoundary)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestWordBounds_CommandKeepsSlashes(t *testing.T) {
	word, start, end := wordBounds("cd stanley/ste", 14, unicode.IsSpace)
	if word != "stanley/ste" || start != 3 || end != 14 {
		t.Errorf("got (%q, %d, %d)", word, start, end)
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"simple_chain", "bar.baz.", 8, "bar.baz"},
		{"after_operator", "foo + bar.baz.", 14, "bar.baz"},
		{"after_paren", "(bar.baz.", 9, "bar.baz"},
		{"no_chain", "a + ", 4, ""},
		{"deep_chain", "a.b.c.", 6, "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestExprCandidates(t *testing.T) {
	m := testModel(t, "stanley")
	env := m.idx.Env(m.scope)

	top := exprCandidates(env, "")
	for _, want := range []string{"stanley", "stella", "height", "paths", "len"} {
		if !slices.Contains(top, want) {
			t.Errorf("top-level candidates missing %q: %v", want, top)
		}
	}

	if got := exprCandidates(env, "stella"); !slices.Equal(got, []string{"age", "eyes", "height"}) {
		t.Errorf("stella members = %v", got)
	}

	if got := exprCandidates(env, "paths"); !slices.Equal(got, []string{"prefix", "prefixif"}) {
		t.Errorf("paths members = %v", got)
	}

	if got := exprCandidates(env, "height"); got != nil {
		t.Errorf("leaf members = %v, want nil", got)
	}
}

func TestCtrlCandidates(t *testing.T) {
	m := testModel(t, "stanley")

	if got := m.ctrlCandidates(""); !slices.Contains(got, "serialize") {
		t.Errorf("command names = %v", got)
	}

	got := m.ctrlCandidates("cd ")
	if !slices.Contains(got, "..") || !slices.Contains(got, "stella") {
		t.Errorf("cd candidates = %v", got)
	}

	if got := m.ctrlCandidates("pwd "); got != nil {
		t.Errorf("pwd takes no argument, got %v", got)
	}
}

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		input  string
		name   string
		arg    int
		inCall bool
	}{
		{"height", "", 0, false},
		{"len(", "len", 0, true},
		{"paths.prefix(x, ", "paths.prefix", 1, true},
		{"len(split(a, b), ", "len", 1, true},
		{"len(split(a, ", "split", 1, true},
		{"(1 + 2", "", 0, false},
	}

	for _, tt := range tests {
		got := detectFunctionCall(tt.input, len(tt.input))
		if got.name != tt.name || got.argIndex != tt.arg || got.inCall != tt.inCall {
			t.Errorf("detectFunctionCall(%q) = %+v", tt.input, got)
		}
	}
}

func TestSignatureOf(t *testing.T) {
	m := testModel(t, "")
	env := m.idx.Env("")

	params, ok := signatureOf(env, "paths.prefix")
	if !ok || !slices.Equal(params, []string{"string", "...string"}) {
		t.Errorf("paths.prefix params = %v, %v", params, ok)
	}

	params, ok = signatureOf(env, "join")
	if !ok || !slices.Equal(params, []string{"array", "separator"}) {
		t.Errorf("join params = %v, %v", params, ok)
	}

	if _, ok := signatureOf(env, "stanley"); ok {
		t.Error("container reported as function")
	}
}
