package index

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"
)

func loadStanley(t *testing.T) *Index {
	t.Helper()

	idx := New()
	if err := idx.IngestMarkup(context.Background(), stanley); err != nil {
		t.Fatal(err)
	}

	return idx
}

func TestFormatJSON(t *testing.T) {
	idx := loadStanley(t)

	var buf bytes.Buffer
	if err := idx.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	var got map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if got["stanley"]["height"] != 4.5 {
		t.Errorf("unexpected stanley.height %v", got["stanley"]["height"])
	}

	stella, ok := got["stanley"]["stella"].(map[string]any)
	if !ok || stella["eyes"] != "blue" {
		t.Errorf("unexpected stanley.stella %v", got["stanley"]["stella"])
	}
}

func TestFormatYAML_KeepsChildOrder(t *testing.T) {
	idx := loadStanley(t)

	var buf bytes.Buffer
	if err := idx.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	for _, want := range []string{"stanley:", "height: 4.5", "height: 3.2", "eyes: blue"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in YAML:\n%s", want, out)
		}
	}

	if strings.Index(out, "height: 4.5") > strings.Index(out, "blanche:") {
		t.Errorf("expected insertion order in YAML:\n%s", out)
	}
}

func TestFormatMarkup_RoundTrip(t *testing.T) {
	idx := loadStanley(t)

	if _, err := idx.AddVecFloat("/tracker/pos", 1, 2, 3); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := idx.FormatMarkup(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	dst := New()
	if err := dst.IngestMarkup(context.Background(), buf.String()); err != nil {
		t.Fatalf("reingest failed: %v\n%s", err, buf.String())
	}

	if got, want := strings.Join(dst.Names(), ","), strings.Join(idx.Names(), ","); got != want {
		t.Errorf("names differ:\n got %s\nwant %s", got, want)
	}
}

func TestEval(t *testing.T) {
	idx := loadStanley(t)

	if _, err := idx.AddInt("/stanley/stella/age", 25); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		source string
		scope  string
		want   any
	}{
		{"height * 2", "stanley/stella", 9.0},
		{"height * 2", "stanley/blanche", 6.4},
		{"eyes + '!'", "stanley/stella", "blue!"},
		{"blanche.height < height", "stanley", true},
		{"stanley.stella.age + 1", "", 26},
	}

	for _, tt := range tests {
		t.Run(tt.source+"@"+tt.scope, func(t *testing.T) {
			got, err := idx.Eval(context.Background(), tt.source, tt.scope)
			if err != nil {
				t.Fatalf("Eval failed: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	idx := loadStanley(t)

	if _, err := idx.Eval(context.Background(), "height +", "stanley"); !errors.Is(err, ErrExprCompile) {
		t.Errorf("expected ErrExprCompile, got %v", err)
	}

	if _, err := idx.Eval(context.Background(), "eyes", "stanley/blanche"); !errors.Is(err, ErrExprCompile) {
		t.Errorf("expected unknown name to fail compilation, got %v", err)
	}
}

func TestEval_PathsPrefix(t *testing.T) {
	idx := New()
	if _, err := idx.AddString("/app/shaders", "/usr/share/shaders"); err != nil {
		t.Fatal(err)
	}

	got, err := idx.Eval(context.Background(), `paths.prefix(shaders, "/opt/shaders")`, "app")
	if err != nil {
		t.Fatal(err)
	}

	s, ok := got.(string)
	if !ok {
		t.Fatalf("expected string, got %T", got)
	}

	if !strings.HasPrefix(s, "/opt/shaders") || !strings.Contains(s, "/usr/share/shaders") {
		t.Errorf("unexpected path list %q", s)
	}
}

func TestSuggest(t *testing.T) {
	idx := loadStanley(t)

	got := idx.Suggest("stelaeyes", 3)
	if len(got) == 0 || got[0] != "/stanley/stella/eyes" {
		t.Errorf("expected /stanley/stella/eyes first, got %v", got)
	}

	if got := idx.Suggest("zzz", 3); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}

	for _, n := range []int{0, -1} {
		if got := idx.Suggest("stelaeyes", n); got != nil {
			t.Errorf("Suggest(n=%d) = %v, want nil", n, got)
		}
	}
}

func TestVisible(t *testing.T) {
	idx := loadStanley(t)

	got := idx.Visible("stanley/stella")

	has := func(name string) bool {
		for _, g := range got {
			if g == name {
				return true
			}
		}

		return false
	}

	for _, name := range []string{"eyes", "height", "blanche/height", "stanley/stella/eyes"} {
		if !has(name) {
			t.Errorf("expected %q visible from stanley/stella, got %v", name, got)
		}
	}

	for _, name := range got {
		if _, ok := idx.Resolve(name, "stanley/stella"); !ok {
			t.Errorf("visible name %q does not resolve", name)
		}
	}

	if c := idx.Complete("eye", "stanley/stella"); len(c) == 0 || c[0] != "eyes" {
		t.Errorf("expected eyes completion first, got %v", c)
	}
}

func TestEnv_ScopedView(t *testing.T) {
	idx := loadStanley(t)

	env := idx.Env("stanley/stella")

	for _, name := range []string{"paths", "stanley", "height", "blanche", "stella", "eyes"} {
		if _, ok := env[name]; !ok {
			t.Errorf("expected %q in env, got keys %v", name, slices.Sorted(maps.Keys(env)))
		}
	}

	if env["height"] != 4.5 {
		t.Errorf("height = %v, want 4.5", env["height"])
	}

	blanche, ok := env["blanche"].(map[string]any)
	if !ok || blanche["height"] != 3.2 {
		t.Errorf("blanche = %v, want map with height 3.2", env["blanche"])
	}

	if _, ok := idx.Env("")["eyes"]; ok {
		t.Error("eyes must not be visible from the root scope")
	}
}

func TestHasAndRoots(t *testing.T) {
	idx := loadStanley(t)

	if _, err := idx.AddInt("/depth", 2); err != nil {
		t.Fatal(err)
	}

	if got, want := idx.Roots(), []string{"/depth", "/stanley"}; !slices.Equal(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}

	tests := []struct {
		name, scope string
		want        bool
	}{
		{"eyes", "stanley/stella", true},
		{"eyes", "stanley", false},
		{"depth", "stanley/blanche", true},
		{"/stanley/height", "", true},
		{"/stanley/eyes", "", false},
	}

	for _, tt := range tests {
		if got := idx.Has(tt.name, tt.scope); got != tt.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tt.name, tt.scope, got, tt.want)
		}
	}
}
