package index

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ardnew/dataindex/markup"
	"github.com/ardnew/dataindex/value"
)

const stanley = `<stanley>` +
	`<height type="float">4.5</height>` +
	`<blanche><height type="float">3.2</height></blanche>` +
	`<stella><eyes type="string">blue</eyes></stella>` +
	`</stanley>`

func TestIngestMarkup_Stanley(t *testing.T) {
	idx := New()
	if err := idx.IngestMarkup(context.Background(), stanley); err != nil {
		t.Fatalf("IngestMarkup failed: %v", err)
	}

	got, err := ValueOf[float64](idx, "height", "stanley/blanche")
	if err != nil || got != 3.2 {
		t.Errorf("height from stanley/blanche = %v, %v; want 3.2", got, err)
	}

	got, err = ValueOf[float64](idx, "height", "stanley/stella")
	if err != nil || got != 4.5 {
		t.Errorf("height from stanley/stella = %v, %v; want 4.5", got, err)
	}

	if _, err := idx.Get("eyes", "stanley/blanche"); !errors.Is(err, ErrNotFound) {
		t.Errorf("eyes from stanley/blanche: expected ErrNotFound, got %v", err)
	}

	eyes, err := ValueOf[string](idx, "eyes", "stanley/stella")
	if err != nil || eyes != "blue" {
		t.Errorf("eyes from stanley/stella = %q, %v", eyes, err)
	}

	want := []string{
		"/stanley",
		"/stanley/blanche",
		"/stanley/blanche/height",
		"/stanley/height",
		"/stanley/stella",
		"/stanley/stella/eyes",
	}
	if names := idx.Names(); !slices.Equal(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestIngestMarkup_BaseScope(t *testing.T) {
	idx := New()
	ctx := context.Background()

	err := idx.IngestMarkup(ctx, `<nWindows type="int">6</nWindows>`, "display", "/left/")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := idx.Lookup("/display/left/nWindows"); err != nil {
		t.Errorf("expected entry under base scope: %v", err)
	}
}

func TestIngestMarkup_TypeInference(t *testing.T) {
	idx := New()

	err := idx.IngestMarkup(context.Background(),
		`<cfg><title>  Demo  </title><empty type="container"></empty><tag/></cfg>`)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := ValueOf[string](idx, "title", "cfg"); got != "Demo" {
		t.Errorf("expected untyped leaf as trimmed string, got %q", got)
	}

	if v, err := idx.Lookup("/cfg/empty"); err != nil || v.Kind() != value.KindContainer {
		t.Errorf("expected empty container, got %v, %v", v, err)
	}

	// An untyped element without text is an empty string and is skipped.
	if _, err := idx.Lookup("/cfg/tag"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected empty leaf to be skipped, got %v", err)
	}
}

func TestIngestMarkup_ContainerAccumulatesAcrossSources(t *testing.T) {
	idx := New()
	ctx := context.Background()

	if err := idx.IngestMarkup(ctx, `<dev type="container"><a type="int">1</a></dev>`); err != nil {
		t.Fatal(err)
	}

	if err := idx.IngestMarkup(ctx, `<dev type="container"><b type="int">2</b></dev>`); err != nil {
		t.Fatal(err)
	}

	children, _ := ValueOf[[]string](idx, "/dev", "")
	if !slices.Equal(children, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", children)
	}
}

func TestIngestMarkup_Policies(t *testing.T) {
	ctx := context.Background()
	first := `<n type="int">1</n>`
	second := `<n type="int">2</n>`

	strict := New()
	if err := strict.IngestMarkup(ctx, first); err != nil {
		t.Fatal(err)
	}

	if err := strict.IngestMarkup(ctx, second); !errors.Is(err, ErrOverwriteForbidden) {
		t.Errorf("expected ErrOverwriteForbidden, got %v", err)
	}

	keep := New(WithPolicy(NeverOverwrite))
	for _, text := range []string{first, second} {
		if err := keep.IngestMarkup(ctx, text); err != nil {
			t.Fatalf("re-ingestion under keep failed: %v", err)
		}
	}

	if got, _ := ValueOf[int32](keep, "n", ""); got != 1 {
		t.Errorf("keep: expected 1, got %d", got)
	}

	over := New(WithPolicy(AlwaysOverwrite))
	for _, text := range []string{first, second} {
		if err := over.IngestMarkup(ctx, text); err != nil {
			t.Fatal(err)
		}
	}

	if got, _ := ValueOf[int32](over, "n", ""); got != 2 {
		t.Errorf("overwrite: expected 2, got %d", got)
	}
}

func TestIngestMarkup_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"unknown type", `<a type="matrix">1</a>`, value.ErrUnknownType},
		{"bad payload", `<a type="int">one</a>`, value.ErrInvalidPayload},
		{"malformed", `<a type="int>1</a>`, markup.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().IngestMarkup(context.Background(), tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestIngestMarkup_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := New().IngestMarkup(ctx, stanley); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIngestMarkup_UncachedParser(t *testing.T) {
	idx := New(WithParser(markup.Parse), WithMarkupOptions(markup.WithPermissive(true)))

	err := idx.IngestMarkup(context.Background(), `<q type="string">salt & pepper</q>`)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := ValueOf[string](idx, "q", ""); got != "salt & pepper" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")

	if err := os.WriteFile(path, []byte(stanley), 0o600); err != nil {
		t.Fatal(err)
	}

	idx := New()
	if err := idx.IngestFile(context.Background(), path); err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}

	if idx.Len() != 6 {
		t.Errorf("expected 6 entries, got %d", idx.Len())
	}

	err := idx.IngestFile(context.Background(), filepath.Join(dir, "missing.xml"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestIngestReader_Error(t *testing.T) {
	r := iotest.ErrReader(errors.New("device unplugged"))

	err := New().IngestReader(context.Background(), r)
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestIngestReader_Scope(t *testing.T) {
	idx := New()

	err := idx.IngestReader(context.Background(),
		strings.NewReader(`<pos type="vecfloat">1 2 3</pos>`), "tracker")
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := ValueOf[[]float64](idx, "pos", "tracker"); !slices.Equal(got, []float64{1, 2, 3}) {
		t.Errorf("unexpected pos %v", got)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	values := map[string]value.Value{
		"i":    value.NewInt(math.MinInt32),
		"f":    value.NewFloat(1.0 / 3.0),
		"big":  value.NewFloat(6.02214076e23),
		"s":    value.NewString("a < b & c > d"),
		"cr":   value.NewString("a\rb"),
		"crlf": value.NewString("a\r\nb"),
		"tabs": value.NewString("x\ty\nz"),
		"wide": value.NewString("h\u00e9llo \u2713 \U0001D11E"),
		"v":    value.NewVecFloat(0.1, 0.2, 0.30000000000000004),
		"m": value.NewVecFloat(
			1, 0, 0, 0,
			0, math.Cos(0.5), -math.Sin(0.5), 0,
			0, math.Sin(0.5), math.Cos(0.5), 0,
			0, 1.5, -2.25, 1,
		),
	}

	for name, v := range values {
		t.Run(name, func(t *testing.T) {
			src := New()
			mustInsert(t, src, "/scope/"+name, v)

			text, err := src.Serialize(name, "scope")
			if err != nil {
				t.Fatal(err)
			}

			dst := New()
			if err := dst.IngestMarkup(context.Background(), text); err != nil {
				t.Fatalf("reingest %s: %v", text, err)
			}

			got, err := dst.Lookup("/" + name)
			if err != nil {
				t.Fatal(err)
			}

			if !value.Equal(got, v) {
				t.Errorf("round trip of %s: got %v, want %v", text, got.Native(), v.Native())
			}
		})
	}
}

func TestInsert_RejectsUnserializable(t *testing.T) {
	idx := New()

	for _, s := range []string{"x\x01y", "bell\a", "nul\x00", "bad\xffutf8", "x\uFFFEy"} {
		ok, err := idx.AddString("/s", s)
		if ok || !errors.Is(err, value.ErrInvalidPayload) {
			t.Errorf("AddString(%q) = %v, %v; want ErrInvalidPayload", s, ok, err)
		}
	}

	for _, name := range []string{"/my key", "/1x", "/a/-b", "/a/.b", "/ns:tag", "/a/b<c"} {
		ok, err := idx.AddString(name, "x")
		if ok || !errors.Is(err, ErrInvalidName) {
			t.Errorf("AddString(%q) = %v, %v; want ErrInvalidName", name, ok, err)
		}
	}

	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %v", idx.Names())
	}

	for _, name := range []string{"/_a", "/a1/b-c.d", "/\u00e9t\u00e9"} {
		if _, err := idx.AddInt(name, 1); err != nil {
			t.Errorf("AddInt(%q): %v", name, err)
		}
	}
}

func TestSerialize_Container(t *testing.T) {
	idx := New()
	if err := idx.IngestMarkup(context.Background(), stanley); err != nil {
		t.Fatal(err)
	}

	got, err := idx.Serialize("/stanley")
	if err != nil {
		t.Fatal(err)
	}

	want := `<stanley type="container">` +
		`<height type="float">4.5</height>` +
		`<blanche type="container"><height type="float">3.2</height></blanche>` +
		`<stella type="container"><eyes type="string">blue</eyes></stella>` +
		`</stanley>`
	if got != want {
		t.Errorf("Serialize(/stanley):\n got %s\nwant %s", got, want)
	}

	// The serialized container rebuilds an equivalent index.
	dst := New()
	if err := dst.IngestMarkup(context.Background(), got); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(dst.Names(), idx.Names()) {
		t.Errorf("names differ after reingest: %v vs %v", dst.Names(), idx.Names())
	}
}

func TestSerialize_TagIsLastSegment(t *testing.T) {
	idx := New()
	mustInsert(t, idx, "/stanley/blanche/height", value.NewFloat(3.2))

	tests := []struct {
		name  string
		scope []string
	}{
		{"/stanley/blanche/height", nil},
		{"height", []string{"stanley/blanche"}},
		{"blanche/height", []string{"stanley"}},
		{"height", []string{"stanley", "blanche", "kowalski"}},
	}

	for _, tt := range tests {
		got, err := idx.Serialize(tt.name, tt.scope...)
		if err != nil {
			t.Errorf("Serialize(%q, %v): %v", tt.name, tt.scope, err)

			continue
		}

		if want := `<height type="float">3.2</height>`; got != want {
			t.Errorf("Serialize(%q, %v) = %s, want %s", tt.name, tt.scope, got, want)
		}
	}

	if _, err := idx.Serialize("height", "stella"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := idx.Serialize("/nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	idx := New()
	mustInsert(t, idx, "/stanley/blanche/height", value.NewFloat(3.2))

	got, err := idx.Describe("height", "stanley/blanche")
	if err != nil {
		t.Fatal(err)
	}

	if want := `<height type="float"/>`; got != want {
		t.Errorf("scoped Describe = %s, want %s", got, want)
	}

	got, err = idx.Describe("/stanley/blanche")
	if err != nil {
		t.Fatal(err)
	}

	if want := `</stanley/blanche type="container"/>`; got != want {
		t.Errorf("unscoped Describe = %s, want %s", got, want)
	}

	if _, err := idx.Describe("eyes", "stanley/blanche"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
