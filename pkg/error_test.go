package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_With_PreservesSentinelIdentity(t *testing.T) {
	sentinel := NewError("not found")
	other := NewError("not found")

	err := sentinel.With(slog.String("name", "height"))

	if !errors.Is(err, sentinel) {
		t.Error("expected derived error to match its sentinel")
	}

	if errors.Is(err, other) {
		t.Error("derived error matched an unrelated sentinel with the same message")
	}

	if got := len(err.Attrs()); got != 1 {
		t.Errorf("expected 1 attribute, got %d", got)
	}

	if got := len(sentinel.Attrs()); got != 0 {
		t.Errorf("sentinel was mutated: %d attributes", got)
	}
}

func TestError_Wrap_FormatsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewError("failed to read input").Wrap(cause)

	if got, want := err.Error(), "failed to read input: permission denied"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable")
	}

	wrapped := fmt.Errorf("ingest: %w", err)
	if !errors.Is(wrapped, err.base) {
		t.Error("expected sentinel match through fmt wrapping")
	}
}

func TestError_LogValue_IncludesAttrs(t *testing.T) {
	err := NewError("overwrite forbidden").
		With(slog.String("name", "/a/X")).
		Wrap(errors.New("exists"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}

	keys := map[string]string{}
	for _, a := range v.Group() {
		keys[a.Key] = a.Value.String()
	}

	for key, want := range map[string]string{
		"error": "overwrite forbidden",
		"cause": "exists",
		"name":  "/a/X",
	} {
		if keys[key] != want {
			t.Errorf("attr %q: expected %q, got %q", key, want, keys[key])
		}
	}
}
