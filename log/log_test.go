package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Trace("trace")
	logger.Error("error", slog.String("key", "value"))

	if logger.With(slog.Int("n", 1)).Logger != nil {
		t.Error("expected With on zero logger to stay zero")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError), WithPretty(false))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Errorf("info message logged at error level: %q", buf.String())
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at error level")
	}
}

func TestLogger_Trace_PrintsTraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))
	logger.Trace("resolve", slog.String("name", "height"))

	out := buf.String()
	if !strings.Contains(out, "level=TRACE") {
		t.Errorf("expected TRACE level label, got %q", out)
	}

	if !strings.Contains(out, "name=height") {
		t.Errorf("expected attribute in output, got %q", out)
	}
}

func TestLogger_JSON_EmitsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout(""))
	logger.With(slog.String("component", "index")).
		Info("inserted", slog.String("name", "/a/X"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output %q: %v", buf.String(), err)
	}

	if result["msg"] != "inserted" {
		t.Errorf("expected msg=inserted, got %v", result["msg"])
	}

	if result["component"] != "index" || result["name"] != "/a/X" {
		t.Errorf("missing attributes: %v", result)
	}

	if _, ok := result["time"]; ok {
		t.Error("expected time to be omitted with empty layout")
	}
}

func TestLogger_Pretty_KeepsWithAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout(""))
	logger.With(slog.String("scope", "stanley")).Info("hello")

	out := buf.String()
	if !strings.Contains(out, "scope") || !strings.Contains(out, "stanley") {
		t.Errorf("expected persistent attribute in pretty output, got %q", out)
	}

	if strings.Contains(out, slog.TimeKey+"=") {
		t.Errorf("expected no timestamp, got %q", out)
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("debug message")

	if first.Len() != 0 {
		t.Error("wrapped logger wrote to the original output")
	}

	if !strings.Contains(second.String(), "debug message") {
		t.Error("wrapped logger did not apply new level and output")
	}

	if base.Level() != LevelError {
		t.Error("Wrap mutated the original logger")
	}
}
