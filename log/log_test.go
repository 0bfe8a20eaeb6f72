package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestLogger_ZeroValueIsNoop(t *testing.T) {
	var logger Logger

	logger.Trace("trace")
	logger.Info("info", slog.Int("n", 1))
	logger.ErrorContext(context.Background(), "error")

	if logger.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on a zero Logger produced a live logger")
	}

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}
}

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		log    func(Logger)
		logged bool
	}{
		{"trace below debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"info at error", LevelError, func(l Logger) { l.Info("m") }, false},
		{"error at error", LevelError, func(l Logger) { l.Error("m") }, true},
		{"warn at info", LevelInfo, func(l Logger) { l.Warn("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	)

	logger.With(slog.String("component", "engine")).
		Trace("node defined", slog.Int("children", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}

	if _, ok := rec["time"]; ok {
		t.Error("time attribute present with layout none")
	}

	if rec["component"] != "engine" || rec["children"] != float64(3) {
		t.Errorf("missing attributes: %v", rec)
	}
}

func TestLogger_PrettyJSONIsIndented(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON), WithPretty(true)).Info("hello")

	if !strings.Contains(buf.String(), "\n  \"msg\": \"hello\"") {
		t.Errorf("pretty JSON not indented: %q", buf.String())
	}
}

func TestLogger_PrettyTextGroups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout(""))
	logger.Info("scene", slog.Group("camera", slog.Float64("fov", 75)))

	out := buf.String()
	if !strings.Contains(out, "camera.fov=") || !strings.Contains(out, "75") {
		t.Errorf("group attribute not flattened: %q", out)
	}

	if !strings.Contains(out, "INFO") {
		t.Errorf("level missing: %q", out)
	}
}

func TestLogger_WrapKeepsBase(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelWarn), WithFormat(FormatJSON))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatJSON {
		t.Errorf("Wrap dropped format: %v", wrapped.Format())
	}

	if wrapped.Level() != LevelDebug || base.Level() != LevelWarn {
		t.Errorf("levels = %v/%v, want debug/warn", wrapped.Level(), base.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":  LevelTrace,
		"TRACE":  LevelTrace,
		"debug":  LevelDebug,
		" warn ": LevelWarn,
		"ERROR":  LevelError,
		"bogus":  DefaultLevel,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON || ParseFormat("text") != FormatText {
		t.Error("ParseFormat did not recognize a valid format")
	}

	if ParseFormat("xml") != DefaultFormat {
		t.Error("ParseFormat did not fall back to the default")
	}
}

func TestLevelsAndFormats(t *testing.T) {
	levels := slices.Collect(Levels())
	if !slices.Equal(levels, []string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %v", levels)
	}

	formats := slices.Collect(Formats())
	if !slices.Equal(formats, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", formats)
	}
}

func TestPackage_LogFunctionsUseDefault(t *testing.T) {
	original := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithDefaults(&buf), WithLevel(LevelDebug), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) {
				t.Errorf("missing level %s: %s", tt.level, out)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("missing attribute: %s", out)
			}
		})
	}
}
