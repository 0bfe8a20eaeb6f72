package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "scenic" {
		t.Errorf("Expected Name to be %q, got %q", "scenic", Name)
	}

	if EnvPrefix() != "SCENIC_" {
		t.Errorf("Expected EnvPrefix to be %q, got %q", "SCENIC_", EnvPrefix())
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?$`)
	if !semver.MatchString(Version()) {
		t.Errorf("Version %q is not a semantic version", Version())
	}
}

func TestError_IsSurvivesWithAndWrap(t *testing.T) {
	sentinel := NewError("sentinel")
	other := NewError("sentinel")

	derived := sentinel.With(slog.Int("line", 3)).Wrap(errors.New("boom"))

	if !errors.Is(derived, sentinel) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, other) {
		t.Error("derived error matches an unrelated sentinel with the same message")
	}

	if got := derived.Error(); got != "sentinel: boom" {
		t.Errorf("Error() = %q, want %q", got, "sentinel: boom")
	}

	wrapped := fmt.Errorf("outer: %w", derived)
	if !errors.Is(wrapped, sentinel) {
		t.Error("sentinel not found through fmt.Errorf wrapping")
	}
}

func TestError_WithDoesNotMutate(t *testing.T) {
	base := NewError("base").With(slog.String("a", "1"))
	_ = base.With(slog.String("b", "2"))

	if n := len(base.Attrs()); n != 1 {
		t.Errorf("base has %d attrs after With, want 1", n)
	}

	if _, ok := base.Attr("b"); ok {
		t.Error("With leaked an attribute into its receiver")
	}
}

func TestWrapError(t *testing.T) {
	plain := errors.New("plain")

	e := WrapError(plain)
	if e.Error() != "plain" {
		t.Errorf("WrapError(plain).Error() = %q", e.Error())
	}

	if !errors.Is(e, plain) {
		t.Error("WrapError lost the wrapped error")
	}

	sentinel := NewError("s")
	if WrapError(sentinel.Wrap(plain)).Message() != "s" {
		t.Error("WrapError did not return the existing Error")
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("bad").With(slog.Int("n", 7)).Wrap(errors.New("cause"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	if got["error"] != "bad" || got["cause"] != "cause" || got["n"] != "7" {
		t.Errorf("unexpected group attrs: %v", got)
	}
}
