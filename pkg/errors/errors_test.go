package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorString(t *testing.T) {
	err := New("shadow.SetShadowSize", KindInvalidArgument, stderrors.New("negative size -2"))
	got := err.Error()
	want := "shadow.SetShadowSize [invalid_argument]: negative size -2"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorWithResource(t *testing.T) {
	err := &Error{
		Op:       "resource.LoadNode",
		Kind:     KindNotFound,
		Resource: "drawable/card",
		Err:      stderrors.New("no such resource"),
	}
	want := "resource=drawable/card"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidArgument, "invalid_argument"},
		{KindNotFound, "resource_not_found"},
		{KindMalformed, "malformed_resource"},
		{KindUnsupported, "unsupported_node"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := Newf("resource.Decode", KindMalformed, "<item> without drawable")
	wrapped := fmt.Errorf("layer-list: %w", inner)

	if got := KindOf(wrapped); got != KindMalformed {
		t.Errorf("KindOf = %v, want %v", got, KindMalformed)
	}
	if !IsKind(wrapped, KindMalformed) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(nil, KindUnknown) {
		t.Error("IsKind(nil) should be false")
	}
	if got := KindOf(stderrors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want unknown", got)
	}
}

func TestReport(t *testing.T) {
	var captured *Error
	defer SetHandler(SetHandler(HandlerFunc(func(err *Error) { captured = err })))

	Report(New("resolve.Alpha", KindNotFound, stderrors.New("missing")))

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "resolve.Alpha" {
		t.Errorf("Op = %q, want %q", captured.Op, "resolve.Alpha")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestSetHandlerNil(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
	// the default handler has no logger and must not panic
	Report(Newf("shadow.SetShadowSize", KindInvalidArgument, "negative"))
}

func TestLogHandlerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := &LogHandler{Log: zap.New(core)}

	h.HandleError(New("resolve.Alpha", KindUnsupported, stderrors.New("vector")))
	h.Verbose = true
	h.HandleError(&Error{Op: "resource.LoadNode", Kind: KindNotFound, Resource: "drawable/x", Err: stderrors.New("gone")})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel {
		t.Errorf("first entry level = %v, want debug", entries[0].Level)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("second entry level = %v, want warn", entries[1].Level)
	}
	if entries[1].ContextMap()["resource"] != "drawable/x" {
		t.Errorf("resource field = %v", entries[1].ContextMap()["resource"])
	}
}
