package logger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"  info  ", zerolog.InfoLevel},
		{"bogus", zerolog.DebugLevel},
		{"", zerolog.DebugLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestContextEnrichment(t *testing.T) {
	ctx := context.Background()

	// no ids attached: C must still return a usable logger
	if C(ctx) == nil {
		t.Fatalf("C(background) returned nil")
	}

	ctx = WithRequest(ctx, "req-9")
	ctx = WithRun(ctx, "run-7")
	if C(ctx) == nil {
		t.Fatalf("C(enriched) returned nil")
	}

	// empty ids are not attached
	plain := WithRequest(context.Background(), "")
	if plain != context.Background() {
		t.Fatalf("empty request id should not wrap the context")
	}
}

func TestNamed(t *testing.T) {
	if Named("") != Get() {
		t.Fatalf("Named empty should return the root logger")
	}
	if Named("sync") == nil {
		t.Fatalf("Named returned nil")
	}
}
