package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRunContext(t *testing.T) {
	ctx := context.Background()
	if got := RunID(ctx); got != "" {
		t.Errorf("RunID on bare context = %q, want empty", got)
	}

	ctx, id := NewRunContext(ctx)
	if id == "" {
		t.Fatal("NewRunContext returned empty id")
	}
	if got := RunID(ctx); got != id {
		t.Errorf("RunID = %q, want %q", got, id)
	}

	ctx2, id2 := NewRunContext(ctx)
	if id2 == id {
		t.Error("second run context reused the same id")
	}
	if got := RunID(ctx2); got != id2 {
		t.Errorf("RunID after rewrap = %q, want %q", got, id2)
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext returned nil for bare context")
	}
	ctx, _ := NewRunContext(context.Background())
	if FromContext(ctx) == nil {
		t.Fatal("FromContext returned nil for run context")
	}
}
