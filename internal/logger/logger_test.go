package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestResolveMsg(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{[]string{"a", "b"}, "a\nb"},
		{[]any{"a", []string{"b", "c"}}, "a\nb\nc"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := resolveMsg(tt.in); got != tt.want {
			t.Errorf("resolveMsg(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFanoutHandler(t *testing.T) {
	var low, high bytes.Buffer
	h := &FanoutHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&low, &slog.HandlerOptions{Level: LevelDebug}),
		slog.NewTextHandler(&high, &slog.HandlerOptions{Level: LevelWarn}),
	}}

	old := slog.Default()
	slog.SetDefault(slog.New(h))
	defer slog.SetDefault(old)

	ctx := context.Background()
	Debug(ctx, "debug %s", "line")
	Warn(ctx, "first\nsecond")

	if !strings.Contains(low.String(), "debug line") {
		t.Errorf("low handler missing debug record: %q", low.String())
	}
	if strings.Contains(high.String(), "debug line") {
		t.Errorf("high handler should not see debug record")
	}
	if strings.Count(high.String(), "level=WARN") != 2 {
		t.Errorf("multi-line warning should produce two records: %q", high.String())
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelNotice)

	SetLevel(LevelDebug)
	if FileLevelVar.Level() != LevelDebug {
		t.Errorf("file level = %v; want debug", FileLevelVar.Level())
	}
	SetLevel(LevelWarn)
	if FileLevelVar.Level() != LevelInfo {
		t.Errorf("file level = %v; want info", FileLevelVar.Level())
	}
}
