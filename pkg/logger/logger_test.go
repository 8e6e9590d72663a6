package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestCloudRunHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(&buf, slog.LevelInfo)).With("uid", "u1")

	log.Debug("hidden")
	log.Warn("failed to save dashboard customization", "key", "dashboard-customization")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" {
		t.Errorf("unexpected severity %v", event["severity"])
	}
	data, _ := event["data"].(map[string]any)
	if data["key"] != "dashboard-customization" || data["uid"] != "u1" {
		t.Errorf("unexpected data %v", data)
	}
}

func TestGetSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":     slog.LevelDebug,
		"warn":      slog.LevelWarn,
		"error":     slog.LevelError,
		"":          slog.LevelInfo,
		"loud":      slog.LevelInfo,
		" warning ": slog.LevelWarn,
		"info+2":    slog.LevelInfo + 2,
	}
	for in, want := range cases {
		if got := getSlogLevel(in); got != want {
			t.Errorf("getSlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}
	log := slog.New(NewTestHandler(slog.LevelDebug))
	ctx := ToContext(context.Background(), log)
	if FromContext(ctx) != log {
		t.Fatal("expected stored logger")
	}
	if !IsDebugEnabled(ctx) {
		t.Fatal("expected debug enabled")
	}
	_, ctx = With(ctx, "uid", "u1")
	if FromContext(ctx) == log {
		t.Fatal("With should derive a new logger")
	}
}

func TestFromContext_NilLoggerFallsBack(t *testing.T) {
	ctx := ToContext(context.Background(), nil)
	if FromContext(ctx) != slog.Default() {
		t.Fatal("expected default logger for a nil stored logger")
	}
	if IsDebugEnabled(ctx) != slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug check should follow the default logger")
	}
}
