package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Debug("hidden")
	log.Info("converted", slog.Int("cjdn", 2451545))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "converted" {
		t.Errorf("msg = %v, want converted", entry["msg"])
	}
	if entry["cjdn"] != float64(2451545) {
		t.Errorf("cjdn = %v, want 2451545", entry["cjdn"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "warn", "text").Warn("careful")

	if !strings.Contains(buf.String(), "msg=careful") {
		t.Errorf("text output = %q, want msg=careful", buf.String())
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Errorf("RequestID() on empty context = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "abc-123")
	if got := RequestID(ctx); got != "abc-123" {
		t.Errorf("RequestID() = %q, want abc-123", got)
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "text")

	ctx := WithRequestID(context.Background(), "req-42")
	FromContext(ctx, base).Info("tagged")

	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Errorf("output = %q, want request_id=req-42", buf.String())
	}

	buf.Reset()
	FromContext(context.Background(), base).Info("untagged")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("output = %q, want no request_id", buf.String())
	}
}
