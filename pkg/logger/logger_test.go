package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %s", got)
	}
	if got := ParseLevel(" WARN "); got != zerolog.WarnLevel {
		t.Fatalf("expected warn, got %s", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("empty input should default to info, got %s", got)
	}
	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("unknown input should default to info, got %s", got)
	}
}

func TestInfoCarriesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Info(context.Background(), "hello")

	entry := decodeLine(t, &buf)
	if entry["service"] != "api" {
		t.Fatalf("expected service field, got %v", entry)
	}
	if entry["message"] != "hello" {
		t.Fatalf("expected message, got %v", entry)
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithOwner(ctx, "kevin")
	logg.Info(ctx, "scoped")

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id field, got %v", entry)
	}
	if entry["owner"] != "kevin" {
		t.Fatalf("expected owner field, got %v", entry)
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Error(context.Background(), "boom", context.DeadlineExceeded)

	entry := decodeLine(t, &buf)
	if entry["stack"] == nil {
		t.Fatal("expected stack field on error logs")
	}
	if entry["error"] != context.DeadlineExceeded.Error() {
		t.Fatalf("expected error field, got %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "ignored")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level, got %s", buf.String())
	}

	logg.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("warn must pass at warn level")
	}
}
