package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info")
	defer Init("info")

	Info("review.completed", map[string]any{"review_id": "r-1", "sections": 5})

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	if entry["msg"] != "review.completed" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Fatalf("level = %v", entry["level"])
	}
	if entry["review_id"] != "r-1" {
		t.Fatalf("review_id = %v", entry["review_id"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info")
	defer Init("info")

	Debug("cache.miss", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	Warn("cache.stale", map[string]any{"error": errors.New("boom")})
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Fatalf("expected error string field, got %q", buf.String())
	}
}
