package logger

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout runs f with os.Stdout redirected into a pipe and returns
// everything written. The logger binds stdout at construction time, so f must
// build its own logger.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	_ = w.Close()
	b, _ := io.ReadAll(r)
	_ = r.Close()
	return string(b)
}

func decodeLastLine(t *testing.T, out string) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		t.Fatalf("no log output captured")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("log line is not json: %v\n%s", err, lines[len(lines)-1])
	}
	return payload
}

func TestNewTagsEveryEventWithService(t *testing.T) {
	out := captureStdout(t, func() {
		log := New("stay-service")
		log.Info().Msg("catalog loaded")
	})

	payload := decodeLastLine(t, out)
	if payload["service"] != "stay-service" {
		t.Fatalf("service = %v, want stay-service", payload["service"])
	}
	if payload["level"] != "info" {
		t.Fatalf("level = %v, want info", payload["level"])
	}
	if _, ok := payload["time"]; !ok {
		t.Fatalf("timestamp missing: %v", payload)
	}
}

func TestNewRendersStackForStdErrors(t *testing.T) {
	out := captureStdout(t, func() {
		log := New("stay-service")
		// a plain std error, no pkg/errors stack attached
		log.Error().Stack().Err(errors.New("geocoder unreachable")).Msg("resolve failed")
	})

	payload := decodeLastLine(t, out)
	if payload["level"] != "error" {
		t.Fatalf("level = %v, want error", payload["level"])
	}
	if _, ok := payload["stack"]; !ok {
		t.Fatalf("expected stack field on error event: %v", payload)
	}
	if payload["error"] != "geocoder unreachable" {
		t.Fatalf("error = %v", payload["error"])
	}
}
