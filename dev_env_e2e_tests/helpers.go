//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// env returns the value of key, falling back when unset so the suite runs
// against a local dev stack with zero configuration.
func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ping reports whether the service answers a GET with HTTP 200. Tests use it
// to skip quickly when the dev stack is not running.
func ping(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// mustJSON fails the test unless resp is a 2xx carrying the expected JSON.
func mustJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if resp == nil {
		t.Fatal("nil response")
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.Fatalf("http %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode json: %v\n%s", err, string(raw))
	}
}

// waitForHealthy polls /health until the body reports healthy or the timeout
// elapses. Startup includes catalog loading, so the first poll often misses.
func waitForHealthy(t *testing.T, baseURL string, timeout time.Duration) {
	t.Helper()
	t.Logf("waiting for %s/health to report healthy (timeout %s)", baseURL, timeout)

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(timeout)

	for {
		select {
		case <-deadline:
			t.Fatalf("stay-service not healthy within %s", timeout)
		case <-tick.C:
			resp, err := http.Get(baseURL + "/health")
			if err != nil {
				continue
			}
			var data struct {
				Status string `json:"status"`
			}
			decodeErr := json.NewDecoder(resp.Body).Decode(&data)
			_ = resp.Body.Close()
			if decodeErr == nil && resp.StatusCode == http.StatusOK && data.Status == "healthy" {
				return
			}
		}
	}
}
