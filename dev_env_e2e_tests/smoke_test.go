//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

// postJSON sends payload as JSON and returns the raw response.
func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

// Exercises the read and matching paths against a running, seeded dev
// service: catalog listing, the filter pipeline, smart match and the
// location search.
func TestDevEnv_RecommendationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	baseURL := env("STAY_API", "http://localhost:8000")
	if err := ping(baseURL + "/health"); err != nil {
		t.Skipf("stay-service unreachable at %s: %v", baseURL, err)
	}
	waitForHealthy(t, baseURL, 90*time.Second)

	// Seeded catalog is visible
	var list struct {
		Properties []map[string]interface{} `json:"properties"`
		Count      int                      `json:"count"`
	}
	resp, err := http.Get(baseURL + "/api/properties")
	if err != nil {
		t.Fatalf("list properties: %v", err)
	}
	mustJSON(t, resp, &list)
	if list.Count == 0 || list.Count != len(list.Properties) {
		t.Fatalf("expected seeded catalog, got count=%d len=%d", list.Count, len(list.Properties))
	}

	// Identity filter returns the full catalog
	var filtered struct {
		Count      int `json:"count"`
		Statistics struct {
			Total int `json:"total"`
		} `json:"statistics"`
	}
	mustJSON(t, postJSON(t, baseURL+"/api/filter_properties", map[string]interface{}{}), &filtered)
	if filtered.Count < list.Count {
		t.Fatalf("identity filter dropped records: %d < %d", filtered.Count, list.Count)
	}
	if filtered.Count != filtered.Statistics.Total {
		t.Fatalf("count %d != statistics.total %d", filtered.Count, filtered.Statistics.Total)
	}

	// Smart match around the default center finds something in the sample data
	var matched struct {
		Properties []struct {
			Score float64 `json:"score"`
		} `json:"properties"`
		Count int `json:"count"`
	}
	mustJSON(t, postJSON(t, baseURL+"/api/smart_match", map[string]interface{}{
		"center_location": "Toronto",
		"radius":          50,
		"max_budget":      500,
	}), &matched)
	if matched.Count == 0 {
		t.Fatalf("smart match found nothing around Toronto")
	}
	if matched.Properties[0].Score <= 0 {
		t.Fatalf("top match has non-positive score: %v", matched.Properties[0].Score)
	}

	// Location search resolves and measures distance
	var located struct {
		Count          int `json:"count"`
		SearchLocation struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"search_location"`
	}
	mustJSON(t, postJSON(t, baseURL+"/api/search_by_location", map[string]interface{}{
		"query":     "Toronto",
		"radius_km": 50,
	}), &located)
	if located.Count == 0 {
		t.Fatalf("location search found nothing near Toronto")
	}
	if located.SearchLocation.Lat == 0 && located.SearchLocation.Lon == 0 {
		t.Fatalf("location search returned no resolved center")
	}
}

// Drives one planning conversation to completion and verifies session
// lifecycle, then cleans the session up.
func TestDevEnv_PlanningConversation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	baseURL := env("STAY_API", "http://localhost:8000")
	if err := ping(baseURL + "/health"); err != nil {
		t.Skipf("stay-service unreachable at %s: %v", baseURL, err)
	}

	var advanced struct {
		Response             string  `json:"response"`
		SessionID            string  `json:"session_id"`
		CurrentStep          string  `json:"current_step"`
		CompletionPercentage float64 `json:"completion_percentage"`
	}
	mustJSON(t, postJSON(t, baseURL+"/api/travel_planning", map[string]interface{}{
		"message": "Banff next weekend for 2 people, $150-250 per night, mountain views and a hot tub",
	}), &advanced)
	if advanced.SessionID == "" {
		t.Fatalf("no session id returned")
	}
	defer func() {
		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/travel_planning/session/%s", baseURL, advanced.SessionID), nil)
		_, _ = http.DefaultClient.Do(req)
	}()
	if advanced.CurrentStep != "complete" || advanced.CompletionPercentage != 100 {
		t.Fatalf("one-shot message did not complete: step=%s pct=%v", advanced.CurrentStep, advanced.CompletionPercentage)
	}

	var session struct {
		CollectedInfo struct {
			Destination string `json:"destination"`
		} `json:"collected_info"`
	}
	resp, err := http.Get(fmt.Sprintf("%s/api/travel_planning/session/%s", baseURL, advanced.SessionID))
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	mustJSON(t, resp, &session)
	if session.CollectedInfo.Destination == "" {
		t.Fatalf("session lost its destination")
	}
}

// Small talk through the chat entrypoint answers with a labeled intent.
func TestDevEnv_ChatSmallTalk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	baseURL := env("STAY_API", "http://localhost:8000")
	if err := ping(baseURL + "/health"); err != nil {
		t.Skipf("stay-service unreachable at %s: %v", baseURL, err)
	}

	var chat struct {
		Response string `json:"response"`
		Intent   string `json:"intent"`
	}
	mustJSON(t, postJSON(t, baseURL+"/chat", map[string]interface{}{
		"message": "hello there",
	}), &chat)
	if chat.Response == "" || chat.Intent == "" {
		t.Fatalf("chat returned empty response or intent: %+v", chat)
	}
}
