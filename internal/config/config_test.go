package config

import (
	"os"
	"testing"
)

func TestConfigLoad_GenDefaults(t *testing.T) {
	// clear env vars
	_ = os.Unsetenv("STAY_EXTRACTION_MODEL")
	_ = os.Unsetenv("STAY_CHAT_MODEL")
	_ = os.Unsetenv("STAY_OPENROUTER_BASE_URL")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.ExtractionModel != "anthropic/claude-3.5-sonnet" || cfg.OpenRouterBaseURL != "https://openrouter.ai/api/v1" {
		t.Fatalf("unexpected default gen config: %+v", cfg)
	}
}

func TestConfigLoad_GenEnvOverride(t *testing.T) {
	_ = os.Setenv("STAY_CHAT_MODEL", "test-model")
	defer func() { _ = os.Unsetenv("STAY_CHAT_MODEL") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.ChatModel != "test-model" {
		t.Fatalf("chat model env override failed, got %s", cfg.ChatModel)
	}
}

func TestConfigLoad_TuningDefaults(t *testing.T) {
	// clear env vars
	_ = os.Unsetenv("STAY_SMART_MATCH_LIMIT")
	_ = os.Unsetenv("STAY_MAX_RECOMMENDATIONS")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.SmartMatchLimit != 20 || cfg.MaxRecommendations != 5 {
		t.Fatalf("unexpected default tuning: limit=%d recs=%d", cfg.SmartMatchLimit, cfg.MaxRecommendations)
	}
}

func TestConfigLoad_TuningEnvOverride(t *testing.T) {
	_ = os.Setenv("STAY_SMART_MATCH_LIMIT", "50")
	defer func() { _ = os.Unsetenv("STAY_SMART_MATCH_LIMIT") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.SmartMatchLimit != 50 {
		t.Fatalf("smart match limit env override failed, got %d", cfg.SmartMatchLimit)
	}
}

func TestConfigLoad_TuningClampsNonPositive(t *testing.T) {
	_ = os.Setenv("STAY_SMART_MATCH_LIMIT", "-3")
	defer func() { _ = os.Unsetenv("STAY_SMART_MATCH_LIMIT") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.SmartMatchLimit != 20 {
		t.Fatalf("non-positive limit should clamp to default, got %d", cfg.SmartMatchLimit)
	}
}
