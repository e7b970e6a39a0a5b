package config

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLoadReadsAPIKeyFromEnv(t *testing.T) {
	t.Setenv("API_KEY", "hcb_secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "hcb_secret" {
		t.Fatalf("APIKey = %q, want hcb_secret", cfg.APIKey)
	}
}

func TestLoadReadsHeartbeatTopicsFromEnv(t *testing.T) {
	t.Setenv("API_KEY", "hcb_secret")
	t.Setenv("HEARTBEAT_TOPICS", "AI agents,Web3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.HeartbeatTopics) != 2 || cfg.HeartbeatTopics[0] != "AI agents" || cfg.HeartbeatTopics[1] != "Web3" {
		t.Fatalf("HeartbeatTopics = %#v", cfg.HeartbeatTopics)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://thehoneycomb.social/api" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.AuthHeader != "X-API-Key" {
		t.Fatalf("AuthHeader = %q", cfg.AuthHeader)
	}
	if cfg.HTTPTimeout.Seconds() != 15 {
		t.Fatalf("HTTPTimeout = %s", cfg.HTTPTimeout)
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero poll interval")
	}
}

func TestLogFieldsOmitsAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "hcb_secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fields := cfg.LogFields()
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal fields: %v", err)
	}
	if strings.Contains(string(raw), "hcb_secret") {
		t.Fatalf("log fields leak the api key: %s", raw)
	}
	if set, ok := fields["api_key_set"].(bool); !ok || !set {
		t.Fatalf("api_key_set should report true, got %#v", fields["api_key_set"])
	}
}
