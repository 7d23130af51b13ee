package config

import (
	"testing"
	"time"
)

func TestWebSearchValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     WebSearchConfig
		wantErr bool
	}{
		{"empty provider is allowed", WebSearchConfig{}, false},
		{"serper without key", WebSearchConfig{Provider: "serper"}, true},
		{"serper with key", WebSearchConfig{Provider: "serper", SerperAPIKey: "k"}, false},
		{"brave without key", WebSearchConfig{Provider: "brave"}, true},
		{"brave with key", WebSearchConfig{Provider: "brave", BraveAPIKey: "k"}, false},
		{"unknown provider", WebSearchConfig{Provider: "bing"}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestLLMValidate(t *testing.T) {
	valid := LLMConfig{Provider: "gemini", APIKey: "k", Model: "gemini-2.0-flash", MaxTokens: 1024, Timeout: time.Second}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	badProvider := valid
	badProvider.Provider = "llama-at-home"
	if err := badProvider.Validate(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}

	noTokens := valid
	noTokens.MaxTokens = 0
	if err := noTokens.Validate(); err == nil {
		t.Fatalf("expected error for max_tokens <= 0")
	}
}

// Running without a model credential is a supported degraded mode: the
// synthesizer then produces the deterministic fallback report. Validation
// must not reject it.
func TestLLMValidateWithoutCredential(t *testing.T) {
	noKey := LLMConfig{Provider: "gemini", Model: "gemini-2.0-flash", MaxTokens: 2048}
	if err := noKey.Validate(); err != nil {
		t.Fatalf("missing api key should validate: %v", err)
	}
	if noKey.Enabled() {
		t.Fatalf("config without api key should not report enabled")
	}

	noProvider := LLMConfig{}
	if err := noProvider.Validate(); err != nil {
		t.Fatalf("empty llm config should validate: %v", err)
	}
	if noProvider.Enabled() {
		t.Fatalf("empty config should not report enabled")
	}

	withKey := LLMConfig{Provider: "gemini", APIKey: "k", MaxTokens: 2048}
	if !withKey.Enabled() {
		t.Fatalf("config with provider and key should report enabled")
	}
}

func TestStorageValidate(t *testing.T) {
	if err := (StorageConfig{Interests: "inmemory"}).Validate(); err != nil {
		t.Fatalf("inmemory should validate: %v", err)
	}
	if err := (StorageConfig{Interests: "redis"}).Validate(); err == nil {
		t.Fatalf("redis without host/port should fail")
	}
	ok := StorageConfig{Interests: "redis", Redis: RedisConfig{Host: "localhost", Port: "6379"}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("redis with host/port should validate: %v", err)
	}
	if err := (StorageConfig{Interests: "cassandra"}).Validate(); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}

func TestCaptureValidate(t *testing.T) {
	disabled := CaptureConfig{Enabled: false}
	if err := disabled.Validate(); err != nil {
		t.Fatalf("disabled capture should validate: %v", err)
	}
	noDir := CaptureConfig{Enabled: true, MaxConcurrent: 3}
	if err := noDir.Validate(); err == nil {
		t.Fatalf("enabled capture without dir should fail")
	}
	ok := CaptureConfig{Enabled: true, Dir: "./shots", MaxConcurrent: 3}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid capture config rejected: %v", err)
	}
}
