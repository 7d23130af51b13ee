package provider

import (
	"context"
	"errors"

	"github.com/avaldezm/newsight/config"
	gemini_provider "github.com/avaldezm/newsight/provider/gemini"
	openai_provider "github.com/avaldezm/newsight/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	Gemini Client = "gemini"
	OpenAI Client = "openai"
)

// Provider is the interface that all LLM implementations must satisfy.
// Generate returns the model's raw text for the given prompt; callers own
// parsing.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case Gemini:
		return gemini_provider.NewClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
	case OpenAI:
		return openai_provider.NewClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
