package model

import (
	"context"
	"fmt"

	"github.com/harunnryd/chatbot/internal/config"
	chatErrors "github.com/harunnryd/chatbot/internal/errors"
	anthropicProvider "github.com/harunnryd/chatbot/internal/model/providers/anthropic"
	geminiProvider "github.com/harunnryd/chatbot/internal/model/providers/gemini"
	openaiProvider "github.com/harunnryd/chatbot/internal/model/providers/openai"
)

// ProviderInfo describes a supported provider for listings.
type ProviderInfo struct {
	Name          string
	DefaultModel  string
	CredentialEnv string
	BaseURL       string
}

// Providers lists the provider types NewProvider understands.
func Providers() []ProviderInfo {
	return []ProviderInfo{
		{Name: config.ProviderOpenAI, DefaultModel: config.DefaultModelName, CredentialEnv: config.DefaultOpenAIKeyEnv, BaseURL: config.DefaultOpenAIBaseURL},
		{Name: config.ProviderOllama, DefaultModel: config.DefaultOllamaModel, CredentialEnv: "-", BaseURL: config.DefaultOllamaBaseURL},
		{Name: config.ProviderAnthropic, DefaultModel: config.DefaultAnthropicModel, CredentialEnv: config.DefaultAnthropicKeyEnv, BaseURL: "-"},
		{Name: config.ProviderGemini, DefaultModel: config.DefaultGeminiModel, CredentialEnv: config.DefaultGeminiKeyEnv, BaseURL: "-"},
	}
}

// NewProvider builds a client for cfg. The credential is resolved here, on every call,
// so a missing key surfaces as a configuration error before anything is sent.
func NewProvider(ctx context.Context, cfg config.ModelConfig) (Provider, error) {
	apiKey := cfg.Credential()

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		if apiKey == "" {
			return nil, chatErrors.Configuration(fmt.Sprintf("%s is not set", cfg.CredentialEnv()))
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultOpenAIBaseURL
		}
		return openaiProvider.New(apiKey, baseURL), nil

	case config.ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultOllamaBaseURL
		}
		return openaiProvider.New(apiKey, baseURL), nil

	case config.ProviderAnthropic:
		if apiKey == "" {
			return nil, chatErrors.Configuration(fmt.Sprintf("%s is not set", cfg.CredentialEnv()))
		}
		return anthropicProvider.New(apiKey, cfg.BaseURL), nil

	case config.ProviderGemini:
		if apiKey == "" {
			return nil, chatErrors.Configuration(fmt.Sprintf("%s is not set", cfg.CredentialEnv()))
		}
		provider, err := geminiProvider.New(ctx, apiKey, cfg.BaseURL)
		if err != nil {
			return nil, chatErrors.WrapWithCategory(err, "failed to create Gemini provider", chatErrors.ErrConfiguration)
		}
		return provider, nil

	default:
		return nil, chatErrors.Configuration(fmt.Sprintf("unknown provider type: %s", cfg.Provider))
	}
}
