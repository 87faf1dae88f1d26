package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harunnryd/chatbot/internal/pathutil"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Model   ModelConfig   `koanf:"model" yaml:"model"`
	Prompts PromptsConfig `koanf:"prompts" yaml:"prompts"`
}

type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// ModelConfig selects the completion endpoint. APIKey is normally left empty so the
// credential is read from APIKeyEnv when a request is made.
type ModelConfig struct {
	Provider    string  `koanf:"provider" yaml:"provider"`
	Name        string  `koanf:"name" yaml:"name"`
	Temperature float64 `koanf:"temperature" yaml:"temperature"`
	BaseURL     string  `koanf:"base_url" yaml:"base_url"`
	APIKey      string  `koanf:"api_key" yaml:"api_key"`
	APIKeyEnv   string  `koanf:"api_key_env" yaml:"api_key_env"`
}

type PromptsConfig struct {
	System      string `koanf:"system" yaml:"system"`
	User        string `koanf:"user" yaml:"user"`
	EmailSystem string `koanf:"email_system" yaml:"email_system"`
}

const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

const (
	EnvPrefix                = "CHATBOT_"
	DefaultLogLevel          = "info"
	DefaultModelProvider     = ProviderOpenAI
	DefaultModelName         = "gpt-4o-mini"
	DefaultOllamaModel       = "llama3.2"
	DefaultAnthropicModel    = "claude-3-7-sonnet-latest"
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultModelTemperature  = 0.7
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
	DefaultOllamaBaseURL     = "http://localhost:11434/v1"
	DefaultOllamaAPIKey      = "ollama"
	DefaultOpenAIKeyEnv      = "OPENAI_API_KEY"
	DefaultAnthropicKeyEnv   = "ANTHROPIC_API_KEY"
	DefaultGeminiKeyEnv      = "GEMINI_API_KEY"
	DefaultSystemPrompt      = "You are a helpful assistant."
	DefaultUserPrompt        = "Hello, who won the FIFA World Cup in 2018?"
	DefaultEmailSystemPrompt = "You are an experienced assistant who writes clear, professional, and helpful real-world emails."
)

// DefaultConfigPath is where Load looks when --config is not given.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatbot", "config.yaml"), nil
}

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"log.level":            DefaultLogLevel,
		"log.file":             "",
		"model.provider":       DefaultModelProvider,
		"model.name":           "",
		"model.temperature":    DefaultModelTemperature,
		"model.base_url":       "",
		"model.api_key":        "",
		"model.api_key_env":    "",
		"prompts.system":       DefaultSystemPrompt,
		"prompts.user":         DefaultUserPrompt,
		"prompts.email_system": DefaultEmailSystemPrompt,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		expanded, err := pathutil.Expand(configPath)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(expanded), yaml.Parser()); err != nil {
			return nil, err
		}
	} else if globalPath, err := DefaultConfigPath(); err == nil {
		if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
			slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
		}
	}

	// Environment Variables: CHATBOT_MODEL_BASE_URL -> model.base_url
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	// CLI Flags
	if cmd != nil {
		if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Model.Provider = strings.ToLower(strings.TrimSpace(cfg.Model.Provider))
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = DefaultModelProvider
	}

	logFile, err := pathutil.Expand(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	cfg.Log.File = logFile

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// CredentialEnv names the environment variable holding the API key for the configured provider.
func (m ModelConfig) CredentialEnv() string {
	if name := strings.TrimSpace(m.APIKeyEnv); name != "" {
		return name
	}
	switch m.Provider {
	case ProviderAnthropic:
		return DefaultAnthropicKeyEnv
	case ProviderGemini:
		return DefaultGeminiKeyEnv
	case ProviderOllama:
		return ""
	default:
		return DefaultOpenAIKeyEnv
	}
}

// Credential resolves the API key at call time: explicit config value first, then the
// provider's environment variable. Ollama falls back to its placeholder key.
func (m ModelConfig) Credential() string {
	if key := strings.TrimSpace(m.APIKey); key != "" {
		return key
	}
	if name := m.CredentialEnv(); name != "" {
		return strings.TrimSpace(os.Getenv(name))
	}
	if m.Provider == ProviderOllama {
		return DefaultOllamaAPIKey
	}
	return ""
}

// ModelName returns the configured model, or the provider's own default when none is named.
func (m ModelConfig) ModelName() string {
	if name := strings.TrimSpace(m.Name); name != "" {
		return name
	}
	switch m.Provider {
	case ProviderOllama:
		return DefaultOllamaModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultModelName
	}
}
