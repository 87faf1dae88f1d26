package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harunnryd/chatbot/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigInitCmd(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, configInitCmd.RunE(cmd, nil))

	configPath := filepath.Join(tmpDir, ".chatbot", "config.yaml")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: gpt-4o-mini")
	assert.Contains(t, out.String(), "Initialized config at "+configPath)

	out.Reset()
	require.NoError(t, configInitCmd.RunE(cmd, nil), "init should succeed when config exists")
	assert.Contains(t, out.String(), "Config already exists")
}

func TestEmbeddedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("OPENAI_API_KEY", "")

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, embeddedDefaultConfig, 0644))

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.Flags().Set("config", configPath))

	loaded, err := config.Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModelName, loaded.Model.ModelName())
	assert.InDelta(t, config.DefaultModelTemperature, loaded.Model.Temperature, 1e-9)
	assert.Equal(t, "OPENAI_API_KEY", loaded.Model.CredentialEnv())
}

func TestConfigViewRedactsKey(t *testing.T) {
	cfg = &config.Config{Model: config.ModelConfig{Provider: "openai", Name: "gpt-4o-mini", APIKey: "sk-secret-123456"}}
	t.Cleanup(func() { cfg = nil })

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, configViewCmd.RunE(cmd, nil))

	var decoded config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "sk************56", decoded.Model.APIKey)
	assert.Equal(t, "gpt-4o-mini", decoded.Model.Name)
	assert.Equal(t, "sk-secret-123456", cfg.Model.APIKey, "original config must not be modified")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "****", maskSecret("abcd"))
	assert.Equal(t, "ab*de", maskSecret("abcde"))
}
