// Package config handles loading and persisting user configuration for
// chatcmd. Configuration lives in ~/.chatcmd/config.yaml; API keys may also
// come from the conventional environment variables, which take precedence
// over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/J-DubApps/get-chat-cmd/internal/provider"
)

const (
	ConfigDirName  = ".chatcmd"
	ConfigFileName = "config.yaml"
)

// Environment variable overrides.
const (
	envOpenRouterKey = "OPENROUTER_API_KEY"
	envOpenAIKey     = "OPENAI_API_KEY"
	envAnthropicKey  = "ANTHROPIC_API_KEY"
	envLocalURL      = "CHATCMD_LOCAL_URL"
	envModel         = "CHATCMD_MODEL"
)

// Provider holds the configuration for one hosted provider.
type Provider struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// Local holds the configuration for a local OpenAI-compatible server.
type Local struct {
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// Config is the application configuration, loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	DefaultProvider string   `yaml:"default_provider,omitempty"`
	Clipboard       *bool    `yaml:"clipboard,omitempty"`
	OpenRouter      Provider `yaml:"openrouter,omitempty"`
	OpenAI          Provider `yaml:"openai,omitempty"`
	Anthropic       Provider `yaml:"anthropic,omitempty"`
	Local           Local    `yaml:"local,omitempty"`
}

// ClipboardEnabled reports whether the generated command should be placed on
// the clipboard. Defaults to on when the config never mentions it.
func (c *Config) ClipboardEnabled() bool {
	return c.Clipboard == nil || *c.Clipboard
}

// Settings assembles the per-provider settings the adapter needs.
func (c *Config) Settings(tag provider.Tag) provider.Settings {
	switch tag {
	case provider.OpenRouter:
		return provider.Settings{APIKey: c.OpenRouter.APIKey, Model: c.OpenRouter.Model}
	case provider.OpenAI:
		return provider.Settings{APIKey: c.OpenAI.APIKey, Model: c.OpenAI.Model}
	case provider.Anthropic:
		return provider.Settings{APIKey: c.Anthropic.APIKey, Model: c.Anthropic.Model}
	case provider.Local:
		return provider.Settings{APIKey: c.Local.APIKey, Model: c.Local.Model, BaseURL: c.Local.BaseURL}
	}
	return provider.Settings{}
}

// GetConfigDir returns the path to the config directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the configuration file if present and overlays environment
// variables. A missing file is not an error; credentials supplied purely via
// the environment still work.
func Load() (*Config, error) {
	cfg := &Config{}

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv(envOpenRouterKey); key != "" {
		cfg.OpenRouter.APIKey = key
	}
	if key := os.Getenv(envOpenAIKey); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if key := os.Getenv(envAnthropicKey); key != "" {
		cfg.Anthropic.APIKey = key
	}
	if url := os.Getenv(envLocalURL); url != "" {
		cfg.Local.BaseURL = url
	}
	if model := os.Getenv(envModel); model != "" {
		cfg.OpenRouter.Model = model
		cfg.OpenAI.Model = model
		cfg.Anthropic.Model = model
		cfg.Local.Model = model
	}
}

// Save writes the configuration to disk. The file holds API keys, so it is
// written owner-only.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if a configuration file exists.
func Exists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
