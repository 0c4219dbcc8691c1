// Package config loads formwiz settings from an optional TOML file and
// FORMWIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/formwiz/internal/llm"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	LLM      LLMConfig
	UI       UIConfig

	// File is the config file that was read, or "" if none was found.
	File string
}

// DatabaseConfig holds sqlite settings. An empty Path means the XDG default.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Splash        bool
	ToastDuration time.Duration
}

// LLMConfig holds review provider settings. An empty Provider means the
// provider is discovered from the standard API key variables.
type LLMConfig struct {
	Provider   string
	Timeout    time.Duration
	Anthropic  llm.Endpoint
	OpenAI     llm.Endpoint
	Gemini     llm.Endpoint
	OpenRouter llm.Endpoint
}

// Load reads configuration from file and env. path overrides the config
// file location; env var overrides use prefix FORMWIZ_.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := llm.DefaultConfig()
	v.SetDefault("database.path", "")
	v.SetDefault("log.path", defaultLogPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.splash", true)
	v.SetDefault("ui.toast_duration", "3s")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", defaults.Timeout.String())
	v.SetDefault("llm.anthropic.model", defaults.Anthropic.Model)
	v.SetDefault("llm.openai.model", defaults.OpenAI.Model)
	v.SetDefault("llm.gemini.model", defaults.Gemini.Model)
	v.SetDefault("llm.openrouter.model", defaults.OpenRouter.Model)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("FORMWIZ_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FORMWIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("database.path", "FORMWIZ_DB", "FORMWIZ_DATABASE_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := Config{
		File: v.ConfigFileUsed(),
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Log: LogConfig{
			Path:  v.GetString("log.path"),
			Level: v.GetString("log.level"),
		},
		UI: UIConfig{
			Splash:        v.GetBool("ui.splash"),
			ToastDuration: v.GetDuration("ui.toast_duration"),
		},
		LLM: LLMConfig{
			Provider:   v.GetString("llm.provider"),
			Timeout:    v.GetDuration("llm.timeout"),
			Anthropic:  providerConfig(v, "anthropic"),
			OpenAI:     providerConfig(v, "openai"),
			Gemini:     providerConfig(v, "gemini"),
			OpenRouter: providerConfig(v, "openrouter"),
		},
	}
	return c, nil
}

func providerConfig(v *viper.Viper, name string) llm.Endpoint {
	return llm.Endpoint{
		APIKey:  v.GetString("llm." + name + ".api_key"),
		Model:   v.GetString("llm." + name + ".model"),
		BaseURL: v.GetString("llm." + name + ".base_url"),
	}
}

// ProviderSettings converts the LLM section into an llm.Config. When no
// provider is configured it falls back to llm.DiscoverConfig; ok is false if
// nothing usable was found.
func (c Config) ProviderSettings() (llm.Config, bool) {
	if c.LLM.Provider == "" {
		cfg, ok := llm.DiscoverConfig()
		if ok && c.LLM.Timeout > 0 {
			cfg.Timeout = c.LLM.Timeout
		}
		return cfg, ok
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	overlay(&cfg.Anthropic, c.LLM.Anthropic)
	overlay(&cfg.OpenAI, c.LLM.OpenAI)
	overlay(&cfg.Gemini, c.LLM.Gemini)
	overlay(&cfg.OpenRouter, c.LLM.OpenRouter)
	return cfg, true
}

// overlay copies the non-empty fields of src onto dst.
func overlay(dst *llm.Endpoint, src llm.Endpoint) {
	dst.APIKey = src.APIKey
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
}

func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "formwiz")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "formwiz")
}

func defaultLogPath() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, _ := os.UserHomeDir()
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "formwiz", "formwiz.log")
}
