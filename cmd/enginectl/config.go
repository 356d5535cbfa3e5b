package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// cliConfig is read from ~/.config/enginectl/config.toml; environment
// variables override the file so the CLI works unchanged next to a
// configured bot deployment.
type cliConfig struct {
	DatabaseURL   string `toml:"database_url"`
	GeminiBaseURL string `toml:"gemini_base_url"`
	GeminiAPIKey  string `toml:"gemini_api_key"`
	KrokiURL      string `toml:"kroki_url"`
}

func loadCLIConfig() (*cliConfig, error) {
	cfg := &cliConfig{
		GeminiBaseURL: "https://generativelanguage.googleapis.com",
		KrokiURL:      "https://kroki.io",
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	cfgPath := filepath.Join(home, ".config", "enginectl", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("KROKI_URL"); v != "" {
		cfg.KrokiURL = v
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url not set (config.toml or DATABASE_URL)")
	}
	return cfg, nil
}
