// Package config loads SimpleScript's CLI/REPL configuration from a
// TOML file, falling back to defaults when it is missing.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is SimpleScript's on-disk configuration: REPL appearance and
// behavior, plus interpreter limits.
type Config struct {
	REPL struct {
		Prompt          string `toml:"prompt"`
		ContinuePrompt  string `toml:"continue_prompt"`
		HistoryFile     string `toml:"history_file"`
		EnableCompletion bool  `toml:"enable_completion"`
	} `toml:"repl"`

	Interpreter struct {
		MaxCallDepth int `toml:"max_call_depth"`
	} `toml:"interpreter"`

	Theme struct {
		PromptColor string `toml:"prompt_color"`
		ErrorColor  string `toml:"error_color"`
	} `toml:"theme"`
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.REPL.Prompt = "ss> "
	cfg.REPL.ContinuePrompt = "... "
	cfg.REPL.EnableCompletion = true
	cfg.Interpreter.MaxCallDepth = 1000
	cfg.Theme.PromptColor = "45"
	cfg.Theme.ErrorColor = "196"
	return cfg
}

// Load reads a TOML configuration file at path, falling back to
// Default() values for any field the file doesn't set. A missing file
// is not an error — it simply yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location,
// "$HOME/.simplescript/config.toml".
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".simplescript", "config.toml")
}
