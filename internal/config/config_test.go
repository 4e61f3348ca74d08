package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.REPL.Prompt != "ss> " {
		t.Fatalf("got prompt %q, want default", cfg.REPL.Prompt)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interpreter.MaxCallDepth != 1000 {
		t.Fatalf("got %d, want 1000", cfg.Interpreter.MaxCallDepth)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[repl]
prompt = ">> "

[interpreter]
max_call_depth = 50
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.REPL.Prompt != ">> " {
		t.Fatalf("got prompt %q, want '>> '", cfg.REPL.Prompt)
	}
	if cfg.Interpreter.MaxCallDepth != 50 {
		t.Fatalf("got %d, want 50", cfg.Interpreter.MaxCallDepth)
	}
	// Unset fields keep their defaults.
	if cfg.Theme.ErrorColor != "196" {
		t.Fatalf("got error color %q, want default", cfg.Theme.ErrorColor)
	}
}
