package config_test

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/config"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "vtt2json", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}

	def := config.Default()
	if cfg.Output != def.Output {
		t.Fatalf("output = %+v, want defaults %+v", cfg.Output, def.Output)
	}
	if cfg.Output.Indent != 4 {
		t.Fatalf("expected 4-space JSON indent by default, got %d", cfg.Output.Indent)
	}
	if cfg.Output.Overwrite != config.OverwritePrompt {
		t.Fatalf("expected prompt overwrite policy, got %q", cfg.Output.Overwrite)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", cfg.SlogLevel())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `log_level = " DEBUG "

[output]
format = "YAML"
indent = 2
overwrite = "always"

[batch]
max_concurrent = 0
no_async = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.LogLevel != "debug" || cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.Indent != 2 || cfg.Output.Overwrite != config.OverwriteAlways {
		t.Fatalf("unexpected output section: %+v", cfg.Output)
	}
	// Unset keys keep their defaults.
	if cfg.Output.CharsPerLine != 42 {
		t.Fatalf("chars_per_line = %d, want default 42", cfg.Output.CharsPerLine)
	}
	if cfg.Batch.MaxConcurrent != 1 || !cfg.Batch.NoAsync {
		t.Fatalf("unexpected batch section: %+v", cfg.Batch)
	}
}

func TestLoadProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("vtt2json.toml", []byte("[output]\nindent = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "vtt2json.toml" {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Output.Indent != 0 {
		t.Fatalf("indent = %d, want 0", cfg.Output.Indent)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.toml")
	_, _, _, err := config.Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load(%q) error = %v, want fs.ErrNotExist", path, err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the missing file", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[output]\nindnet = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if _, ok := parsed["output"]; !ok {
		t.Fatal("sample config missing [output] section")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil || !exists {
		t.Fatalf("sample config does not load: exists=%v err=%v", exists, err)
	}
	if cfg.Output != config.Default().Output {
		t.Fatalf("sample output section differs from defaults: %+v", cfg.Output)
	}

	if err := config.CreateSample(path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"log level", func(c *config.Config) { c.LogLevel = "trace" }, "log_level"},
		{"format", func(c *config.Config) { c.Output.Format = "docx" }, "output.format"},
		{"overwrite", func(c *config.Config) { c.Output.Overwrite = "sometimes" }, "output.overwrite"},
		{"indent", func(c *config.Config) { c.Output.Indent = -1 }, "output.indent"},
		{"chars per line", func(c *config.Config) { c.Output.CharsPerLine = -5 }, "output.chars_per_line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}
