package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/export"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Overwrite policies for existing output files.
const (
	OverwritePrompt = "prompt"
	OverwriteAlways = "always"
	OverwriteNever  = "never"
)

// Output holds serialization parameters. An empty Format means the output
// file extension decides.
type Output struct {
	Format       string `toml:"format"`
	Indent       int    `toml:"indent"`
	Overwrite    string `toml:"overwrite"`
	CharsPerLine int    `toml:"chars_per_line"`
}

// Batch holds multi-file conversion parameters.
type Batch struct {
	MaxConcurrent int  `toml:"max_concurrent"`
	NoAsync       bool `toml:"no_async"`
}

// Config holds the full application configuration.
type Config struct {
	LogLevel string `toml:"log_level"`
	Output   Output `toml:"output"`
	Batch    Batch  `toml:"batch"`
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Output: Output{
			Indent:       4,
			Overwrite:    OverwritePrompt,
			CharsPerLine: 42,
		},
		Batch: Batch{
			MaxConcurrent: 4,
		},
	}
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vtt2json/config.toml")
}

// Load reads the configuration file at path, or the default locations when
// path is empty. An explicit path must exist; missing default files are not
// an error and defaults apply. The returned path is the file that was (or
// would have been) read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s: %w", expanded, fs.ErrNotExist)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("vtt2json.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Output.Overwrite = strings.ToLower(strings.TrimSpace(c.Output.Overwrite))
	if c.Output.Overwrite == "" {
		c.Output.Overwrite = OverwritePrompt
	}
	if c.Batch.MaxConcurrent <= 0 {
		c.Batch.MaxConcurrent = 1
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported level %q", c.LogLevel)
	}
	if c.Output.Format != "" {
		if _, err := export.ParseFormat(c.Output.Format); err != nil {
			return fmt.Errorf("output.format: %w", err)
		}
	}
	switch c.Output.Overwrite {
	case OverwritePrompt, OverwriteAlways, OverwriteNever:
	default:
		return fmt.Errorf("output.overwrite: must be prompt, always or never, got %q", c.Output.Overwrite)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("output.indent: must be between 0 and 16, got %d", c.Output.Indent)
	}
	if c.Output.CharsPerLine < 0 {
		return fmt.Errorf("output.chars_per_line: must not be negative, got %d", c.Output.CharsPerLine)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file %s already exists", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	return filepath.Abs(pathValue)
}
