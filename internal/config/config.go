// Package config loads quill's configuration from a TOML file with
// QUILL_* environment variable overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned while loading or validating configuration.
var (
	ErrBadWidth    = errors.New("wrap width must be at least 1")
	ErrBadProvider = errors.New("unknown AI provider")
	ErrBadInterval = errors.New("autosave interval must be positive")
)

// Config is the full application configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	AI      AIConfig      `toml:"ai"`
	Logging LoggingConfig `toml:"logging"`
	Paths   PathsConfig   `toml:"paths"`
}

// EditorConfig controls the editing surface.
type EditorConfig struct {
	// Width is the wrap column for the line-wrapping serializer.
	Width int `toml:"width"`

	// Autosave enables the debounced background save.
	Autosave bool `toml:"autosave"`

	// AutosaveSeconds is the quiet period before an autosave fires.
	AutosaveSeconds int `toml:"autosave_seconds"`
}

// AIConfig selects and parameterizes the transform provider. API keys
// are never read from the file; they come from the environment only.
type AIConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`

	// Allowance seeds the credit meter for a fresh install.
	Allowance int `toml:"allowance"`

	AnthropicKey string `toml:"-"`
	OpenAIKey    string `toml:"-"`
	GeminiKey    string `toml:"-"`
}

// LoggingConfig controls the application log.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// PathsConfig locates the user data files.
type PathsConfig struct {
	// DataDir holds the credit meter and other per-user state.
	DataDir string `toml:"data_dir"`

	// CommandsFile is the optional Lua file defining extra commands.
	CommandsFile string `toml:"commands_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := ".quill"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".quill")
	}
	return Config{
		Editor: EditorConfig{
			Width:           80,
			Autosave:        true,
			AutosaveSeconds: 10,
		},
		AI: AIConfig{
			Provider:  "anthropic",
			Allowance: 100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Paths: PathsConfig{
			DataDir:      dataDir,
			CommandsFile: filepath.Join(dataDir, "commands.lua"),
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "quill", "config.toml")
	}
	return "quill.toml"
}

// Load reads the TOML file at path, layers QUILL_* environment
// overrides on top of the defaults, and validates the result. A missing
// file is not an error: the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus environment.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays QUILL_* environment variables. The lookup function
// is injectable for tests.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("QUILL_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Editor.Width = n
		}
	}
	if v, ok := lookup("QUILL_AUTOSAVE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Editor.Autosave = b
		}
	}
	if v, ok := lookup("QUILL_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("QUILL_LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := lookup("QUILL_AI_PROVIDER"); ok {
		c.AI.Provider = v
	}
	if v, ok := lookup("QUILL_AI_MODEL"); ok {
		c.AI.Model = v
	}
	if v, ok := lookup("QUILL_DATA_DIR"); ok {
		c.Paths.DataDir = v
	}
	if v, ok := lookup("QUILL_COMMANDS_FILE"); ok {
		c.Paths.CommandsFile = v
	}
	if v, ok := lookup("QUILL_ANTHROPIC_KEY"); ok {
		c.AI.AnthropicKey = v
	}
	if v, ok := lookup("QUILL_OPENAI_KEY"); ok {
		c.AI.OpenAIKey = v
	}
	if v, ok := lookup("QUILL_GEMINI_KEY"); ok {
		c.AI.GeminiKey = v
	}
}

// Validate checks the configuration for values the editor cannot run
// with.
func (c *Config) Validate() error {
	if c.Editor.Width < 1 {
		return fmt.Errorf("%w: %d", ErrBadWidth, c.Editor.Width)
	}
	if c.Editor.Autosave && c.Editor.AutosaveSeconds < 1 {
		return fmt.Errorf("%w: %d", ErrBadInterval, c.Editor.AutosaveSeconds)
	}
	switch c.AI.Provider {
	case "anthropic", "openai", "gemini", "none":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrBadProvider, c.AI.Provider)
	}
}

// CreditsPath returns the credit meter file location under DataDir.
func (c *Config) CreditsPath() string {
	return filepath.Join(c.Paths.DataDir, "credits.json")
}
