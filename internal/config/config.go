package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thyrook/boardscan/internal/board"
	"github.com/thyrook/boardscan/internal/export"
	"github.com/thyrook/boardscan/internal/vision"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	AppName   string          `json:"app_name" yaml:"app_name"`
	Version   string          `json:"version" yaml:"version"`
	Vision    vision.Config   `json:"vision" yaml:"vision"`
	Export    ExportConfig    `json:"export" yaml:"export"`
	Editor    EditorConfig    `json:"editor" yaml:"editor"`
	Interface InterfaceConfig `json:"interface" yaml:"interface"`
}

// ExportConfig contains analysis site settings
type ExportConfig struct {
	AnalysisBaseURL string `json:"analysis_base_url" yaml:"analysis_base_url"`
}

// EditorConfig contains the board editor start-up settings
type EditorConfig struct {
	InitialFEN  string `json:"initial_fen" yaml:"initial_fen"`
	Flipped     bool   `json:"flipped" yaml:"flipped"`
	StartSquare string `json:"start_square" yaml:"start_square"`
}

// InterfaceConfig contains UI and logging settings
type InterfaceConfig struct {
	LogLevel string `json:"log_level" yaml:"log_level"`
	LogPath  string `json:"log_path" yaml:"log_path"`
	EnvFile  string `json:"env_file" yaml:"env_file"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		AppName: "boardscan",
		Version: "1.0.0",
		Vision:  *vision.DefaultConfig(),
		Export: ExportConfig{
			AnalysisBaseURL: export.DefaultAnalysisBase,
		},
		Editor: EditorConfig{
			InitialFEN:  board.InitialFEN,
			StartSquare: "e2",
		},
		Interface: InterfaceConfig{
			LogLevel: "info",
			LogPath:  "logs/boardscan.log",
			EnvFile:  ".env",
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads and parses the configuration file. Files ending in .yaml or .yml
// are read as YAML, anything else as JSON. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults only when the file does
// not exist. Parse and validation errors are returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a file in the format its extension implies
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Vision.Validate(); err != nil {
		return fmt.Errorf("%w: vision: %v", ErrInvalidConfig, err)
	}

	if c.Editor.StartSquare != "" {
		if _, err := board.ParseSquare(c.Editor.StartSquare); err != nil {
			return fmt.Errorf("%w: editor: %v", ErrInvalidConfig, err)
		}
	}

	switch c.Interface.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Interface.LogLevel)
	}

	if c.Export.AnalysisBaseURL != "" &&
		!strings.HasPrefix(c.Export.AnalysisBaseURL, "http://") &&
		!strings.HasPrefix(c.Export.AnalysisBaseURL, "https://") {
		return fmt.Errorf("%w: analysis base url must be http(s): %q", ErrInvalidConfig, c.Export.AnalysisBaseURL)
	}

	return nil
}

// EnsureDirectories creates the directories the configured paths live in
func (c *Config) EnsureDirectories() error {
	if c.Interface.LogPath == "" {
		return nil
	}
	dir := filepath.Dir(c.Interface.LogPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
