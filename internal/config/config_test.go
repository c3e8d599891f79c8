package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/thyrook/boardscan/internal/board"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.AppName != "boardscan" {
		t.Errorf("Expected AppName 'boardscan', got %s", cfg.AppName)
	}

	if cfg.Version == "" {
		t.Error("Version not set")
	}

	if cfg.Vision.MaxDimension != 1024 {
		t.Errorf("Expected MaxDimension 1024, got %d", cfg.Vision.MaxDimension)
	}

	if cfg.Editor.InitialFEN != board.InitialFEN {
		t.Errorf("Expected initial FEN, got %s", cfg.Editor.InitialFEN)
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := DefaultConfig()

	// Valid config should pass
	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid config failed validation: %v", err)
	}

	// Test invalid jpeg quality
	cfg.Vision.JPEGQuality = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for invalid quality, got %v", err)
	}
	cfg.Vision.JPEGQuality = 70

	// Test invalid log level
	cfg.Interface.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid log level")
	}
	cfg.Interface.LogLevel = "info"

	// Test invalid analysis url
	cfg.Export.AnalysisBaseURL = "ftp://example.org/"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for non-http analysis url")
	}
	cfg.Export.AnalysisBaseURL = ""

	// Test invalid start square
	cfg.Editor.StartSquare = "e9"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for start square e9, got %v", err)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	for _, name := range []string{"test_config.json", "test_config.yaml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			cfg := DefaultConfig()
			cfg.AppName = "TestApp"
			cfg.Vision.ColorInference = "field"

			if err := cfg.Save(configPath); err != nil {
				t.Fatalf("Failed to save config: %v", err)
			}

			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				t.Fatal("Config file was not created")
			}

			loaded, err := Load(configPath)
			if err != nil {
				t.Fatalf("Failed to load config: %v", err)
			}

			if loaded.AppName != "TestApp" {
				t.Errorf("Expected AppName 'TestApp', got %s", loaded.AppName)
			}
			if loaded.Vision.ColorInference != "field" {
				t.Errorf("Expected field color inference, got %s", loaded.Vision.ColorInference)
			}
		})
	}
}

func TestLoadPartialYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("vision:\n  model: gemini-2.5-flash\n  jpeg_quality: 80\ninterface:\n  log_level: debug\n")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Vision.Model != "gemini-2.5-flash" {
		t.Errorf("Expected model override, got %s", cfg.Vision.Model)
	}
	if cfg.Vision.MaxDimension != 1024 {
		t.Errorf("Expected default max dimension, got %d", cfg.Vision.MaxDimension)
	}
	if cfg.Interface.LogLevel != "debug" {
		t.Errorf("Expected debug log level, got %s", cfg.Interface.LogLevel)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"vision": {"jpeg_quality": 500}}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(configPath); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Test with non-existent file
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("Missing file should fall back to defaults: %v", err)
	}
	if cfg.AppName != "boardscan" {
		t.Error("LoadOrDefault did not return default config")
	}

	// Test with existing file
	configPath := filepath.Join(t.TempDir(), "config.json")

	testCfg := DefaultConfig()
	testCfg.AppName = "CustomName"
	if err := testCfg.Save(configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadOrDefault(configPath)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if loaded.AppName != "CustomName" {
		t.Error("LoadOrDefault did not load existing config")
	}
}

func TestLoadOrDefaultReportsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{"yaml syntax", "config.yaml", "vision: [unclosed\n", false},
		{"json syntax", "config.json", "{\"vision\": ", false},
		{"misspelled log level", "config.yaml", "interface:\n  log_level: verbose\n", true},
		{"bad color inference", "config.yaml", "vision:\n  color_inference: sometimes\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			cfg, err := LoadOrDefault(path)
			if err == nil {
				t.Fatalf("Expected error, got config %+v", cfg)
			}
			if cfg != nil {
				t.Errorf("Expected no config alongside error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Interface.LogPath = filepath.Join(tmpDir, "logs", "test.log")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("Failed to ensure directories: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "logs")); os.IsNotExist(err) {
		t.Error("Log directory was not created")
	}
}
