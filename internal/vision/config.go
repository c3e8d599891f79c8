package vision

import (
	"fmt"
	"image"
	"os"
)

// Config holds image capture, preprocessing and model settings
type Config struct {
	// Screen capture settings
	CaptureRegion CaptureRegion `json:"capture_region" yaml:"capture_region"`

	// Upload preprocessing
	MaxDimension int `json:"max_dimension" yaml:"max_dimension"` // Longest side in pixels after downscaling
	JPEGQuality  int `json:"jpeg_quality" yaml:"jpeg_quality"`   // 1-100

	// Model settings
	Model     string `json:"model" yaml:"model"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"` // Overrides the API endpoint
	APIKeyEnv string `json:"api_key_env" yaml:"api_key_env"`               // Environment variable holding the key

	// ColorInference is "substring" (look for " b ") or "field" (read the side field)
	ColorInference string `json:"color_inference" yaml:"color_inference"`
}

// CaptureRegion defines the screen area to capture
type CaptureRegion struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// ToRectangle converts CaptureRegion to image.Rectangle
func (cr CaptureRegion) ToRectangle() image.Rectangle {
	return image.Rect(cr.X, cr.Y, cr.X+cr.Width, cr.Y+cr.Height)
}

// DefaultConfig returns default vision configuration
func DefaultConfig() *Config {
	return &Config{
		CaptureRegion: CaptureRegion{
			X:      100,
			Y:      100,
			Width:  800,
			Height: 800,
		},
		MaxDimension:   1024,
		JPEGQuality:    70,
		Model:          DefaultModel,
		APIKeyEnv:      "GEMINI_API_KEY",
		ColorInference: "substring",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CaptureRegion.Width <= 0 || c.CaptureRegion.Height <= 0 {
		return fmt.Errorf("invalid capture region dimensions")
	}

	if c.MaxDimension < 64 || c.MaxDimension > 4096 {
		return fmt.Errorf("invalid max dimension: %d (must be 64-4096)", c.MaxDimension)
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality: %d (must be 1-100)", c.JPEGQuality)
	}

	if c.Model == "" {
		return fmt.Errorf("model name is required")
	}

	switch c.ColorInference {
	case "", "substring", "field":
	default:
		return fmt.Errorf("invalid color inference %q (must be substring or field)", c.ColorInference)
	}

	return nil
}

// APIKey looks up the credential in the environment. An empty result disables analysis.
func (c *Config) APIKey() string {
	if c.APIKeyEnv != "" {
		if key := os.Getenv(c.APIKeyEnv); key != "" {
			return key
		}
	}
	return os.Getenv("API_KEY")
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(
		"Vision Config:\n"+
			"  Capture Region: (%d,%d) %dx%d\n"+
			"  Max Dimension: %dpx\n"+
			"  JPEG Quality: %d\n"+
			"  Model: %s\n"+
			"  Color Inference: %s\n",
		c.CaptureRegion.X, c.CaptureRegion.Y,
		c.CaptureRegion.Width, c.CaptureRegion.Height,
		c.MaxDimension,
		c.JPEGQuality,
		c.Model,
		c.ColorInference,
	)
}
