package vision

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when there is no screen to capture
var ErrNoDisplay = errors.New("vision: no active display")

// Capturer grabs a screen region as the board image
type Capturer struct {
	region  image.Rectangle
	prep    *Preprocessor
	grab    func(image.Rectangle) (*image.RGBA, error)
	display func() int
	mu      sync.Mutex
	last    time.Time
}

// NewCapturer creates a capturer for the configured region
func NewCapturer(cfg *Config, prep *Preprocessor) *Capturer {
	return &Capturer{
		region:  cfg.CaptureRegion.ToRectangle(),
		prep:    prep,
		grab:    screenshot.CaptureRect,
		display: screenshot.NumActiveDisplays,
	}
}

// Region returns the captured screen rectangle
func (c *Capturer) Region() image.Rectangle {
	return c.region
}

// CaptureFrame captures the current screen region
func (c *Capturer) CaptureFrame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.display() == 0 {
		return nil, ErrNoDisplay
	}

	img, err := c.grab(c.region)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	c.last = time.Now()
	return img, nil
}

// Capture grabs the region and prepares it for analysis
func (c *Capturer) Capture() (Image, error) {
	frame, err := c.CaptureFrame()
	if err != nil {
		return Image{}, err
	}
	return c.prep.PrepareImage(frame)
}

// LastCapture returns when the last frame was taken
func (c *Capturer) LastCapture() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
