package vision

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func newTestCapturer(displays int, grab func(image.Rectangle) (*image.RGBA, error)) *Capturer {
	cfg := DefaultConfig()
	c := NewCapturer(cfg, NewPreprocessor(cfg))
	c.display = func() int { return displays }
	c.grab = grab
	return c
}

func TestNewCapturer(t *testing.T) {
	cfg := DefaultConfig()
	capturer := NewCapturer(cfg, NewPreprocessor(cfg))
	if capturer == nil {
		t.Fatal("Failed to create capturer")
	}

	if capturer.Region() != image.Rect(100, 100, 900, 900) {
		t.Errorf("Unexpected capture region %v", capturer.Region())
	}
}

func TestCaptureWithoutDisplay(t *testing.T) {
	c := newTestCapturer(0, func(image.Rectangle) (*image.RGBA, error) {
		t.Fatal("grab should not be called without a display")
		return nil, nil
	})

	if _, err := c.CaptureFrame(); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("Expected ErrNoDisplay, got %v", err)
	}
}

func TestCaptureGrabError(t *testing.T) {
	boom := errors.New("boom")
	c := newTestCapturer(1, func(image.Rectangle) (*image.RGBA, error) {
		return nil, boom
	})

	if _, err := c.CaptureFrame(); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped grab error, got %v", err)
	}
	if !c.LastCapture().IsZero() {
		t.Error("Failed capture should not update the capture time")
	}
}

func TestCapturePreparesFrame(t *testing.T) {
	var gotRegion image.Rectangle
	c := newTestCapturer(1, func(r image.Rectangle) (*image.RGBA, error) {
		gotRegion = r
		img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
			}
		}
		return img, nil
	})

	img, err := c.Capture()
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if gotRegion != c.Region() {
		t.Errorf("Expected region %v, got %v", c.Region(), gotRegion)
	}
	if img.MIMEType != "image/jpeg" || len(img.Data) == 0 {
		t.Errorf("Expected encoded jpeg, got %q with %d bytes", img.MIMEType, len(img.Data))
	}
	if c.LastCapture().IsZero() {
		t.Error("Expected capture time to be recorded")
	}
}
