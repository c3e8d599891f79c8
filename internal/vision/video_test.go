package vision

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveFrame(t *testing.T) {
	tests := []struct {
		frame, count, want int
	}{
		{0, 100, 0},
		{10, 100, 10},
		{-1, 100, 99},
		{-100, 100, 0},
		{-500, 100, 0},
		{500, 100, 99},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := ResolveFrame(tt.frame, tt.count); got != tt.want {
			t.Errorf("ResolveFrame(%d, %d) = %d, want %d", tt.frame, tt.count, got, tt.want)
		}
	}
}

func TestNewVideoSourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp4")

	_, err := NewVideoSource(path, -1, NewPreprocessor(DefaultConfig()))
	if !errors.Is(err, ErrVideo) {
		t.Fatalf("Expected ErrVideo, got %v", err)
	}
}

func TestVideoInfoString(t *testing.T) {
	info := VideoInfo{FPS: 30, FrameCount: 900, Width: 1280, Height: 720, Duration: 30 * time.Second}

	got := info.String()
	for _, want := range []string{"1280x720", "30.00 fps", "900 frames", "30s"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %q", want, got)
		}
	}
}
