package vision

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when no API credential is configured
	ErrUnavailable = errors.New("vision: analysis unavailable")

	// ErrAnalysisFailed covers transport errors and unusable responses
	ErrAnalysisFailed = errors.New("vision: analysis failed")

	// ErrDecode is returned when an input image cannot be decoded
	ErrDecode = errors.New("vision: could not decode image")
)

// Image is an encoded image ready to send to an analyzer
type Image struct {
	Data     []byte
	MIMEType string
}

// Analyzer turns a board image into a FEN string.
// Implementations make a single attempt per call.
type Analyzer interface {
	AnalyzePosition(ctx context.Context, img Image) (string, error)
	Available() bool
}

// AnalyzerFunc adapts a function to the Analyzer interface. It is always available.
type AnalyzerFunc func(ctx context.Context, img Image) (string, error)

// AnalyzePosition calls f
func (f AnalyzerFunc) AnalyzePosition(ctx context.Context, img Image) (string, error) {
	return f(ctx, img)
}

// Available reports true
func (f AnalyzerFunc) Available() bool {
	return true
}
