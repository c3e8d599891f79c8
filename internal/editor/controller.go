package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/thyrook/boardscan/internal/vision"
)

// ErrScanInProgress is returned when a scan is requested while one is running
var ErrScanInProgress = errors.New("editor: scan already in progress")

// Statistics counts scan outcomes for the session
type Statistics struct {
	Scans        int
	Failures     int
	Rejected     int
	LastDuration time.Duration
}

// Controller owns the editor state. Every mutation goes through Dispatch or Scan.
type Controller struct {
	analyzer vision.Analyzer
	logger   *zap.Logger

	mu    sync.Mutex
	state State
	stats Statistics
}

// Option customizes a Controller
type Option func(*Controller)

// WithLogger sets the logger used for scan outcomes
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithColorStrategy selects how imported FENs set the side to move
func WithColorStrategy(s ColorStrategy) Option {
	return func(c *Controller) {
		c.state.Strategy = s
	}
}

// WithInitialFEN starts the editor from a position other than the standard one
func WithInitialFEN(fen string) Option {
	return func(c *Controller) {
		if fen != "" {
			c.state = Apply(c.state, Import{FEN: fen})
		}
	}
}

// NewController creates a controller. analyzer may be nil, which disables scanning.
func NewController(analyzer vision.Analyzer, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		logger:   zap.NewNop(),
		state:    NewState(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.state, nil)
}

// Dispatch applies an event and returns the resulting state
func (c *Controller) Dispatch(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Apply(c.state, e)
	return c.state
}

// Available reports whether scanning is possible
func (c *Controller) Available() bool {
	return c.analyzer != nil && c.analyzer.Available()
}

// Stats returns scan counters
func (c *Controller) Stats() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Scan sends img to the analyzer and loads the result. Only one scan may be in
// flight; a second call while busy returns ErrScanInProgress without waiting.
// On failure the board is left as it was and the state carries ScanFailedMessage.
func (c *Controller) Scan(ctx context.Context, img vision.Image) error {
	if !c.Available() {
		return vision.ErrUnavailable
	}

	c.mu.Lock()
	if c.state.Busy {
		c.stats.Rejected++
		c.mu.Unlock()
		return ErrScanInProgress
	}
	c.state = Apply(c.state, ScanStarted{})
	c.mu.Unlock()

	start := time.Now()
	fen, err := c.analyzer.AnalyzePosition(ctx, img)
	elapsed := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Scans++
	c.stats.LastDuration = elapsed
	if err != nil {
		c.stats.Failures++
		c.state = Apply(c.state, ScanFailed{Err: err})
		c.logger.Error("Scan failed",
			zap.Error(err),
			zap.Int("image_bytes", len(img.Data)),
			zap.Duration("elapsed", elapsed),
			zap.Int("total_failures", c.stats.Failures),
		)
		return fmt.Errorf("scan: %w", err)
	}

	c.state = Apply(c.state, ScanSucceeded{FEN: fen})
	c.logger.Info("Scan complete",
		zap.String("fen", fen),
		zap.String("active_color", c.state.ActiveColor.String()),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

// Fail records a scan that could not start, such as an unreadable image,
// with the same user-facing outcome as a failed analysis.
func (c *Controller) Fail(err error) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Error("Scan failed before analysis", zap.Error(err))
	if c.state.Busy {
		return c.state
	}
	c.stats.Failures++
	c.state = Apply(c.state, ScanFailed{Err: err})
	return c.state
}
