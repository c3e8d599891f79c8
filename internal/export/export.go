// Package export hands a position to tools outside the editor: an analysis
// web page and the system clipboard.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DefaultAnalysisBase is the analysis board the position is opened on
const DefaultAnalysisBase = "https://lichess.org/analysis/"

// ErrClipboardUnavailable is returned when the platform has no clipboard utility
var ErrClipboardUnavailable = errors.New("export: clipboard unavailable")

// AnalysisURL appends the FEN, spaces turned into underscores, as the last path segment of base
func AnalysisURL(base, fen string) string {
	if base == "" {
		base = DefaultAnalysisBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.ReplaceAll(fen, " ", "_")
}

// Clipboard copies FEN strings to the system clipboard
type Clipboard struct {
	write       func(string) error
	unsupported bool
}

// NewClipboard returns a clipboard backed by the platform utility
func NewClipboard() *Clipboard {
	return &Clipboard{
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// Copy puts the full FEN on the clipboard as plain text
func (c *Clipboard) Copy(fen string) error {
	if c.unsupported {
		return ErrClipboardUnavailable
	}
	if err := c.write(fen); err != nil {
		return fmt.Errorf("export: copy to clipboard: %w", err)
	}
	return nil
}
