package iface

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/thyrook/boardscan/internal/board"
	"github.com/thyrook/boardscan/internal/editor"
)

// CLI provides command-line interface utilities
type CLI struct {
	out   io.Writer
	err   io.Writer
	quiet bool
}

// NewCLI creates a new CLI interface printing to stdout and stderr
func NewCLI(quiet bool) *CLI {
	return NewCLIWriter(os.Stdout, os.Stderr, quiet)
}

// NewCLIWriter creates a CLI printing to the given writers
func NewCLIWriter(out, errOut io.Writer, quiet bool) *CLI {
	return &CLI{
		out:   out,
		err:   errOut,
		quiet: quiet,
	}
}

// PrintBanner displays the application banner
func (c *CLI) PrintBanner() {
	if c.quiet {
		return
	}

	banner := `
╔══════════════════════════════════════════════╗
║                                              ║
║   boardscan                                  ║
║   chess position scanner and board editor    ║
║                                              ║
╚══════════════════════════════════════════════╝
`
	fmt.Fprintln(c.out, banner)
}

// PrintModeHeader displays the mode-specific header
func (c *CLI) PrintModeHeader(mode string) {
	if c.quiet {
		return
	}

	var header string
	switch mode {
	case "scan":
		header = `
SCAN MODE
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
Reading the position from an image.
`
	case "fen":
		header = `
FEN MODE
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
Normalizing a position.
`
	default:
		header = fmt.Sprintf("\n%s MODE\n", strings.ToUpper(mode))
	}

	fmt.Fprintln(c.out, header)
}

// PrintBoard prints the editor's board as a diagram followed by its FEN
func (c *CLI) PrintBoard(s editor.State) {
	if c.quiet {
		fmt.Fprintln(c.out, s.FEN())
		return
	}

	fmt.Fprintln(c.out, s.Board.Diagram(s.Flipped))
	fmt.Fprintf(c.out, "\n%s to move\n", s.ActiveColor.Name())
	fmt.Fprintf(c.out, "FEN: %s\n", s.FEN())
}

// PrintPosition prints a bare position without editor state
func (c *CLI) PrintPosition(b board.Board, active board.Color) {
	s := editor.NewState()
	s.Board = b
	s.ActiveColor = active
	c.PrintBoard(s)
}

// PrintURL prints the analysis link
func (c *CLI) PrintURL(url string) {
	if c.quiet {
		fmt.Fprintln(c.out, url)
		return
	}
	fmt.Fprintf(c.out, "Analyze: %s\n", url)
}

// PrintStatus prints a status message
func (c *CLI) PrintStatus(message string, level string) {
	if c.quiet && level != "error" {
		return
	}

	var prefix string
	switch level {
	case "info":
		prefix = "ℹ️"
	case "success":
		prefix = "✅"
	case "warning":
		prefix = "⚠️"
	case "error":
		prefix = "❌"
	default:
		prefix = "•"
	}

	fmt.Fprintf(c.out, "%s %s\n", prefix, message)
}

// PrintScanStats prints the session's scan counters
func (c *CLI) PrintScanStats(stats editor.Statistics) {
	if c.quiet {
		return
	}

	fmt.Fprintf(c.out, "Scans: %d  Failures: %d  Rejected: %d  Last: %s\n",
		stats.Scans, stats.Failures, stats.Rejected, stats.LastDuration.Round(time.Millisecond))
}

// PrintError prints an error message
func (c *CLI) PrintError(err error) {
	fmt.Fprintf(c.err, "Error: %v\n", err)
}

// PrintWarning prints a warning message
func (c *CLI) PrintWarning(message string) {
	if !c.quiet {
		fmt.Fprintf(c.out, "⚠️  Warning: %s\n", message)
	}
}

// PrintSeparator prints a visual separator
func (c *CLI) PrintSeparator() {
	if !c.quiet {
		fmt.Fprintln(c.out, strings.Repeat("━", 70))
	}
}
