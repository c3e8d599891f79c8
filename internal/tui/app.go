// Package tui is the terminal board editor. It follows the bubbletea model:
// key presses become editor events, scans run as commands, and View renders
// the controller's current state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/thyrook/boardscan/internal/board"
	"github.com/thyrook/boardscan/internal/editor"
	"github.com/thyrook/boardscan/internal/export"
	"github.com/thyrook/boardscan/internal/vision"
)

// Source produces the image a scan analyzes, e.g. a file or a screen grab
type Source func() (vision.Image, error)

// Copier puts a FEN on the clipboard
type Copier interface {
	Copy(fen string) error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSource sets where scans read their image from
func WithSource(src Source) AppOption {
	return func(a *App) {
		a.source = src
	}
}

// WithCopier overrides the clipboard
func WithCopier(c Copier) AppOption {
	return func(a *App) {
		if c != nil {
			a.copier = c
		}
	}
}

// WithAnalysisBase sets the analysis site used for the URL
func WithAnalysisBase(base string) AppOption {
	return func(a *App) {
		a.analysisBase = base
	}
}

// WithStartSquare puts the cursor over a board index, e.g. from board.ParseSquare
func WithStartSquare(index int) AppOption {
	return func(a *App) {
		if board.ValidIndex(index) {
			a.cursor = board.ViewIndex(index, a.ctrl.State().Flipped)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

type scanDoneMsg struct {
	err error
}

// App is the editor model
type App struct {
	ctrl   *editor.Controller
	logger *zap.Logger

	source       Source
	copier       Copier
	analysisBase string

	keys  keyMap
	help  help.Model
	input textinput.Model

	// cursor is a display index; row 0 is the top of the screen
	cursor    int
	importing bool
	scanning  bool
	status    string
	url       string

	width  int
	height int
}

// NewApp creates the editor over ctrl
func NewApp(ctrl *editor.Controller, opts ...AppOption) *App {
	ti := textinput.New()
	ti.Placeholder = board.InitialFEN
	ti.Prompt = "FEN> "
	ti.CharLimit = 128
	ti.Cursor.SetMode(cursor.CursorStatic)

	a := &App{
		ctrl:         ctrl,
		logger:       zap.NewNop(),
		copier:       export.NewClipboard(),
		analysisBase: export.DefaultAnalysisBase,
		keys:         defaultKeyMap(),
		help:         help.New(),
		input:        ti,
		cursor:       52,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case scanDoneMsg:
		a.scanning = false
		a.url = ""
		switch {
		case msg.err == nil:
			a.status = "Position loaded from scan"
		case errors.Is(msg.err, editor.ErrScanInProgress):
			a.status = "A scan is already running"
		default:
			a.status = ""
		}
		return a, nil

	case tea.KeyMsg:
		if a.importing {
			return a.updateImport(msg)
		}
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.importing = false
		a.input.Blur()
		a.status = "Import cancelled"
		return a, nil
	case "enter":
		fen := strings.TrimSpace(a.input.Value())
		a.importing = false
		a.input.Blur()
		if fen == "" {
			a.status = "Import cancelled"
			return a, nil
		}
		s := a.ctrl.Dispatch(editor.Import{FEN: fen})
		a.url = ""
		a.status = "Imported " + s.FEN()
		a.logger.Info("Position imported", zap.String("fen", s.FEN()))
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Up):
		a.moveCursor(-8)
	case key.Matches(msg, k.Down):
		a.moveCursor(8)
	case key.Matches(msg, k.Left):
		if a.cursor%8 > 0 {
			a.cursor--
		}
	case key.Matches(msg, k.Right):
		if a.cursor%8 < 7 {
			a.cursor++
		}
	case key.Matches(msg, k.Click):
		a.click()
	case key.Matches(msg, k.Move):
		a.dispatch(editor.SetMode{Mode: editor.ModeMove}, "")
	case key.Matches(msg, k.Erase):
		a.dispatch(editor.SetMode{Mode: editor.ModeErase}, "")
	case key.Matches(msg, k.Place):
		a.dispatch(editor.SetMode{Mode: editor.ModePlace}, "")
	case key.Matches(msg, k.Arm):
		t := board.PieceTypes[msg.String()[0]-'1']
		if a.ctrl.State().Mode != editor.ModePlace {
			a.ctrl.Dispatch(editor.SetMode{Mode: editor.ModePlace})
		}
		a.dispatch(editor.Arm{Type: t}, "Armed "+t.Name())
	case key.Matches(msg, k.Palette):
		s := a.ctrl.State()
		a.dispatch(editor.SetPalette{Color: s.Palette.Opposite()}, "Placing "+s.Palette.Opposite().Name()+" pieces")
	case key.Matches(msg, k.Side):
		a.dispatch(editor.ToggleActiveColor{}, "")
	case key.Matches(msg, k.Rotate):
		a.dispatch(editor.Rotate{}, "Board rotated")
	case key.Matches(msg, k.Flip):
		a.dispatch(editor.Flip{}, "")
	case key.Matches(msg, k.Reset):
		a.dispatch(editor.Reset{}, "Initial position")
	case key.Matches(msg, k.Clear):
		a.dispatch(editor.Clear{}, "Board cleared")
	case key.Matches(msg, k.Import):
		a.importing = true
		a.input.SetValue("")
		return a, a.input.Focus()
	case key.Matches(msg, k.Scan):
		return a, a.startScan()
	case key.Matches(msg, k.Copy):
		a.copyFEN()
	case key.Matches(msg, k.URL):
		a.url = export.AnalysisURL(a.analysisBase, a.ctrl.State().FEN())
		a.status = ""
	case key.Matches(msg, k.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	next := a.cursor + delta
	if board.ValidIndex(next) {
		a.cursor = next
	}
}

func (a *App) dispatch(e editor.Event, status string) {
	a.ctrl.Dispatch(e)
	a.status = status
	a.url = ""
}

// Square returns the board index under the cursor
func (a *App) Square() int {
	return board.ViewIndex(a.cursor, a.ctrl.State().Flipped)
}

func (a *App) click() {
	sq := a.Square()
	a.dispatch(editor.Click{Square: sq}, "")
}

func (a *App) copyFEN() {
	fen := a.ctrl.State().FEN()
	if err := a.copier.Copy(fen); err != nil {
		a.logger.Warn("Clipboard copy failed", zap.Error(err))
		a.status = "Clipboard unavailable"
		return
	}
	a.status = "Copied " + fen
}

// startScan returns the command that runs a scan, or nil when scanning is
// disabled. A scan is disabled while one is running or without an analyzer.
func (a *App) startScan() tea.Cmd {
	switch {
	case a.scanning || a.ctrl.State().Busy:
		a.status = "A scan is already running"
		return nil
	case !a.ctrl.Available():
		a.status = "Scanning unavailable: no API key configured"
		return nil
	case a.source == nil:
		a.status = "Scanning unavailable: no image source"
		return nil
	}

	a.scanning = true
	a.status = ""
	a.url = ""
	ctrl, src := a.ctrl, a.source
	return func() tea.Msg {
		img, err := src()
		if err != nil {
			ctrl.Fail(err)
			return scanDoneMsg{err: err}
		}
		return scanDoneMsg{err: ctrl.Scan(context.Background(), img)}
	}
}

// View renders the editor
func (a *App) View() string {
	s := a.ctrl.State()

	boardView := panelStyle.Render(a.renderBoard(s))
	side := a.renderSidebar(s)

	var b strings.Builder
	b.WriteString(titleStyle.Render("♞ BOARDSCAN"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boardView, "  ", side))
	b.WriteString("\n")
	b.WriteString(fenStyle.Render(s.FEN()))
	b.WriteString("\n")
	if a.importing {
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}
	if line := a.statusLine(s); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderBoard(s editor.State) string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		first := board.ViewIndex(row*8, s.Flipped)
		b.WriteString(labelStyle.Render(string(board.SquareName(first)[1])))
		b.WriteString(" ")
		for col := 0; col < 8; col++ {
			display := row*8 + col
			sq := board.ViewIndex(display, s.Flipped)
			cell := " " + cellGlyph(s.Board[sq]) + " "

			style := lightSquare
			if (row+col)%2 == 1 {
				style = darkSquare
			}
			if sq == s.Selected {
				style = selectedSquare
			}
			if display == a.cursor {
				style = cursorSquare
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("  ")
	for col := 0; col < 8; col++ {
		file := board.SquareName(board.ViewIndex(56+col, s.Flipped))[0]
		b.WriteString(labelStyle.Render(" " + string(file) + " "))
	}
	return b.String()
}

func cellGlyph(p board.Piece) string {
	if p.IsEmpty() {
		return " "
	}
	return string(p.Letter())
}

func (a *App) renderSidebar(s editor.State) string {
	armed := "none"
	if s.Armed != nil {
		armed = s.Armed.Color.Name() + " " + s.Armed.Type.Name()
	}
	view := "white"
	if s.Flipped {
		view = "black"
	}
	lines := []string{
		fmt.Sprintf("Mode:    %s", s.Mode),
		fmt.Sprintf("Armed:   %s", armed),
		fmt.Sprintf("Palette: %s", s.Palette.Name()),
		fmt.Sprintf("To move: %s", s.ActiveColor.Name()),
		fmt.Sprintf("Cursor:  %s", board.SquareName(a.Square())),
		fmt.Sprintf("View:    %s side", view),
	}
	if s.HasSelection() {
		lines = append(lines, fmt.Sprintf("Picked:  %s", board.SquareName(s.Selected)))
	}
	return statusStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) statusLine(s editor.State) string {
	switch {
	case s.Busy || a.scanning:
		return busyStyle.Render("Analyzing position...")
	case s.Err != "" && a.status == "":
		return errorStyle.Render(s.Err)
	case a.url != "":
		return statusStyle.Render(a.url)
	case a.status != "":
		return statusStyle.Render(a.status)
	}
	return ""
}
