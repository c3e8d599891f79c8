package editor

import (
	"github.com/thyrook/boardscan/internal/board"
)

// Mode decides what a click on a square does
type Mode int

const (
	ModeMove Mode = iota
	ModeErase
	ModePlace
)

// String returns the mode label
func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "MOVE"
	case ModeErase:
		return "ERASE"
	case ModePlace:
		return "PLACE"
	default:
		return "UNKNOWN"
	}
}

// NoSelection marks that no square is selected
const NoSelection = -1

// ScanFailedMessage is shown for every analysis failure
const ScanFailedMessage = "Could not analyze image. Please try again."

// ColorStrategy picks how the side to move is read from an imported FEN
type ColorStrategy int

const (
	// ColorFromSubstring looks for a literal " b " anywhere in the text.
	ColorFromSubstring ColorStrategy = iota
	// ColorFromField reads the second whitespace separated field.
	ColorFromField
)

// ParseColorStrategy maps a config value to a strategy, defaulting to substring
func ParseColorStrategy(s string) ColorStrategy {
	if s == "field" {
		return ColorFromField
	}
	return ColorFromSubstring
}

// Resolve returns the side to move for a FEN according to the strategy
func (s ColorStrategy) Resolve(fen string) board.Color {
	if s == ColorFromField {
		return board.ParseActiveColor(fen)
	}
	return board.InferActiveColor(fen)
}

// State is the complete editor state. It is a value: Apply returns a new one.
type State struct {
	Board       board.Board
	Mode        Mode
	Selected    int
	Armed       *board.Piece
	Palette     board.Color
	ActiveColor board.Color
	Flipped     bool
	Busy        bool
	Err         string
	Strategy    ColorStrategy
}

// NewState returns the editor at the standard starting position
func NewState() State {
	return State{
		Board:       board.Initial(),
		Mode:        ModeMove,
		Selected:    NoSelection,
		Palette:     board.White,
		ActiveColor: board.White,
	}
}

// FEN encodes the board with the current side to move
func (s State) FEN() string {
	return board.Encode(s.Board, s.ActiveColor)
}

// HasSelection reports whether a square is selected in move mode
func (s State) HasSelection() bool {
	return s.Selected != NoSelection
}

// Event is a user gesture or scan outcome fed to Apply
type Event interface {
	apply(State) State
}

// Apply returns the state that results from handling e. s is not modified.
func Apply(s State, e Event) State {
	if e == nil {
		return s
	}
	if s.Armed != nil {
		armed := *s.Armed
		s.Armed = &armed
	}
	return e.apply(s)
}

// SetMode switches the edit mode. Any selection is dropped on every switch.
type SetMode struct{ Mode Mode }

func (e SetMode) apply(s State) State {
	s.Mode = e.Mode
	s.Selected = NoSelection
	switch e.Mode {
	case ModePlace:
		if s.Armed == nil {
			s.Armed = &board.Piece{Type: board.Pawn, Color: s.Palette}
		}
	default:
		s.Armed = nil
	}
	return s
}

// Click is a tap on a square
type Click struct{ Square int }

func (e Click) apply(s State) State {
	if !board.ValidIndex(e.Square) {
		return s
	}
	switch s.Mode {
	case ModeMove:
		return s.clickMove(e.Square)
	case ModeErase:
		s.Board[e.Square] = board.Piece{}
	case ModePlace:
		if s.Armed != nil {
			s.Board[e.Square] = *s.Armed
		}
	}
	return s
}

func (s State) clickMove(sq int) State {
	switch {
	case s.Selected == sq:
		s.Selected = NoSelection
	case s.HasSelection():
		s.Board[sq] = s.Board[s.Selected]
		s.Board[s.Selected] = board.Piece{}
		s.Selected = NoSelection
	case !s.Board[sq].IsEmpty():
		s.Selected = sq
	}
	return s
}

// Arm picks the piece type placed in PLACE mode, in the palette color
type Arm struct{ Type board.PieceType }

func (e Arm) apply(s State) State {
	if !e.Type.Valid() {
		return s
	}
	s.Armed = &board.Piece{Type: e.Type, Color: s.Palette}
	return s
}

// SetPalette changes the color used for arming. An armed piece follows it.
type SetPalette struct{ Color board.Color }

func (e SetPalette) apply(s State) State {
	if !e.Color.Valid() {
		return s
	}
	s.Palette = e.Color
	if s.Armed != nil {
		s.Armed.Color = e.Color
	}
	return s
}

// SetActiveColor sets the side to move
type SetActiveColor struct{ Color board.Color }

func (e SetActiveColor) apply(s State) State {
	if e.Color.Valid() {
		s.ActiveColor = e.Color
	}
	return s
}

// ToggleActiveColor flips the side to move
type ToggleActiveColor struct{}

func (ToggleActiveColor) apply(s State) State {
	s.ActiveColor = s.ActiveColor.Opposite()
	return s
}

// Reset restores the starting position
type Reset struct{}

func (Reset) apply(s State) State {
	s.Board = board.Initial()
	s.Selected = NoSelection
	return s
}

// Clear empties every square
type Clear struct{}

func (Clear) apply(s State) State {
	s.Board = board.Empty()
	s.Selected = NoSelection
	return s
}

// Rotate turns the position around by 180 degrees
type Rotate struct{}

func (Rotate) apply(s State) State {
	s.Board = board.Rotate180(s.Board)
	s.Selected = NoSelection
	return s
}

// Flip toggles the viewing side. The board itself is unchanged.
type Flip struct{}

func (Flip) apply(s State) State {
	s.Flipped = !s.Flipped
	return s
}

// Import replaces the board with a decoded FEN and takes its side to move
type Import struct{ FEN string }

func (e Import) apply(s State) State {
	s.Board = board.Decode(e.FEN)
	s.ActiveColor = s.Strategy.Resolve(e.FEN)
	s.Selected = NoSelection
	return s
}

// ScanStarted marks an analysis request as in flight
type ScanStarted struct{}

func (ScanStarted) apply(s State) State {
	s.Busy = true
	s.Err = ""
	return s
}

// ScanSucceeded loads the position returned by the analyzer
type ScanSucceeded struct{ FEN string }

func (e ScanSucceeded) apply(s State) State {
	s = Import{FEN: e.FEN}.apply(s)
	s.Busy = false
	s.Err = ""
	return s
}

// ScanFailed ends an analysis request without touching the board
type ScanFailed struct{ Err error }

func (ScanFailed) apply(s State) State {
	s.Busy = false
	s.Err = ScanFailedMessage
	return s
}
