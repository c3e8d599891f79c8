package board

import "unicode"

// Color is the side a piece belongs to, encoded with its FEN letter
type Color byte

const (
	White Color = 'w'
	Black Color = 'b'
)

// Valid reports whether c is one of the two FEN side letters
func (c Color) Valid() bool {
	return c == White || c == Black
}

// Opposite returns the other side
func (c Color) Opposite() Color {
	if c == Black {
		return White
	}
	return Black
}

// String returns the FEN side letter
func (c Color) String() string {
	if !c.Valid() {
		return string(White)
	}
	return string(c)
}

// Name returns a human readable side name
func (c Color) Name() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// PieceType identifies a chess piece by its lowercase FEN letter.
// The zero value marks an empty square.
type PieceType byte

const (
	NoPiece PieceType = 0
	Pawn    PieceType = 'p'
	Knight  PieceType = 'n'
	Bishop  PieceType = 'b'
	Rook    PieceType = 'r'
	Queen   PieceType = 'q'
	King    PieceType = 'k'
)

// PieceTypes lists every piece type in palette order
var PieceTypes = []PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// Valid reports whether t is a real piece type
func (t PieceType) Valid() bool {
	switch t {
	case Pawn, Knight, Bishop, Rook, Queen, King:
		return true
	default:
		return false
	}
}

// Name returns the English piece name
func (t PieceType) Name() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is an immutable (type, color) pair. The zero value is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

// NewPiece builds a piece value
func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

// IsEmpty reports whether the slot holds no piece
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Letter returns the FEN letter, uppercase for white. Empty squares return 0.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return 0
	}
	if p.Color == White {
		return byte(unicode.ToUpper(rune(p.Type)))
	}
	return byte(p.Type)
}

// String returns the FEN letter or "." for an empty square
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	return string(p.Letter())
}

// PieceFromLetter decodes a FEN piece letter. Case selects the color.
func PieceFromLetter(r rune) (Piece, bool) {
	if r > unicode.MaxASCII {
		return Piece{}, false
	}
	t := PieceType(unicode.ToLower(r))
	if !t.Valid() {
		return Piece{}, false
	}
	color := Black
	if unicode.IsUpper(r) {
		color = White
	}
	return Piece{Type: t, Color: color}, true
}
