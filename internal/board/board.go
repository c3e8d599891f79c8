package board

import (
	"fmt"
	"strings"
)

// Size is the number of squares on the board
const Size = 64

// Board holds one slot per square, indexed row-major from a8 (index 0) to h1 (index 63)
type Board [Size]Piece

// Empty returns a board with every slot empty
func Empty() Board {
	return Board{}
}

// Initial returns the standard starting position
func Initial() Board {
	return Decode(InitialFEN)
}

// Count returns the number of occupied squares
func (b Board) Count() int {
	n := 0
	for _, p := range b {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}

// String returns the FEN position field
func (b Board) String() string {
	fen := Encode(b, White)
	return fen[:strings.IndexByte(fen, ' ')]
}

// Diagram renders the board as eight text rows, rank 8 first.
// With flipped set the board is drawn from black's side.
func (b Board) Diagram(flipped bool) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			idx := ViewIndex(row*8+col, flipped)
			if col == 0 {
				fmt.Fprintf(&sb, "%c ", SquareName(idx)[1])
			}
			sb.WriteString(b[idx].String())
			if col < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < 8; col++ {
		sb.WriteByte(SquareName(ViewIndex(56+col, flipped))[0])
		if col < 7 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Rotate180 relocates every piece from index i to 63-i.
// Colors are left alone; this models turning the physical board around.
func Rotate180(b Board) Board {
	var out Board
	for i, p := range b {
		out[Size-1-i] = p
	}
	return out
}

// Row returns the board row of a square index, 0 being rank 8
func Row(index int) int {
	return index / 8
}

// Col returns the file column of a square index, 0 being the a-file
func Col(index int) int {
	return index % 8
}

// ValidIndex reports whether index names a square
func ValidIndex(index int) bool {
	return index >= 0 && index < Size
}

// SquareName maps a square index to algebraic notation. Index must be in [0,63].
func SquareName(index int) string {
	if !ValidIndex(index) {
		panic(fmt.Sprintf("board: square index %d out of range", index))
	}
	file := byte('a' + Col(index))
	rank := byte('0' + 8 - Row(index))
	return string([]byte{file, rank})
}

// ParseSquare is the inverse of SquareName
func ParseSquare(name string) (int, error) {
	if len(name) != 2 {
		return 0, fmt.Errorf("board: invalid square %q", name)
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("board: invalid square %q", name)
	}
	row := 8 - int(rank-'0')
	return row*8 + int(file-'a'), nil
}

// ViewIndex maps a display position to the board index shown there
func ViewIndex(display int, flipped bool) int {
	if flipped {
		return Size - 1 - display
	}
	return display
}
