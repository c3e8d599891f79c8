package board

import (
	"strconv"
	"strings"
)

// InitialFEN is the FEN record of the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenSuffix follows the side letter in every encoded record. Castling rights,
// en passant and the clocks are not tracked by the editor.
const fenSuffix = " - - 0 1"

// Decode builds a board from the position field of a FEN record.
//
// Decoding is best effort and never fails. A single fill cursor runs across
// all rank groups: digits advance it by their value, letters place a piece and
// advance it by one. Letters that are not piece letters are dropped but still
// advance the cursor so the remaining squares keep their files. Anything that
// would land past h1 is discarded.
func Decode(fen string) Board {
	var b Board
	position := strings.TrimSpace(fen)
	if i := strings.IndexByte(position, ' '); i >= 0 {
		position = position[:i]
	}

	cursor := 0
	for _, group := range strings.Split(position, "/") {
		for _, r := range group {
			if r >= '0' && r <= '9' {
				cursor += int(r - '0')
				continue
			}
			if p, ok := PieceFromLetter(r); ok && ValidIndex(cursor) {
				b[cursor] = p
			}
			cursor++
		}
	}
	return b
}

// Encode serializes the board and side to move into a six-field FEN record.
// An invalid side encodes as white.
func Encode(b Board, active Color) string {
	var sb strings.Builder
	empty := 0
	flush := func() {
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
			empty = 0
		}
	}

	for i, p := range b {
		if i > 0 && i%8 == 0 {
			flush()
			sb.WriteByte('/')
		}
		if p.IsEmpty() {
			empty++
			continue
		}
		flush()
		sb.WriteByte(p.Letter())
	}
	flush()

	sb.WriteByte(' ')
	sb.WriteString(active.String())
	sb.WriteString(fenSuffix)
	return sb.String()
}

// InferActiveColor reports black to move when the literal " b " appears
// anywhere in the text. This is the behavior the scanner has always had and
// it can misfire on unusual spacing; ParseActiveColor reads the side field.
func InferActiveColor(fen string) Color {
	if strings.Contains(fen, " b ") {
		return Black
	}
	return White
}

// ParseActiveColor reads the side-to-move field of a FEN record.
// A missing or unknown field means white.
func ParseActiveColor(fen string) Color {
	fields := strings.Fields(fen)
	if len(fields) >= 2 && fields[1] == string(Black) {
		return Black
	}
	return White
}
