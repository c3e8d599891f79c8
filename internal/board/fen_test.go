package board

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
)

func TestDecodeInitialPosition(t *testing.T) {
	b := Decode(InitialFEN)

	if got := b[0]; got != NewPiece(Rook, Black) {
		t.Errorf("Expected black rook at index 0, got %v", got)
	}
	if got := b[60]; got != NewPiece(King, White) {
		t.Errorf("Expected white king at index 60, got %v", got)
	}
	if got := b.Count(); got != 32 {
		t.Errorf("Expected 32 occupied squares, got %d", got)
	}
	for i := 16; i < 48; i++ {
		if !b[i].IsEmpty() {
			t.Errorf("Expected empty square at %s, got %v", SquareName(i), b[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	boards := map[string]Board{
		"initial": Initial(),
		"empty":   Empty(),
		"rotated": Rotate180(Initial()),
	}

	// Every piece on every square at least once.
	var dense Board
	for i := range dense {
		color := White
		if i%3 == 0 {
			color = Black
		}
		if i%5 != 0 {
			dense[i] = NewPiece(PieceTypes[i%len(PieceTypes)], color)
		}
	}
	boards["dense"] = dense

	var corners Board
	corners[0] = NewPiece(King, Black)
	corners[7] = NewPiece(Queen, White)
	corners[56] = NewPiece(Pawn, Black)
	corners[63] = NewPiece(Knight, White)
	boards["corners"] = corners

	for name, b := range boards {
		for _, c := range []Color{White, Black} {
			t.Run(name+"/"+c.String(), func(t *testing.T) {
				fen := Encode(b, c)
				if diff := cmp.Diff(b, Decode(fen)); diff != "" {
					t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
				}
				fields := strings.Fields(fen)
				if len(fields) != 6 {
					t.Fatalf("Expected 6 FEN fields, got %d in %q", len(fields), fen)
				}
				if fields[1] != c.String() {
					t.Errorf("Expected color field %s, got %s", c, fields[1])
				}
			})
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		board  Board
		active Color
		want   string
	}{
		{"initial", Initial(), White, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"empty black", Empty(), Black, "8/8/8/8/8/8/8/8 b - - 0 1"},
		{"invalid color", Empty(), Color('x'), "8/8/8/8/8/8/8/8 w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.board, tt.active); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEncodeFlushesTrailingRun(t *testing.T) {
	var b Board
	b[8] = NewPiece(Pawn, White)
	b[15] = NewPiece(Pawn, Black)
	want := "8/P6p/8/8/8/8/8/8 w - - 0 1"
	if got := Encode(b, White); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		check func(t *testing.T, b Board)
	}{
		{
			name: "empty string",
			fen:  "",
			check: func(t *testing.T, b Board) {
				if b.Count() != 0 {
					t.Errorf("Expected empty board, got %d pieces", b.Count())
				}
			},
		},
		{
			name: "unknown letters keep alignment",
			fen:  "rxk5/8/8/8/8/8/8/8 w - - 0 1",
			check: func(t *testing.T, b Board) {
				if b[0] != NewPiece(Rook, Black) {
					t.Errorf("Expected black rook on a8, got %v", b[0])
				}
				if !b[1].IsEmpty() {
					t.Errorf("Expected unknown letter to leave b8 empty, got %v", b[1])
				}
				if b[2] != NewPiece(King, Black) {
					t.Errorf("Expected black king on c8, got %v", b[2])
				}
			},
		},
		{
			name: "non-ascii letters are dropped",
			fen:  "ŰɱŪ4K/8/8/8/8/8/8/8 w - - 0 1",
			check: func(t *testing.T, b Board) {
				for i := 0; i < 3; i++ {
					if !b[i].IsEmpty() {
						t.Errorf("Expected %s empty, got %v", SquareName(i), b[i])
					}
				}
				if b[7] != NewPiece(King, White) {
					t.Errorf("Expected white king on h8, got %v", b[7])
				}
				if b.Count() != 1 {
					t.Errorf("Expected 1 piece, got %d", b.Count())
				}
			},
		},
		{
			name: "overlong input is truncated",
			fen:  strings.Repeat("Q", 100),
			check: func(t *testing.T, b Board) {
				if b.Count() != Size {
					t.Errorf("Expected %d queens, got %d", Size, b.Count())
				}
			},
		},
		{
			name: "cursor is not reset at rank boundaries",
			fen:  "7/k7",
			check: func(t *testing.T, b Board) {
				if b[7] != NewPiece(King, Black) {
					t.Errorf("Expected short rank to shift king to h8, got %v at h8", b[7])
				}
			},
		},
		{
			name: "nine advances nine",
			fen:  "9K",
			check: func(t *testing.T, b Board) {
				if b[9] != NewPiece(King, White) {
					t.Errorf("Expected white king at index 9, got %v", b[9])
				}
			},
		},
		{
			name: "surrounding whitespace",
			fen:  "  8/8/8/8/8/8/8/7K w - - 0 1\n",
			check: func(t *testing.T, b Board) {
				if b[63] != NewPiece(King, White) {
					t.Errorf("Expected white king on h1, got %v", b[63])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Decode(tt.fen))
		})
	}
}

// notnil/chess numbers squares from a1, so index i maps to (7-row)*8+col.
func TestDecodeAgreesWithChessLibrary(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
		"8/2k5/8/3P4/8/8/5K2/8 b - - 0 1",
		"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
	}

	for _, fen := range fens {
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("Reference parser rejected %q: %v", fen, err)
		}
		ref := chess.NewGame(opt).Position().Board()
		b := Decode(fen)

		for i := 0; i < Size; i++ {
			sq := chess.Square((7-Row(i))*8 + Col(i))
			want := ref.Piece(sq)
			got := b[i]
			if want == chess.NoPiece {
				if !got.IsEmpty() {
					t.Errorf("%s: expected empty %s, got %v", fen, SquareName(i), got)
				}
				continue
			}
			if string(got.Type) != want.Type().String() || got.Color.String() != want.Color().String() {
				t.Errorf("%s: expected %v on %s, got %v", fen, want, SquareName(i), got)
			}
		}
	}
}

func TestColorInference(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		wantInfer  Color
		wantParsed Color
	}{
		{"white to move", "8/8/8/8/8/8/8/8 w - - 0 1", White, White},
		{"black to move", "8/8/8/8/8/8/8/8 b - - 0 1", Black, Black},
		{"position only", "8/8/8/8/8/8/8/8", White, White},
		// The substring scan sees " b " in the en passant slot.
		{"false positive", "8/8/8/8/8/8/8/8 w - b 0 1", Black, White},
		{"double spaced side", "8/8/8/8/8/8/8/8  b  - - 0 1", Black, Black},
		{"trailing side letter", "8/8/8/8/8/8/8/8 b", White, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferActiveColor(tt.fen); got != tt.wantInfer {
				t.Errorf("InferActiveColor: expected %s, got %s", tt.wantInfer, got)
			}
			if got := ParseActiveColor(tt.fen); got != tt.wantParsed {
				t.Errorf("ParseActiveColor: expected %s, got %s", tt.wantParsed, got)
			}
		})
	}
}

func TestEncodedColorAgreesWithChessLibrary(t *testing.T) {
	fen := Encode(Initial(), Black)
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("Reference parser rejected %q: %v", fen, err)
	}
	if turn := chess.NewGame(opt).Position().Turn(); turn != chess.Black {
		t.Errorf("Expected black to move, got %v", turn)
	}
}
