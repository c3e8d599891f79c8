// Package data reads positions from game records.
package data

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/notnil/chess"
)

// ErrNoGame is returned when a PGN source holds no games
var ErrNoGame = errors.New("data: no game in PGN")

// PGNParser handles parsing of PGN files
type PGNParser struct {
	filepath string
}

// NewPGNParser creates a new PGN parser
func NewPGNParser(filepath string) *PGNParser {
	return &PGNParser{
		filepath: filepath,
	}
}

// ParsePGN parses a PGN file and returns a list of games
func (p *PGNParser) ParsePGN() ([]*chess.Game, error) {
	file, err := os.Open(p.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PGN file: %w", err)
	}
	defer file.Close()

	return ParsePGNReader(file)
}

// ParsePGNReader parses PGN from an io.Reader
func ParsePGNReader(reader io.Reader) ([]*chess.Game, error) {
	var games []*chess.Game

	scanner := chess.NewScanner(reader)
	for scanner.Scan() {
		game := scanner.Next()
		if game != nil {
			games = append(games, game)
		}
	}

	// EOF is expected at end of file, not an error
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error parsing PGN: %w", err)
	}

	return games, nil
}

// PositionFEN returns the FEN after ply half-moves. A negative ply selects
// the final position; a ply past the end is clamped to it.
func PositionFEN(game *chess.Game, ply int) (string, error) {
	if game == nil {
		return "", fmt.Errorf("game is nil")
	}

	positions := game.Positions()
	if len(positions) == 0 {
		return "", fmt.Errorf("game has no positions")
	}
	if ply < 0 || ply >= len(positions) {
		ply = len(positions) - 1
	}
	return positions[ply].String(), nil
}

// LoadPosition reads the first game in the file and returns the FEN after ply half-moves
func (p *PGNParser) LoadPosition(ply int) (string, error) {
	games, err := p.ParsePGN()
	if err != nil {
		return "", err
	}
	if len(games) == 0 {
		return "", ErrNoGame
	}
	return PositionFEN(games[0], ply)
}
