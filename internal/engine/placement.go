package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// InitialPlacement is the piece placement of the standard starting position,
// in FEN piece-placement form.
const InitialPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Placement encodes the grid in FEN piece-placement form, row 0 (rank 8) first.
func Placement(board chess.Reader) string {
	var sb strings.Builder
	for y := 0; y < chess.BoardSize; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < chess.BoardSize; x++ {
			piece := board.At(chess.Square{X: x, Y: y})
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// NewBoardFromPlacement creates a board from a FEN piece-placement field.
// Any trailing FEN fields are ignored.
func NewBoardFromPlacement(placement string) (*chess.Board, error) {
	fields := strings.Fields(placement)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty placement: %w", errors.ErrInvalidPlacement)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != chess.BoardSize {
		return nil, fmt.Errorf("expected %d rows, got %d: %w", chess.BoardSize, len(rows), errors.ErrInvalidPlacement)
	}

	board := chess.NewBoard()
	for y, row := range rows {
		if err := parsePlacementRow(board, y, row); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// parsePlacementRow fills row y from one '/'-separated segment.
func parsePlacementRow(board *chess.Board, y int, row string) error {
	x := 0
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c >= '1' && c <= '8' {
			x += int(c - '0')
			continue
		}
		piece, ok := chess.PieceFromSymbol(c)
		if !ok {
			return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidPlacement)
		}
		if x >= chess.BoardSize {
			return fmt.Errorf("row %d overflows the board: %w", y, errors.ErrInvalidPlacement)
		}
		board.Set(chess.Square{X: x, Y: y}, piece)
		x++
	}
	if x != chess.BoardSize {
		return fmt.Errorf("row %d covers %d squares: %w", y, x, errors.ErrInvalidPlacement)
	}
	return nil
}
