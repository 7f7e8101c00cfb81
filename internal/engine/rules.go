// Package engine provides move validation and the game state machine.
package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// IsValidMove reports whether piece, standing on from, may move to to.
// Only the shape of the move and, for sliding pieces, the squares in between
// are considered. Turn order and the colour of a piece on to are the
// caller's concern.
func IsValidMove(piece chess.Piece, from, to chess.Square, board chess.Reader) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}

	colDiff := abs(to.X - from.X)
	rowDiff := abs(to.Y - from.Y)

	switch piece.Kind {
	case chess.Pawn:
		return isValidPawnMove(piece.Colour, from, to, board)

	case chess.Knight:
		return (colDiff == 1 && rowDiff == 2) || (colDiff == 2 && rowDiff == 1)

	case chess.Bishop:
		if colDiff != rowDiff {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Rook:
		if colDiff != 0 && rowDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Queen:
		if colDiff != rowDiff && colDiff != 0 && rowDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.King:
		return colDiff <= 1 && rowDiff <= 1
	}

	return false
}
