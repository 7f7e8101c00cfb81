package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// isPathClear checks that every square strictly between from and to is
// empty. from and to must share a file, a row or a diagonal.
func isPathClear(board chess.Reader, from, to chess.Square) bool {
	colDir := sign(to.X - from.X)
	rowDir := sign(to.Y - from.Y)

	sq := from.Offset(colDir, rowDir)
	for sq != to {
		if !board.At(sq).IsEmpty() {
			return false
		}
		sq = sq.Offset(colDir, rowDir)
	}

	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns -1, 0 or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
