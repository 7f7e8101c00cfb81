package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// isValidPawnMove handles the single step, the double step from the start
// row and the diagonal capture. White moves toward row 0, Black toward row 7.
func isValidPawnMove(colour chess.Colour, from, to chess.Square, board chess.Reader) bool {
	direction := chess.PawnDirection(colour)
	colDiff := to.X - from.X
	rowDiff := to.Y - from.Y
	target := board.At(to)

	switch {
	case colDiff == 0 && rowDiff == direction:
		return target.IsEmpty()

	case colDiff == 0 && rowDiff == 2*direction:
		if from.Y != chess.PawnStartRow(colour) {
			return false
		}
		return target.IsEmpty() && board.At(from.Offset(0, direction)).IsEmpty()

	case abs(colDiff) == 1 && rowDiff == direction:
		return !target.IsEmpty() && target.Colour != colour
	}

	return false
}
