package output

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Describe turns an error from Game.ApplyMove into a sentence for the player.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var moveErr *errors.MoveError
	if !errors.As(err, &moveErr) {
		return err.Error()
	}

	switch engine.Reason(err) {
	case engine.InvalidNotation:
		return "Invalid notation. Please use algebraic notation (e.g., e2 to e4)."
	case engine.InvalidCoordinate:
		return "Invalid coordinates."
	case engine.NoPieceAtSource:
		return fmt.Sprintf("No piece at position %s.", moveErr.From)
	case engine.WrongTurn:
		return fmt.Sprintf("It's %s's turn.", moveErr.ToMove)
	case engine.SameColourCapture:
		return "Cannot capture your own piece."
	case engine.IllegalShape:
		return fmt.Sprintf("Invalid move for %c.", moveErr.Symbol)
	}
	return err.Error()
}
