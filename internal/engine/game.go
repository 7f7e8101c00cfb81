package engine

import (
	"slices"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Game owns the board and the side to move. It is the only mutator of
// either. A Game is not safe for concurrent use.
type Game struct {
	board  *chess.Board
	toMove chess.Colour
}

// NewGame returns a game in the standard starting position with White to move.
func NewGame() *Game {
	g := &Game{board: chess.NewBoard()}
	g.Reset()
	return g
}

// Reset restores the starting position and gives the move to White.
func (g *Game) Reset() {
	g.board.SetupInitialPosition()
	g.toMove = chess.White
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	return g.toMove
}

// Board returns a read-only view of the grid.
func (g *Game) Board() chess.Reader {
	return g.board
}

// ApplyMove moves the piece named by from to the square named by to.
// On failure the returned error wraps one of the move sentinels in
// internal/errors and the game is left untouched. On success any piece on
// to is removed and the side to move flips.
func (g *Game) ApplyMove(from, to string) error {
	fromSq, toSq, piece, err := g.checkMove(from, to)
	if err != nil {
		return err
	}

	g.board.Set(toSq, piece)
	g.board.Set(fromSq, chess.Empty)
	g.toMove = g.toMove.Opposite()
	return nil
}

// checkMove runs every gate of ApplyMove without mutating anything.
func (g *Game) checkMove(from, to string) (chess.Square, chess.Square, chess.Piece, error) {
	fail := func(err error, symbol byte) (chess.Square, chess.Square, chess.Piece, error) {
		return chess.Square{}, chess.Square{}, chess.Empty, &errors.MoveError{
			Err:    err,
			From:   from,
			To:     to,
			ToMove: g.toMove.String(),
			Symbol: symbol,
		}
	}

	notation := g.board.Notation()
	fromSq, okFrom := notation.Square(from)
	toSq, okTo := notation.Square(to)
	if !okFrom || !okTo {
		return fail(errors.ErrInvalidNotation, 0)
	}

	if !fromSq.Valid() || !toSq.Valid() {
		return fail(errors.ErrInvalidCoordinate, 0)
	}

	piece := g.board.At(fromSq)
	if piece.IsEmpty() {
		return fail(errors.ErrNoPieceAtSource, 0)
	}
	if piece.Colour != g.toMove {
		return fail(errors.ErrWrongTurn, piece.Symbol())
	}

	target := g.board.At(toSq)
	if !target.IsEmpty() && target.Colour == piece.Colour {
		return fail(errors.ErrSameColourCapture, piece.Symbol())
	}

	if !IsValidMove(piece, fromSq, toSq, g.board) {
		return fail(errors.ErrIllegalShape, piece.Symbol())
	}

	return fromSq, toSq, piece, nil
}

// IsGameOver reports whether either king has been captured.
func (g *Game) IsGameOver() bool {
	whiteKing, blackKing := false, false
	cells := g.board.Cells()
	for y := range cells {
		for x := range cells[y] {
			piece := cells[y][x]
			if piece.Kind != chess.King {
				continue
			}
			if piece.Colour == chess.White {
				whiteKing = true
			} else {
				blackKing = true
			}
		}
	}
	return !whiteKing || !blackKing
}

// Destinations lists, in sorted order, every square the piece on from could
// move to now. The same gates as ApplyMove apply, so a piece of the side not
// to move has no destinations and yields ErrWrongTurn.
func (g *Game) Destinations(from string) ([]string, error) {
	notation := g.board.Notation()

	var names []string
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			name, _ := notation.Name(chess.Square{X: x, Y: y})
			_, _, _, err := g.checkMove(from, name)
			switch Reason(err) {
			case NoFailure:
				names = append(names, name)
			case InvalidNotation, NoPieceAtSource, WrongTurn:
				return nil, err
			}
		}
	}

	slices.Sort(names)
	return names, nil
}

// Snapshot returns a copy of the state a renderer needs.
func (g *Game) Snapshot() chess.Snapshot {
	return chess.Snapshot{
		Squares:   g.board.Cells(),
		ToMove:    g.toMove,
		GameOver:  g.IsGameOver(),
		Placement: Placement(g.board),
	}
}
