// Package testutil provides shared test utilities for the chess engine.
// These helpers build boards and games for tests without repeating setup.
package testutil

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// MustBoard parses a FEN piece placement and fails the test on error.
func MustBoard(t *testing.T, placement string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromPlacement(placement)
	if err != nil {
		t.Fatalf("NewBoardFromPlacement(%q): %v", placement, err)
	}
	return board
}

// MustPlay applies moves given as from/to pairs, e.g. "e2", "e4", "e7", "e5".
// It fails the test on the first rejected move.
func MustPlay(t *testing.T, g *engine.Game, squares ...string) {
	t.Helper()
	if len(squares)%2 != 0 {
		t.Fatalf("MustPlay needs from/to pairs, got %d squares", len(squares))
	}
	for i := 0; i < len(squares); i += 2 {
		if err := g.ApplyMove(squares[i], squares[i+1]); err != nil {
			t.Fatalf("ApplyMove(%q, %q): %v", squares[i], squares[i+1], err)
		}
	}
}

// Sq converts an algebraic name to a square and fails the test if it is invalid.
func Sq(t *testing.T, name string) chess.Square {
	t.Helper()
	sq, ok := chess.NewNotation().Square(name)
	if !ok {
		t.Fatalf("invalid square name %q", name)
	}
	return sq
}
