package engine_test

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

var benchPlacements = map[string]string{
	"Initial": engine.InitialPlacement,
	"Midgame": "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R",
	"Endgame": "8/5k2/8/8/8/8/5K2/4R3",
	"Complex": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R",
}

func BenchmarkNewBoardFromPlacement(b *testing.B) {
	for name, placement := range benchPlacements {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = engine.NewBoardFromPlacement(placement)
			}
		})
	}
}

func BenchmarkPlacement(b *testing.B) {
	for name, placement := range benchPlacements {
		b.Run(name, func(b *testing.B) {
			board, _ := engine.NewBoardFromPlacement(placement)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				engine.Placement(board)
			}
		})
	}
}

func BenchmarkIsValidMove(b *testing.B) {
	board, _ := engine.NewBoardFromPlacement(benchPlacements["Complex"])
	cases := []struct {
		name     string
		from, to chess.Square
	}{
		{"Pawn", chess.Square{X: 0, Y: 6}, chess.Square{X: 0, Y: 4}},
		{"Knight", chess.Square{X: 4, Y: 3}, chess.Square{X: 5, Y: 1}},
		{"Bishop", chess.Square{X: 0, Y: 2}, chess.Square{X: 5, Y: 7}},
		{"Queen", chess.Square{X: 5, Y: 5}, chess.Square{X: 5, Y: 2}},
		{"King", chess.Square{X: 4, Y: 7}, chess.Square{X: 3, Y: 7}},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			piece := board.At(tc.from)
			for i := 0; i < b.N; i++ {
				engine.IsValidMove(piece, tc.from, tc.to, board)
			}
		})
	}
}

func BenchmarkApplyMove(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g := engine.NewGame()
		_ = g.ApplyMove("e2", "e4")
		_ = g.ApplyMove("e7", "e5")
		_ = g.ApplyMove("g1", "f3")
		_ = g.ApplyMove("b8", "c6")
	}
}

func BenchmarkApplyMove_Rejected(b *testing.B) {
	g := engine.NewGame()
	for i := 0; i < b.N; i++ {
		_ = g.ApplyMove("e2", "e5")
	}
}

func BenchmarkDestinations(b *testing.B) {
	g := engine.NewGame()
	for i := 0; i < b.N; i++ {
		_, _ = g.Destinations("g1")
	}
}

func BenchmarkSnapshot(b *testing.B) {
	g := engine.NewGame()
	for i := 0; i < b.N; i++ {
		g.Snapshot()
	}
}
