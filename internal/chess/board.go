package chess

// Reader is a read-only view of the board handed to move rules.
type Reader interface {
	At(sq Square) Piece
}

// Board is the 8x8 grid. cells[y][x] holds the piece on Square{x, y}.
type Board struct {
	cells    [BoardSize][BoardSize]Piece
	notation *Notation
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{notation: NewNotation()}
}

// BackRank is the back-rank arrangement from file a to file h.
var BackRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// SetupInitialPosition sets up the standard starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for x := 0; x < BoardSize; x++ {
		b.cells[BackRow(Black)][x] = B(BackRank[x])
		b.cells[PawnStartRow(Black)][x] = B(Pawn)
		b.cells[PawnStartRow(White)][x] = W(Pawn)
		b.cells[BackRow(White)][x] = W(BackRank[x])
	}
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.cells = [BoardSize][BoardSize]Piece{}
}

// At returns the piece on sq, or Empty when sq is off the board.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return b.cells[sq.Y][sq.X]
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.cells[sq.Y][sq.X] = piece
	}
}

// Notation returns the board's square naming.
func (b *Board) Notation() *Notation {
	return b.notation
}

// Cells returns a copy of the grid, indexed [y][x].
func (b *Board) Cells() [BoardSize][BoardSize]Piece {
	return b.cells
}

// Snapshot is a value copy of everything a renderer needs.
type Snapshot struct {
	Squares   [BoardSize][BoardSize]Piece `json:"squares"`
	ToMove    Colour                      `json:"toMove"`
	GameOver  bool                        `json:"gameOver"`
	Placement string                      `json:"placement"`
}

// At returns the piece on sq in the snapshot.
func (s Snapshot) At(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return s.Squares[sq.Y][sq.X]
}
