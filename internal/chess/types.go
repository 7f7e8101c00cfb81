// Package chess provides the core board game types: colours, pieces,
// squares, the notation mapping and the board grid.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// MarshalText encodes the colour as "White" or "Black".
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes "White" or "Black".
func (c *Colour) UnmarshalText(text []byte) error {
	switch string(text) {
	case "White":
		*c = White
	case "Black":
		*c = Black
	default:
		return fmt.Errorf("unknown colour %q", text)
	}
	return nil
}

// Kind is the type of a piece. The set is closed.
type Kind int

const (
	NoKind Kind = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts an upper or lower case piece letter to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// Piece is the content of one cell. The zero value is an empty cell.
type Piece struct {
	Kind   Kind
	Colour Colour
}

// Empty is the content of a cell holding no piece.
var Empty = Piece{}

// W creates a white piece.
func W(kind Kind) Piece {
	return Piece{Kind: kind, Colour: White}
}

// B creates a black piece.
func B(kind Kind) Piece {
	return Piece{Kind: kind, Colour: Black}
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Symbol returns the display letter: upper case for White, lower case for Black.
func (p Piece) Symbol() byte {
	if p.IsEmpty() {
		return ' '
	}
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String returns a readable description such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// PieceFromSymbol is the inverse of Symbol.
func PieceFromSymbol(c byte) (Piece, bool) {
	kind := KindFromLetter(c)
	if kind == NoKind {
		return Empty, false
	}
	if c >= 'a' && c <= 'z' {
		return B(kind), true
	}
	return W(kind), true
}

// MarshalText encodes a piece as its symbol, or an empty string for an empty cell.
func (p Piece) MarshalText() ([]byte, error) {
	if p.IsEmpty() {
		return []byte{}, nil
	}
	return []byte{p.Symbol()}, nil
}

// UnmarshalText decodes the output of MarshalText.
func (p *Piece) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = Empty
		return nil
	}
	if len(text) != 1 {
		return fmt.Errorf("invalid piece symbol %q", text)
	}
	piece, ok := PieceFromSymbol(text[0])
	if !ok {
		return fmt.Errorf("invalid piece symbol %q", text)
	}
	*p = piece
	return nil
}

// BoardSize is the number of files and ranks.
const BoardSize = 8

// Square addresses one cell. X is the file index (0 = a), Y the row index
// (0 = rank 8, 7 = rank 1).
type Square struct {
	X, Y int
}

// Valid reports whether both components lie on the board.
func (s Square) Valid() bool {
	return s.X >= 0 && s.X < BoardSize && s.Y >= 0 && s.Y < BoardSize
}

// String returns the coordinate pair, e.g. "(4,6)".
func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// Offset returns the square dx files and dy rows away.
func (s Square) Offset(dx, dy int) Square {
	return Square{X: s.X + dx, Y: s.Y + dy}
}

// PawnDirection returns the row delta of a forward pawn step for the colour.
func PawnDirection(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row a pawn of the colour starts on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return 6
	}
	return 1
}

// BackRow returns the row holding the colour's back-rank pieces.
func BackRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}
