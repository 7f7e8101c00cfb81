package chess

// Notation maps algebraic square names ("a1".."h8") to squares and back.
// Rank '8' is row 0 and file 'a' is column 0.
type Notation struct {
	squares map[string]Square
	names   [BoardSize][BoardSize]string
}

// NewNotation builds the 64-entry mapping.
func NewNotation() *Notation {
	n := &Notation{squares: make(map[string]Square, BoardSize*BoardSize)}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			name := string([]byte{byte('a' + x), byte('8' - y)})
			n.squares[name] = Square{X: x, Y: y}
			n.names[y][x] = name
		}
	}
	return n
}

// Square returns the square named by s. Only exact lower case names are
// recognised.
func (n *Notation) Square(s string) (Square, bool) {
	sq, ok := n.squares[s]
	return sq, ok
}

// Name returns the algebraic name of sq.
func (n *Notation) Name(sq Square) (string, bool) {
	if !sq.Valid() {
		return "", false
	}
	return n.names[sq.Y][sq.X], true
}
