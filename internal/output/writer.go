// Package output draws board snapshots as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/config"
)

// SnapshotWriter is the interface for writing board snapshots to output.
type SnapshotWriter interface {
	// WriteSnapshot writes one snapshot.
	WriteSnapshot(s chess.Snapshot) error
}

// TextWriter draws the board as an ASCII diagram followed by the side to move.
type TextWriter struct {
	w   io.Writer
	cfg *config.DisplayConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.DisplayConfig) *TextWriter {
	if cfg == nil {
		cfg = config.NewDisplayConfig()
	}
	return &TextWriter{w: w, cfg: cfg}
}

// WriteSnapshot draws s. Row 0 (rank 8) is printed first.
func (tw *TextWriter) WriteSnapshot(s chess.Snapshot) error {
	var sb strings.Builder

	files, border := "", "+-----------------+\n"
	if tw.cfg.ShowCoordinates {
		files, border = "   a b c d e f g h\n", "  "+border
	}

	sb.WriteString("\n")
	sb.WriteString(files)
	sb.WriteString(border)
	for y := 0; y < chess.BoardSize; y++ {
		rank := chess.BoardSize - y
		if tw.cfg.ShowCoordinates {
			fmt.Fprintf(&sb, "%d |", rank)
		} else {
			sb.WriteString("|")
		}
		for x := 0; x < chess.BoardSize; x++ {
			sb.WriteString(tw.cell(s.Squares[y][x], x, y))
			sb.WriteString(" ")
		}
		if tw.cfg.ShowCoordinates {
			fmt.Fprintf(&sb, "| %d\n", rank)
		} else {
			sb.WriteString("|\n")
		}
	}
	sb.WriteString(border)
	sb.WriteString(files)
	fmt.Fprintf(&sb, "\n%s to move\n", s.ToMove)

	_, err := io.WriteString(tw.w, sb.String())
	return err
}

// cell returns the one-character text for a square.
func (tw *TextWriter) cell(piece chess.Piece, x, y int) string {
	if !piece.IsEmpty() {
		return string(piece.Symbol())
	}
	if tw.cfg.ShadeDarkSquares && (x+y)%2 == 0 {
		return tw.cfg.EmptyMark
	}
	return " "
}

// JSONWriter writes each snapshot as one JSON document.
type JSONWriter struct {
	w      io.Writer
	indent bool
}

// NewJSONWriter creates a JSON writer. With indent set the output is
// pretty-printed.
func NewJSONWriter(w io.Writer, indent bool) *JSONWriter {
	return &JSONWriter{w: w, indent: indent}
}

// WriteSnapshot encodes s.
func (jw *JSONWriter) WriteSnapshot(s chess.Snapshot) error {
	enc := json.NewEncoder(jw.w)
	enc.SetEscapeHTML(false)
	if jw.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}
