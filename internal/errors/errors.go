// Package errors provides sentinel errors and error types for the chess engine.
// It defines the move rejection reasons and a structured error type that
// preserves move context while allowing inspection with errors.Is() and
// errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for move rejection and setup failures.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidNotation indicates a token that does not name a square.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrInvalidCoordinate indicates a coordinate outside the 8x8 grid.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNoPieceAtSource indicates the source square is empty.
	ErrNoPieceAtSource = errors.New("no piece at source square")

	// ErrWrongTurn indicates the piece belongs to the side not to move.
	ErrWrongTurn = errors.New("wrong turn")

	// ErrSameColourCapture indicates the destination holds a piece of the mover's colour.
	ErrSameColourCapture = errors.New("cannot capture own piece")

	// ErrIllegalShape indicates the piece cannot move that way.
	ErrIllegalShape = errors.New("illegal move for piece")

	// ErrInvalidPlacement indicates a malformed piece placement string.
	ErrInvalidPlacement = errors.New("invalid piece placement")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a rejection reason with the move that caused it.
// It implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type MoveError struct {
	Err    error  // The underlying sentinel error
	From   string // Source token as given by the caller
	To     string // Destination token as given by the caller
	ToMove string // Side to move when the move was rejected
	Symbol byte   // Symbol of the moving piece (0 if not known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %q -> %q", e.From, e.To))
	}
	if e.Symbol != 0 {
		parts = append(parts, fmt.Sprintf("piece %c", e.Symbol))
	}
	if e.ToMove != "" {
		parts = append(parts, e.ToMove+" to move")
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
