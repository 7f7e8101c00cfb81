package engine

import "github.com/lgbarn/chess-engine-go/internal/errors"

// FailureKind classifies why a move was rejected.
type FailureKind int

const (
	NoFailure FailureKind = iota
	InvalidNotation
	InvalidCoordinate
	NoPieceAtSource
	WrongTurn
	SameColourCapture
	IllegalShape
	UnknownFailure
)

var failureNames = []string{
	"", "InvalidNotation", "InvalidCoordinate", "NoPieceAtSource",
	"WrongTurn", "SameColourCapture", "IllegalShape", "UnknownFailure",
}

// String returns the name of the failure kind.
func (k FailureKind) String() string {
	if k >= 0 && int(k) < len(failureNames) {
		return failureNames[k]
	}
	return "UnknownFailure"
}

// MarshalText encodes the kind by name.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reason maps an error returned by Game.ApplyMove to its FailureKind.
func Reason(err error) FailureKind {
	switch {
	case err == nil:
		return NoFailure
	case errors.Is(err, errors.ErrInvalidNotation):
		return InvalidNotation
	case errors.Is(err, errors.ErrInvalidCoordinate):
		return InvalidCoordinate
	case errors.Is(err, errors.ErrNoPieceAtSource):
		return NoPieceAtSource
	case errors.Is(err, errors.ErrWrongTurn):
		return WrongTurn
	case errors.Is(err, errors.ErrSameColourCapture):
		return SameColourCapture
	case errors.Is(err, errors.ErrIllegalShape):
		return IllegalShape
	}
	return UnknownFailure
}
