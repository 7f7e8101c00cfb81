package config

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// DisplayConfig holds settings for drawing the board as text.
type DisplayConfig struct {
	ShowCoordinates  bool   // file letters and rank digits around the grid
	ShadeDarkSquares bool   // mark empty light squares with EmptyMark
	EmptyMark        string // one character
	ShowBanner       bool
}

// NewDisplayConfig creates a DisplayConfig with default values.
func NewDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		ShowCoordinates:  true,
		ShadeDarkSquares: true,
		EmptyMark:        ".",
		ShowBanner:       true,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	if len(d.EmptyMark) != 1 {
		return fmt.Errorf("empty square mark %q must be one character: %w", d.EmptyMark, errors.ErrInvalidConfig)
	}
	return nil
}
