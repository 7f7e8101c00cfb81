// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-engine-go/internal/config"
)

var (
	// Display options
	noCoords  = flag.Bool("nocoords", false, "Don't print rank and file labels around the board")
	noShade   = flag.Bool("noshade", false, "Leave empty dark squares blank")
	emptyMark = flag.String("mark", ".", "Character drawn on empty dark squares")
	noBanner  = flag.Bool("nobanner", false, "Don't print the welcome banner")

	// Server options
	serveAddr       = flag.String("serve", "", "Serve the game over HTTP on this address (e.g. :8080) instead of the terminal")
	maxBody         = flag.Int64("maxbody", 0, "Maximum request body in bytes (0 = default)")
	shutdownTimeout = flag.Duration("shutdown", 0, "Graceful shutdown timeout (0 = default)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("verbose", false, "Log every move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Note: -A flag is handled manually before flag.Parse() in expandArgsFile
	_ = flag.String("A", "", "File containing command-line arguments (one per line, # for comments)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyDisplayFlags(cfg)
	applyServerFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyDisplayFlags configures how the board is drawn.
func applyDisplayFlags(cfg *config.Config) {
	cfg.Display.ShowCoordinates = !*noCoords
	cfg.Display.ShadeDarkSquares = !*noShade
	cfg.Display.EmptyMark = *emptyMark
	cfg.Display.ShowBanner = !*noBanner
}

// applyServerFlags configures the HTTP surface.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *serveAddr
	if *maxBody != 0 {
		cfg.Server.MaxBodyBytes = *maxBody
	}
	if *shutdownTimeout != 0 {
		cfg.Server.ShutdownTimeout = *shutdownTimeout
	}
}
