// chess is a two-player game played from the terminal or over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/repl"
	"github.com/lgbarn/chess-engine-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	args, err := expandArgsFile(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	flag.Usage = usage
	if err := flag.CommandLine.Parse(args); err != nil {
		os.Exit(2)
	}

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run plays one game, over HTTP when a server address is configured and on
// the terminal otherwise.
func run(ctx context.Context, cfg *config.Config) error {
	game := engine.NewGame()
	if cfg.Server.Enabled() {
		return server.New(cfg, game).Listen(ctx)
	}
	return repl.New(cfg, game).Run(ctx)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess [options]\n\n")
	fmt.Fprintf(os.Stderr, "A two-player chess game with move validation.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are entered as two squares, e.g. \"e2 e4\". Enter \"quit\" to exit.\n")
	fmt.Fprintf(os.Stderr, "\nHTTP endpoints (-serve):\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/state          current board\n")
	fmt.Fprintf(os.Stderr, "  POST /api/move           {\"from\":\"e2\",\"to\":\"e4\"}\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/moves/{square} destinations of the piece on square\n")
	fmt.Fprintf(os.Stderr, "  POST /api/reset          start a new game\n")
	fmt.Fprintf(os.Stderr, "  GET  /ws                 websocket: send moves, receive every new state\n")
}
