// Package repl runs a game on a line-oriented terminal: it prints the board,
// reads "from to" commands and reports why a move was refused.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/output"
)

// QuitCommand ends the session.
const QuitCommand = "quit"

// CommandKind classifies one input line.
type CommandKind int

const (
	InvalidCommand CommandKind = iota
	MoveCommand
	QuitSession
)

// Command is one parsed input line.
type Command struct {
	Kind CommandKind
	From string
	To   string
}

// ParseCommand splits a line into a move command. Square tokens are
// lower-cased so "E2 E4" is accepted; anything that is not exactly two
// tokens, and is not the quit command, is invalid.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 1 && fields[0] == QuitCommand {
		return Command{Kind: QuitSession}
	}
	if len(fields) != 2 {
		return Command{Kind: InvalidCommand}
	}
	lower := cases.Lower(language.Und)
	return Command{
		Kind: MoveCommand,
		From: lower.String(fields[0]),
		To:   lower.String(fields[1]),
	}
}

// Session drives one game from cfg.Input to cfg.OutputFile.
type Session struct {
	cfg    *config.Config
	game   *engine.Game
	writer output.SnapshotWriter
}

// New creates a session over game. The board is drawn with a text writer
// built from cfg.Display.
func New(cfg *config.Config, game *engine.Game) *Session {
	return &Session{
		cfg:    cfg,
		game:   game,
		writer: output.NewTextWriter(cfg.OutputFile, cfg.Display),
	}
}

// Run plays until the input is exhausted, the player quits, a king is
// captured or ctx is cancelled. Only I/O failures and cancellation are
// returned as errors; refused moves are reported to the player.
func (s *Session) Run(ctx context.Context) error {
	out := s.cfg.OutputFile
	if s.cfg.Display.ShowBanner {
		fmt.Fprintln(out, "========== Chess ==========")
		fmt.Fprintln(out, "Enter moves in algebraic notation (e.g., e2 e4)")
		fmt.Fprintf(out, "Enter '%s' to exit\n", QuitCommand)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := s.readLines(ctx)

loop:
	for !s.game.IsGameOver() {
		if err := s.writer.WriteSnapshot(s.game.Snapshot()); err != nil {
			return err
		}
		fmt.Fprint(out, "Enter move: ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				break loop
			}
			if l.err != nil {
				return l.err
			}
			line = l.text
		}

		cmd := ParseCommand(line)
		switch cmd.Kind {
		case QuitSession:
			break loop
		case InvalidCommand:
			fmt.Fprintln(out, "Invalid input format. Use 'from to' (e.g., e2 e4).")
		case MoveCommand:
			s.move(cmd.From, cmd.To)
		}
	}

	if s.game.IsGameOver() {
		if err := s.writer.WriteSnapshot(s.game.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintln(out, "Game over!")
		s.cfg.Logf(1, "game over")
	}
	fmt.Fprintln(out, "Thanks for playing!")
	return nil
}

// move applies one command and reports a refusal.
func (s *Session) move(from, to string) {
	if err := s.game.ApplyMove(from, to); err != nil {
		s.cfg.Logf(2, "rejected %s %s: %v", from, to, err)
		fmt.Fprintln(s.cfg.OutputFile, output.Describe(err))
		fmt.Fprintln(s.cfg.OutputFile, "Move failed. Try again.")
		return
	}
	s.cfg.Logf(2, "applied %s %s", from, to)
}

type inputLine struct {
	text string
	err  error
}

// readLines feeds input lines to the loop so a blocked read cannot delay
// cancellation. The channel is closed at end of input.
func (s *Session) readLines(ctx context.Context) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.cfg.Input)
		for scanner.Scan() {
			select {
			case lines <- inputLine{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- inputLine{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return lines
}
