package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// expandArgsFile replaces every "-A file" pair in args with the arguments
// read from file. Other arguments keep their order.
func expandArgsFile(args []string) ([]string, error) {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var name string
		switch {
		case arg == "-A" || arg == "--A":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			name = args[i]
		case strings.HasPrefix(arg, "-A="):
			name = strings.TrimPrefix(arg, "-A=")
		default:
			out = append(out, arg)
			continue
		}

		loaded, err := loadArgsFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded...)
	}
	return out, nil
}

// loadArgsFile reads arguments from a file, one or more per line. Blank
// lines and lines starting with # are skipped.
func loadArgsFile(path string) ([]string, error) {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, fmt.Errorf("opening args file %s: %w", path, err)
	}
	defer file.Close()

	var args []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, splitArgsLine(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading args file %s: %w", path, err)
	}
	return args, nil
}

// splitArgsLine splits a line on whitespace, keeping single- or
// double-quoted runs together.
func splitArgsLine(line string) []string {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}
