// Package config provides configuration for the chess program.
package config

import (
	"fmt"
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=errors and lifecycle, 2=every move

	// Streams
	Input      io.Reader
	OutputFile io.Writer
	LogFile    io.Writer

	Display *DisplayConfig
	Server  *ServerConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Input:      os.Stdin,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Display:    NewDisplayConfig(),
		Server:     NewServerConfig(),
	}
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Display.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
	if len(format) == 0 || format[len(format)-1] != '\n' {
		fmt.Fprintln(c.LogFile)
	}
}
