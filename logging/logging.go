// Package logging sets up the zerolog logger that writes to termchess's log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var logFile = "termchess/termchess.log"

// Path returns where the log file lives, creating its directory if needed.
func Path() (string, error) {
	return xdg.StateFile(logFile)
}

// New opens the log file for appending and returns a logger writing to it at level.
// The terminal belongs to the UI, so nothing is written to stderr. Close the returned io.Closer on exit.
func New(level string) (zerolog.Logger, io.Closer, error) {
	path, err := Path()
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("locate log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := NewWithWriter(f, level)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nil, err
	}
	return log, f, nil
}

// NewWithWriter returns a logger writing JSON lines to w at level.
func NewWithWriter(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
