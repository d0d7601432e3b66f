// Package logger writes levelled, colour-prefixed log lines for one
// component of the application.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const (
	errorColor   = "\033[31m"
	infoColor    = "\033[32m"
	warningColor = "\033[33m"
	colorReset   = "\033[0m"
)

var ErrNilWriter = errors.New("logger: writer is nil")

// Logger prefixes every line with a coloured component tag and a level.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a Logger writing to w. color is an ANSI escape sequence used
// for the component tag.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(infoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(warningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(errorColor, "ERROR", msg)
}

func (l *Logger) write(levelColor, level, msg string) {
	// log.Logger serialises concurrent writers.
	l.out.Print(fmt.Sprintf("%s[%s]%s %s[%s]%s %s", l.color, l.prefix, colorReset, levelColor, level, colorReset, msg))
}
