// Package logger builds printf-style loggers for libraries that do not speak slog.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// New returns a stderr logger whose lines start with "[component] ".
func New(component string) *log.Logger {
	return NewWithWriter(os.Stderr, component)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(w, prefix, log.LstdFlags|log.Lmsgprefix)
}
