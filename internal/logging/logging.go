// Package logging builds the Wails logger shared by every greetdeck component.
package logging

import (
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// Leveled drops messages below its level before passing them to the wrapped logger.
type Leveled struct {
	next  logger.Logger
	level logger.LogLevel
}

// New returns a logger writing to file, or to stdout when file is empty,
// filtered at the named level.
func New(level, file string) (*Leveled, error) {
	lvl, err := logger.StringToLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var next logger.Logger
	if file != "" {
		next = logger.NewFileLogger(file)
	} else {
		next = logger.NewDefaultLogger()
	}
	return Wrap(next, lvl), nil
}

// Wrap filters next at lvl.
func Wrap(next logger.Logger, lvl logger.LogLevel) *Leveled {
	return &Leveled{next: next, level: lvl}
}

// Level reports the minimum level that is passed through.
func (l *Leveled) Level() logger.LogLevel {
	return l.level
}

func (l *Leveled) Print(message string) { l.next.Print(message) }

func (l *Leveled) Trace(message string) {
	if l.level <= logger.TRACE {
		l.next.Trace(message)
	}
}

func (l *Leveled) Debug(message string) {
	if l.level <= logger.DEBUG {
		l.next.Debug(message)
	}
}

func (l *Leveled) Info(message string) {
	if l.level <= logger.INFO {
		l.next.Info(message)
	}
}

func (l *Leveled) Warning(message string) {
	if l.level <= logger.WARNING {
		l.next.Warning(message)
	}
}

func (l *Leveled) Error(message string) {
	if l.level <= logger.ERROR {
		l.next.Error(message)
	}
}

// Fatal is never filtered.
func (l *Leveled) Fatal(message string) { l.next.Fatal(message) }

type discard struct{}

// Discard returns a logger that drops everything. Fatal does not exit.
func Discard() logger.Logger {
	return discard{}
}

func (discard) Print(string)   {}
func (discard) Trace(string)   {}
func (discard) Debug(string)   {}
func (discard) Info(string)    {}
func (discard) Warning(string) {}
func (discard) Error(string)   {}
func (discard) Fatal(string)   {}
