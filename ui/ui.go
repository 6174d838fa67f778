// Package ui prints progress of a generation run to the terminal.
//
// Status lines (Info, Step, Success, Warning, Error) are meant for the user
// and always shown. Debug details go through a logrus logger that only
// emits them in verbose mode.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	infoPrefix    = color.New(color.FgCyan, color.Bold)
	successPrefix = color.New(color.FgGreen, color.Bold)
	warnPrefix    = color.New(color.FgYellow, color.Bold)
	errorPrefix   = color.New(color.FgRed, color.Bold)
	stepPrefix    = color.New(color.FgMagenta)
)

// UI writes status lines to out and errors to errOut.
type UI struct {
	out    io.Writer
	errOut io.Writer
	log    *logrus.Logger
}

// New returns a UI. Debug logging goes to errOut when verbose is set.
func New(out, errOut io.Writer, verbose bool) *UI {
	log := logrus.New()
	log.SetOutput(errOut)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return &UI{out: out, errOut: errOut, log: log}
}

// Discard is a UI that prints nothing.
func Discard() *UI {
	return New(io.Discard, io.Discard, false)
}

// Logger is the structured logger for debug details.
func (u *UI) Logger() *logrus.Logger {
	return u.log
}

func (u *UI) Out() io.Writer {
	return u.out
}

func (u *UI) Info(format string, args ...any) {
	u.line(u.out, infoPrefix, "i", format, args...)
}

func (u *UI) Success(format string, args ...any) {
	u.line(u.out, successPrefix, "✔", format, args...)
}

func (u *UI) Warning(format string, args ...any) {
	u.line(u.out, warnPrefix, "!", format, args...)
}

func (u *UI) Error(format string, args ...any) {
	u.line(u.errOut, errorPrefix, "✘", format, args...)
}

// Step prints "[step/total] message".
func (u *UI) Step(step, total int, format string, args ...any) {
	stepPrefix.Fprintf(u.out, "[%d/%d] ", step, total)
	fmt.Fprintf(u.out, format+"\n", args...)
}

func (u *UI) line(w io.Writer, c *color.Color, mark, format string, args ...any) {
	c.Fprint(w, mark+" ")
	fmt.Fprintf(w, format+"\n", args...)
}
