// Package diag implements the front end's diagnostics facility: severity
// levels, the module-wide "has errored" flag, and source-line-aware
// reporting. It is the reified stand-in for the reference implementation's
// process-wide LOG object (see log.h/log.cpp), passed explicitly to the
// lexer and parser instead of living as global state.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Severity is one of the four levels the front end reports at.
type Severity int

const (
	Debug Severity = iota
	Info
	Warn
	Error
)

var labels = map[Severity]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
}

var colors = map[Severity]*color.Color{
	Debug: color.New(color.FgCyan),
	Info:  color.New(color.FgWhite),
	Warn:  color.New(color.FgYellow),
	Error: color.New(color.FgRed, color.Bold),
}

func (s Severity) String() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return "UNKNOWN"
}

// Diagnostics accumulates the module's error state and formats messages at
// or above its minimum severity to its configured writer. Build one with
// New: the zero value has no writer and a Debug floor, so it cannot report.
type Diagnostics struct {
	out      io.Writer
	minLevel Severity
	line     int
	errored  bool
	color    bool
}

// New builds a Diagnostics writing to w at minLevel and above.
func New(w io.Writer, minLevel Severity) *Diagnostics {
	if w == nil {
		w = os.Stderr
	}
	_, isTerm := w.(*os.File)
	return &Diagnostics{out: w, minLevel: minLevel, color: isTerm}
}

// SetLine records the current source line, published by the lexer every
// time it crosses a newline. Every diagnostic emitted afterwards is
// attributed to this line unless a call site overrides it.
func (d *Diagnostics) SetLine(line int) {
	d.line = line
}

// Line returns the most recently published source line.
func (d *Diagnostics) Line() int {
	return d.line
}

// HadError reports whether any Error-severity diagnostic has been raised
// during this compile.
func (d *Diagnostics) HadError() bool {
	return d.errored
}

func (d *Diagnostics) report(sev Severity, line int, format string, args ...interface{}) {
	if sev == Error {
		d.errored = true
	}
	if sev < d.minLevel {
		return
	}

	label := sev.String()
	if d.color {
		label = colors[sev].Sprint(label)
	}

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(d.out, "%s %d: %s\n", label, line, msg)
}

// Debugf reports at Debug severity, attributed to the current line.
func (d *Diagnostics) Debugf(format string, args ...interface{}) {
	d.report(Debug, d.line, format, args...)
}

// Infof reports at Info severity, attributed to the current line.
func (d *Diagnostics) Infof(format string, args ...interface{}) {
	d.report(Info, d.line, format, args...)
}

// Warnf reports at Warn severity, attributed to the current line.
func (d *Diagnostics) Warnf(format string, args ...interface{}) {
	d.report(Warn, d.line, format, args...)
}

// Errorf reports at Error severity, attributed to the current line, and
// sets the has-errored flag.
func (d *Diagnostics) Errorf(format string, args ...interface{}) {
	d.report(Error, d.line, format, args...)
}

// ErrorfAt reports at Error severity attributed to an explicit line,
// useful when the parser has already advanced past the offending token.
func (d *Diagnostics) ErrorfAt(line int, format string, args ...interface{}) {
	d.report(Error, line, format, args...)
}

// SeverityFromVerbosity maps the CLI's -v N flag (0..3) onto a Severity,
// per the external interface: 0=DEBUG 1=INFO 2=WARN 3=ERROR.
func SeverityFromVerbosity(n int) Severity {
	switch n {
	case 0:
		return Debug
	case 1:
		return Info
	case 2:
		return Warn
	case 3:
		return Error
	default:
		return Warn
	}
}
