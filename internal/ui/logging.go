package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Logger is handed to every component that wants to report something,
// so tests can swap in a no-op or capturing implementation.
type Logger interface {
	Debug(format string, a ...interface{})
	Info(format string, a ...interface{})
	Warning(format string, a ...interface{})
	Error(format string, a ...interface{})
}

type ptermLogger struct{}

// NewPtermLogger returns a Logger printing through the pterm prefix printers
func NewPtermLogger() Logger {
	return ptermLogger{}
}

func (ptermLogger) Debug(format string, a ...interface{})   { Debug(format, a...) }
func (ptermLogger) Info(format string, a ...interface{})    { Info(format, a...) }
func (ptermLogger) Warning(format string, a ...interface{}) { Warning(format, a...) }
func (ptermLogger) Error(format string, a ...interface{})   { Error(format, a...) }

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{})   {}
func (NopLogger) Info(string, ...interface{})    {}
func (NopLogger) Warning(string, ...interface{}) {}
func (NopLogger) Error(string, ...interface{})   {}

// SetDebugEnabled toggles output of debug messages
func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

// DebugEnabledFromEnv reports whether LOG_LEVEL requests debug output
func DebugEnabledFromEnv() bool {
	return strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug")
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// Fatal prints the message and terminates the process with exit code 1
func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace behaves like Fatal but is safe to use before pterm is configured
func FatalWithoutStacktrace(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
