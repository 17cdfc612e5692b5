package ui

import (
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test %d"
	a := 5
	Printfln(msg, a)
	// Output:
	// This is a test 5
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	msg := "This is a test: %d"
	a := 5
	Debug(msg, a)
	// Output:
	// DEBUG: This is a test: 5
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Info(msg, a)
	// Output:
	// INFO: This is a test: 5
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}

func ExampleNewPtermLogger() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	logger := NewPtermLogger()
	logger.Info("cpu temp: %.1f, target: %.1f", 61.5, 60.0)
	// Output:
	// INFO: cpu temp: 61.5, target: 60.0
}

func TestDebugEnabledFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	assert.True(t, DebugEnabledFromEnv())

	t.Setenv("LOG_LEVEL", "info")
	assert.False(t, DebugEnabledFromEnv())
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	assert.NotPanics(t, func() {
		logger.Debug("a")
		logger.Info("b %d", 1)
		logger.Warning("c")
		logger.Error("d")
	})
}
