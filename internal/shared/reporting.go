package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

const lineTemplateConstant = "%s\n"

// Reporter emits user-facing output: plain lines on the output stream, warnings and failures on the error stream.
type Reporter interface {
	Line(text string)
	Warningf(format string, args ...any)
	Failuref(format string, args ...any)
}

// ConsoleReporter writes to terminal streams, colouring warnings yellow and failures red when enabled.
type ConsoleReporter struct {
	outputWriter io.Writer
	errorWriter  io.Writer
	warningColor *color.Color
	failureColor *color.Color
}

// NewConsoleReporter constructs a ConsoleReporter. Nil writers fall back to the process streams.
func NewConsoleReporter(outputWriter io.Writer, errorWriter io.Writer, colorize bool) *ConsoleReporter {
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	if errorWriter == nil {
		errorWriter = os.Stderr
	}

	warningColor := color.New(color.FgYellow)
	failureColor := color.New(color.FgRed)
	if colorize {
		warningColor.EnableColor()
		failureColor.EnableColor()
	} else {
		warningColor.DisableColor()
		failureColor.DisableColor()
	}

	return &ConsoleReporter{
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
		warningColor: warningColor,
		failureColor: failureColor,
	}
}

// Line writes text followed by a newline to the output stream.
func (reporter *ConsoleReporter) Line(text string) {
	if reporter == nil {
		return
	}
	fmt.Fprintf(reporter.outputWriter, lineTemplateConstant, text)
}

// Warningf writes a formatted warning line to the error stream.
func (reporter *ConsoleReporter) Warningf(format string, args ...any) {
	if reporter == nil {
		return
	}
	reporter.warningColor.Fprintln(reporter.errorWriter, fmt.Sprintf(format, args...))
}

// Failuref writes a formatted failure line to the error stream.
func (reporter *ConsoleReporter) Failuref(format string, args ...any) {
	if reporter == nil {
		return
	}
	reporter.failureColor.Fprintln(reporter.errorWriter, fmt.Sprintf(format, args...))
}

// ColorEnabled reports whether the process streams support colour output.
func ColorEnabled() bool {
	return !color.NoColor
}
