package shared_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/loki/internal/shared"
)

func TestConsoleReporterRoutesStreams(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	reporter := shared.NewConsoleReporter(outputBuffer, errorBuffer, false)

	reporter.Line(" - [deleted]         (none)     -> origin/feature/foo")
	reporter.Warningf("Cannot delete pruned branch %s because HEAD is pointing to it.", "main")
	reporter.Failuref("Failed to delete pruned branch %s: %s", "feature/foo", "exit status 1")

	require.Equal(testInstance, " - [deleted]         (none)     -> origin/feature/foo\n", outputBuffer.String())
	require.Equal(testInstance, "Cannot delete pruned branch main because HEAD is pointing to it.\nFailed to delete pruned branch feature/foo: exit status 1\n", errorBuffer.String())
}

func TestConsoleReporterColorizesWhenEnabled(testInstance *testing.T) {
	errorBuffer := &bytes.Buffer{}
	reporter := shared.NewConsoleReporter(&bytes.Buffer{}, errorBuffer, true)

	reporter.Warningf("careful")

	require.Contains(testInstance, errorBuffer.String(), "\x1b[33m")
	require.Contains(testInstance, errorBuffer.String(), "careful")
}

func TestNilConsoleReporterIsSilent(testInstance *testing.T) {
	var reporter *shared.ConsoleReporter

	require.NotPanics(testInstance, func() {
		reporter.Line("ignored")
		reporter.Warningf("ignored")
		reporter.Failuref("ignored")
	})
}
