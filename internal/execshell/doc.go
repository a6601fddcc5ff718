// Package execshell provides structured helpers for invoking git.
//
// It wraps os/exec through ShellExecutor, which publishes lifecycle events to a
// CommandEventObserver, exposes OSCommandRunner for default process execution,
// and defines the typed failures consumed by the loki services.
package execshell
