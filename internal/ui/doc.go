// Package ui renders git lifecycle events as human-readable console output.
//
// Messages come from execshell.CommandMessageFormatter so that the console
// describes what lk is doing to the repository while detailed telemetry
// continues to flow through structured loggers.
package ui
