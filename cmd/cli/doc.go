// Package cli constructs the lk command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging
// primitives. Execute builds a fresh application and runs it.
package cli
