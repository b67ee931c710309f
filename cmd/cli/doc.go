// Package cli constructs the rehost command-line interface, wiring the Cobra
// command, configuration loader, and structured logging. Execute runs the
// default application.
package cli
