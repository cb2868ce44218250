// Package cli translates command-line arguments into a validated
// app.Config. It owns the usage text and the ExitError type the
// entrypoint maps to process exit codes.
package cli
