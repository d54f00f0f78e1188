// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and BURSTBUILD_* environment defaults into the
// application's configuration and runs the selected command.
package cli
