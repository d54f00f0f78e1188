// Package app wires the build graph core into a runnable program. It owns the
// configuration, the process logger, and the two user-facing operations:
// inspecting a manifest and fingerprinting a literal command. It is decoupled
// from any specific entrypoint such as the CLI.
package app
