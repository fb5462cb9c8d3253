// Package app contains the core application logic. It merges the CLI
// configuration with an optional project file, runs the preprocessor,
// writes the error file and chains the external toolchain, decoupled from
// any specific entrypoint like a CLI.
package app
