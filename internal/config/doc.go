// Package config defines the format-agnostic project model for the
// pre-preprocessor, along with the Loader interface used to read it.
//
// Concrete implementations of the interface, such as for HCL, are provided
// in separate packages. The app package merges the loaded Project with the
// command-line configuration, command-line values winning.
package config
