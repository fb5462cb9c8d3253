// Package toolchain runs the external programs chained after a successful
// preprocessing pass: the assembler, then optionally the linker.
package toolchain
