// Package preproc implements the assembly source pre-preprocessor: nested
// conditional compilation, recursive include expansion guarded by content
// sniffing, deferred macro insertion into named sections, generate loops
// with placeholder substitution, and splice blocks framing flushed sections.
//
// A single Preprocessor run owns one mutable state (define table,
// conditional stack, section registry, include path) that is shared by
// every recursion level, so macros inserted while parsing an included file
// are visible to a section directive in any later file.
//
// Directive lines are matched case-insensitively on their first token, with
// an optional leading '#'. Two-word keywords may be hyphenated, underscored
// or joined, so "#SPLICEBEFORE" and "splice-before" name the same directive
// while a label like "_else" does not. Text after
// the first ';' is a comment and is ignored when tokenizing.
//
// Fatal conditions stop the run and are returned as *Error. Non-fatal ones
// are recorded in Result.Diagnostics and processing continues.
package preproc
