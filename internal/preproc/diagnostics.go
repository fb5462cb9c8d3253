package preproc

import (
	"errors"
	"fmt"
)

// Kind classifies a diagnostic raised while preprocessing.
type Kind int

const (
	KindMissingArgument Kind = iota + 1
	KindUnmatchedConditional
	KindUnresolvedSection
	KindSectionAlreadyClosed
	KindMalformedSubstitution
	KindUnterminatedBlock
	KindIncludeCycle
	KindInvalidArgument

	// Non-fatal kinds.
	KindIncludeOpenFailure
	KindConditionalStackImbalance
	KindEmptySection
	KindStrayEndMarker
)

var kindNames = map[Kind]string{
	KindMissingArgument:           "MissingArgument",
	KindUnmatchedConditional:      "UnmatchedConditional",
	KindUnresolvedSection:         "UnresolvedSection",
	KindSectionAlreadyClosed:      "SectionAlreadyClosed",
	KindMalformedSubstitution:     "MalformedSubstitution",
	KindUnterminatedBlock:         "UnterminatedBlock",
	KindIncludeCycle:              "IncludeCycle",
	KindInvalidArgument:           "InvalidArgument",
	KindIncludeOpenFailure:        "IncludeOpenFailure",
	KindConditionalStackImbalance: "ConditionalStackImbalance",
	KindEmptySection:              "EmptySection",
	KindStrayEndMarker:            "StrayEndMarker",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Fatal reports whether a diagnostic of this kind aborts the run.
func (k Kind) Fatal() bool {
	switch k {
	case KindMissingArgument, KindUnmatchedConditional, KindUnresolvedSection,
		KindSectionAlreadyClosed, KindMalformedSubstitution, KindUnterminatedBlock,
		KindIncludeCycle, KindInvalidArgument:
		return true
	}
	return false
}

// Pos identifies a line of input.
type Pos struct {
	File string
	Line int // 1-based; 0 when the condition is not tied to a single line
}

// String returns "file:line", or just the file when Line is 0.
func (p Pos) String() string {
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Diagnostic is one structured report produced during a run.
type Diagnostic struct {
	Kind    Kind
	Pos     Pos
	Message string
	Text    string // offending source line without its line terminator
}

// String formats the diagnostic as "file:line: Kind: message".
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Message)
	if d.Text != "" {
		s += fmt.Sprintf(" (line: %q)", d.Text)
	}
	return s
}

// Error is returned for the fatal condition that stopped a run.
type Error struct {
	Diagnostic
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// IsKind reports whether err is, or wraps, a fatal *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == kind
}
