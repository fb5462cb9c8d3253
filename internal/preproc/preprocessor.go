package preproc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/vk/asmprep/internal/ctxlog"
	"github.com/vk/asmprep/internal/fsutil"
)

// Preprocessor expands directive-bearing assembly source. It holds only
// configuration; each call to Process starts from a fresh state.
type Preprocessor struct {
	includePaths []string
	defines      map[string]*string
	logger       *slog.Logger
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithIncludePaths adds directories searched for included files after the
// directory of the including file.
func WithIncludePaths(paths ...string) Option {
	return func(p *Preprocessor) { p.includePaths = append(p.includePaths, paths...) }
}

// WithDefines seeds the define table. A nil value defines the name without
// a value. Names are case-insensitive; when two keys differ only in case the
// one sorting last wins.
func WithDefines(defines map[string]*string) Option {
	return func(p *Preprocessor) {
		for _, k := range slices.Sorted(maps.Keys(defines)) {
			p.defines[strings.ToLower(k)] = defines[k]
		}
	}
}

// WithLogger sets the logger used instead of the one carried by the context.
func WithLogger(l *slog.Logger) Option {
	return func(p *Preprocessor) { p.logger = l }
}

// New creates a Preprocessor.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{defines: make(map[string]*string)}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Result summarizes a run. It is returned even when the run failed.
type Result struct {
	Diagnostics []Diagnostic
	Defines     map[string]*string // final define table, keys case-folded
	Sections    []string           // sections flushed, in flush order
}

// Warnings returns the non-fatal diagnostics.
func (r *Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if !d.Kind.Fatal() {
			out = append(out, d)
		}
	}
	return out
}

// state is the mutable context shared by every recursion level of a run.
type state struct {
	defines  *defineTable
	conds    condStack
	sections *sectionRegistry
	includes *includeResolver
	out      *bufio.Writer
	diags    []Diagnostic
	logger   *slog.Logger
}

func (st *state) warn(d Diagnostic) {
	st.diags = append(st.diags, d)
	st.logger.Warn(d.Message, "kind", d.Kind.String(), "file", d.Pos.File, "line", d.Pos.Line)
}

func (st *state) fail(d Diagnostic) error {
	st.diags = append(st.diags, d)
	st.logger.Error(d.Message, "kind", d.Kind.String(), "file", d.Pos.File, "line", d.Pos.Line)
	return &Error{Diagnostic: d}
}

// ProcessFile opens path and processes it as the top-level input.
func (p *Preprocessor) ProcessFile(ctx context.Context, path string, w io.Writer) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	return p.Process(ctx, path, f, w)
}

// Process reads source from r, labelled name for diagnostics and include
// resolution, and writes the expanded stream to w. The first fatal
// condition is returned as *Error.
func (p *Preprocessor) Process(ctx context.Context, name string, r io.Reader, w io.Writer) (*Result, error) {
	logger := p.logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}
	logger = logger.With("input", name)
	logger.Debug("Preprocessing started.", "include_paths", len(p.includePaths), "predefines", len(p.defines))

	st := &state{
		defines:  newDefineTable(),
		sections: newSectionRegistry(),
		includes: &includeResolver{searchPaths: p.includePaths},
		out:      bufio.NewWriter(w),
		logger:   logger,
	}
	for k, v := range p.defines {
		st.defines.set(k, v)
	}

	if fsutil.IsFile(name) {
		st.includes.enter(canonical(name), name)
	}

	runErr := newFileParser(st, name, r).run(ctx)
	if runErr == nil {
		runErr = st.finish(name)
	}
	flushErr := st.out.Flush()

	res := &Result{
		Diagnostics: st.diags,
		Defines:     st.defines.snapshot(),
		Sections:    st.sections.flushed,
	}
	if runErr != nil {
		return res, runErr
	}
	if flushErr != nil {
		return res, fmt.Errorf("failed to write output: %w", flushErr)
	}
	logger.Debug("Preprocessing finished.", "diagnostics", len(st.diags), "sections", len(res.Sections))
	return res, nil
}

// finish applies the end-of-run checks.
func (st *state) finish(top string) error {
	if d := st.conds.depth(); d != 0 {
		st.warn(Diagnostic{
			Kind:    KindConditionalStackImbalance,
			Pos:     Pos{File: top},
			Message: fmt.Sprintf("%d conditional block(s) still open at end of input", d),
		})
	}

	open := st.sections.unresolved()
	if len(open) == 0 {
		return nil
	}
	parts := make([]string, 0, len(open))
	for _, s := range open {
		parts = append(parts, fmt.Sprintf("%s (macros to insert there: %s)", s.name, strings.Join(s.pending(), ", ")))
	}
	return st.fail(Diagnostic{
		Kind:    KindUnresolvedSection,
		Pos:     open[0].openedAt,
		Message: "section directive not found for section " + strings.Join(parts, "; "),
	})
}
