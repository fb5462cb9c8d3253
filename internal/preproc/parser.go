package preproc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	commentLeader = ";"
	noteMarker    = "; PRE-PREPROCESSOR"
)

// line is one physical input line.
type line struct {
	raw    string   // as read, including the line terminator
	tokens []string // whitespace-separated fields before the comment leader
	pos    Pos
}

func (l *line) args() []string { return l.tokens[1:] }

// text returns the line without its terminator.
func (l *line) text() string { return strings.TrimRight(l.raw, "\r\n") }

// tokenize splits the part of s before the first comment leader on whitespace.
func tokenize(s string) []string {
	if i := strings.Index(s, commentLeader); i >= 0 {
		s = s[:i]
	}
	return strings.Fields(s)
}

// fileParser drives one input file. Splice captures belong to the file
// that made them; everything else lives in the shared state.
type fileParser struct {
	st      *state
	name    string
	in      *bufio.Reader
	lineNo  int
	splices spliceSet
}

func newFileParser(st *state, name string, r io.Reader) *fileParser {
	return &fileParser{st: st, name: name, in: bufio.NewReader(r)}
}

// next returns the next line, or io.EOF once the input is exhausted.
func (fp *fileParser) next() (*line, error) {
	raw, err := fp.in.ReadString('\n')
	if raw == "" {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	fp.lineNo++
	return &line{raw: raw, tokens: tokenize(raw), pos: Pos{File: fp.name, Line: fp.lineNo}}, nil
}

func (fp *fileParser) run(ctx context.Context) error {
	fp.st.logger.Debug("Parsing file.", "file", fp.name, "cond_depth", fp.st.conds.depth())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l, err := fp.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", fp.name, err)
		}
		if err := fp.dispatch(ctx, l); err != nil {
			return err
		}
	}
}

func (fp *fileParser) dispatch(ctx context.Context, l *line) error {
	if len(l.tokens) == 0 {
		fp.write(l.raw)
		return nil
	}

	d, ok := lookupDirective(l.tokens[0])
	if !ok {
		if len(l.tokens) > 2 && isAssignment(l.tokens[1]) {
			return fp.handleAssignment(ctx, l)
		}
		fp.emitSource(l)
		return nil
	}

	if len(l.args()) < d.minArgs {
		return fp.fail(l, KindMissingArgument,
			fmt.Sprintf("not enough arguments for %s: need at least %d", d.name, d.minArgs))
	}
	if d.structural && fp.st.conds.suppressed() {
		return fp.strip(l, d)
	}
	fp.st.logger.Debug("Handling directive.", "directive", d.name, "file", l.pos.File, "line", l.pos.Line)
	return d.handle(fp, ctx, l)
}

// emitSource writes an ordinary line, commented out when suppressed.
func (fp *fileParser) emitSource(l *line) {
	if fp.st.conds.suppressed() {
		fp.write(commentLeader + " " + l.raw)
		return
	}
	fp.write(l.raw)
}

func (fp *fileParser) write(s string) {
	fp.st.out.WriteString(s)
}

// note writes a provenance comment.
func (fp *fileParser) note(format string, args ...any) {
	fp.write(noteMarker + ", " + fmt.Sprintf(format, args...) + "\n")
}

// echo writes a provenance comment quoting the directive line.
func (fp *fileParser) echo(l *line) {
	fp.write(noteMarker + ": " + strings.TrimSpace(l.raw) + "\n")
}

func (fp *fileParser) warn(l *line, kind Kind, msg string) {
	fp.st.warn(Diagnostic{Kind: kind, Pos: l.pos, Message: msg, Text: l.text()})
}

func (fp *fileParser) fail(l *line, kind Kind, msg string) error {
	return fp.failAt(l.pos, l.text(), kind, msg)
}

func (fp *fileParser) failAt(pos Pos, text string, kind Kind, msg string) error {
	fp.write(noteMarker + " ERROR: " + msg + "\n")
	return fp.st.fail(Diagnostic{Kind: kind, Pos: pos, Message: msg, Text: strings.TrimRight(text, "\r\n")})
}

// strip removes a structural directive found inside a false conditional,
// together with the block it opens.
func (fp *fileParser) strip(l *line, d *directive) error {
	fp.note("skipping special directive due to condition stack")
	fp.echo(l)
	fp.note("condition stack depth %d", fp.st.conds.depth())
	if d.endMarkers == nil {
		return nil
	}
	fp.note("stripping %s block", d.name)
	_, err := fp.capture(l, d)
	return err
}

// capture reads lines verbatim up to the end marker of the block opened by l.
func (fp *fileParser) capture(l *line, d *directive) ([]capturedLine, error) {
	var block []capturedLine
	for {
		next, err := fp.next()
		if errors.Is(err, io.EOF) {
			return nil, fp.fail(l, KindUnterminatedBlock,
				fmt.Sprintf("did not find end of %s block in file %s", d.name, fp.name))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fp.name, err)
		}
		if len(next.tokens) > 0 && d.endMarkers[normalizeKeyword(next.tokens[0])] {
			return block, nil
		}
		block = append(block, capturedLine{text: next.raw, pos: next.pos})
	}
}

func isAssignment(tok string) bool {
	switch strings.ToLower(tok) {
	case "set", "equ":
		return true
	}
	return false
}
