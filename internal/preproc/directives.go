package preproc

import (
	"context"
	"fmt"
	"strings"
)

// directive describes how a keyword is handled.
type directive struct {
	name    string
	minArgs int
	// structural directives are stripped, not executed, inside a false
	// conditional, and their presence makes an included file expandable.
	structural bool
	// endMarkers is set for directives that open a captured block.
	endMarkers map[string]bool
	handle     func(fp *fileParser, ctx context.Context, l *line) error
}

var directives = make(map[string]*directive)

// registerDirective adds d under its name and every alternative spelling.
func registerDirective(d *directive, aliases ...string) {
	for _, name := range append([]string{d.name}, aliases...) {
		key := normalizeKeyword(name)
		if _, exists := directives[key]; exists {
			panic(fmt.Sprintf("directive '%s' already registered", name))
		}
		directives[key] = d
	}
}

// normalizeKeyword case-folds tok and drops one leading '#'.
func normalizeKeyword(tok string) string {
	return strings.ToLower(strings.TrimPrefix(tok, "#"))
}

// spellings returns the hyphenated, underscored and joined forms of a
// two-word keyword such as "splice-before".
func spellings(hyphenated string) []string {
	return []string{
		hyphenated,
		strings.ReplaceAll(hyphenated, "-", "_"),
		strings.ReplaceAll(hyphenated, "-", ""),
	}
}

func markerSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[normalizeKeyword(n)] = true
	}
	return m
}

func lookupDirective(tok string) (*directive, bool) {
	d, ok := directives[normalizeKeyword(tok)]
	return d, ok
}

var (
	generateEndSpellings = append([]string{"endgen"}, spellings("end-generate")...)
	spliceEndSpellings   = spellings("end-splice")

	generateEnd = markerSet(generateEndSpellings...)
	spliceEnd   = markerSet(spliceEndSpellings...)
)

func init() {
	registerDirective(&directive{name: "if", minArgs: 1, handle: (*fileParser).handleIf})
	registerDirective(&directive{name: "ifdef", minArgs: 1, handle: (*fileParser).handleIfdef})
	registerDirective(&directive{name: "ifndef", minArgs: 1, handle: (*fileParser).handleIfndef})
	registerDirective(&directive{name: "else", handle: (*fileParser).handleElse})
	registerDirective(&directive{name: "endif", handle: (*fileParser).handleEndif})
	registerDirective(&directive{name: "define", minArgs: 1, handle: (*fileParser).handleDefine})
	registerDirective(&directive{name: "undefine", minArgs: 1, handle: (*fileParser).handleUndefine})
	registerDirective(&directive{name: "include", minArgs: 1, handle: (*fileParser).handleInclude})

	registerDirective(&directive{name: "insert", minArgs: 2, structural: true, handle: (*fileParser).handleInsert})
	registerDirective(&directive{name: "section", minArgs: 1, structural: true, handle: (*fileParser).handleSection})
	registerDirective(&directive{name: "generate", minArgs: 2, structural: true, endMarkers: generateEnd, handle: (*fileParser).handleGenerate})
	registerDirective(&directive{name: "splice-before", structural: true, endMarkers: spliceEnd, handle: spliceHandler(spliceBefore)},
		spellings("splice-before")[1:]...)
	registerDirective(&directive{name: "splice-between", structural: true, endMarkers: spliceEnd, handle: spliceHandler(spliceBetween)},
		spellings("splice-between")[1:]...)
	registerDirective(&directive{name: "splice-after", structural: true, endMarkers: spliceEnd, handle: spliceHandler(spliceAfter)},
		spellings("splice-after")[1:]...)
	registerDirective(&directive{name: "splice-empty", structural: true, endMarkers: spliceEnd, handle: spliceHandler(spliceEmpty)},
		spellings("splice-empty")[1:]...)

	for _, end := range [][]string{spliceEndSpellings, generateEndSpellings} {
		registerDirective(&directive{name: end[0], structural: true, handle: (*fileParser).handleStrayEnd}, end[1:]...)
	}
}

func (fp *fileParser) handleIf(_ context.Context, l *line) error {
	fp.st.conds.push(frameUnresolved)
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleIfdef(_ context.Context, l *line) error {
	fp.st.conds.push(frameFor(fp.st.defines.has(l.args()[0])))
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleIfndef(_ context.Context, l *line) error {
	fp.st.conds.push(frameFor(!fp.st.defines.has(l.args()[0])))
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleElse(_ context.Context, l *line) error {
	if !fp.st.conds.invert() {
		return fp.fail(l, KindUnmatchedConditional, "unmatched else directive in "+fp.name)
	}
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleEndif(_ context.Context, l *line) error {
	if !fp.st.conds.pop() {
		return fp.fail(l, KindUnmatchedConditional, "unmatched endif directive in "+fp.name)
	}
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleDefine(_ context.Context, l *line) error {
	if fp.st.conds.suppressed() {
		fp.emitSource(l)
		return nil
	}
	name := l.args()[0]
	var value *string
	if len(l.tokens) > 2 {
		v := strings.Join(l.tokens[2:], " ")
		value = &v
	}
	fp.st.defines.set(name, value)
	fp.note("caught define: %s", strings.ToLower(name))
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleUndefine(_ context.Context, l *line) error {
	if fp.st.conds.suppressed() {
		fp.emitSource(l)
		return nil
	}
	name := l.args()[0]
	fp.st.defines.unset(name)
	fp.note("caught undefine: %s", strings.ToLower(name))
	fp.write(l.raw)
	return nil
}

// handleAssignment treats "<name> set|equ <value...>" as a define.
func (fp *fileParser) handleAssignment(_ context.Context, l *line) error {
	if fp.st.conds.suppressed() {
		fp.emitSource(l)
		return nil
	}
	name := l.tokens[0]
	value := strings.Join(l.tokens[2:], " ")
	fp.st.defines.set(name, &value)
	fp.note("caught '%s': %s", strings.ToLower(l.tokens[1]), strings.ToLower(name))
	fp.write(l.raw)
	return nil
}

func (fp *fileParser) handleStrayEnd(_ context.Context, l *line) error {
	fp.warn(l, KindStrayEndMarker, "end marker without an open block")
	fp.note("ignoring end marker without an open block")
	fp.echo(l)
	return nil
}
