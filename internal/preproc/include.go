package preproc

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/asmprep/internal/fsutil"
)

// includeResolver locates included files and tracks the files currently
// being expanded so that re-entry can be rejected.
type includeResolver struct {
	searchPaths []string
	active      []string // canonical identities, outermost first
	names       []string // the same files as written, for messages
}

// unquoteInclude strips "..." or <...> quoting from an include operand.
func unquoteInclude(target string) string {
	if len(target) >= 2 {
		first, last := target[0], target[len(target)-1]
		if (first == '"' && last == '"') || (first == '<' && last == '>') {
			return target[1 : len(target)-1]
		}
	}
	return strings.TrimPrefix(target, "<")
}

// resolve finds target relative to the including file, then each search
// path, then the working directory.
func (r *includeResolver) resolve(target, fromFile string) (string, error) {
	var candidates []string
	if filepath.IsAbs(target) {
		candidates = []string{target}
	} else {
		if fromFile != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(fromFile), target))
		}
		for _, dir := range r.searchPaths {
			candidates = append(candidates, filepath.Join(dir, target))
		}
		candidates = append(candidates, target)
	}

	if path, ok := fsutil.FirstFile(candidates...); ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", target, fs.ErrNotExist)
}

// canonical returns the identity used for cycle detection.
func canonical(path string) string {
	return fsutil.Canonical(path)
}

// enter pushes a file onto the active expansion path. It returns false,
// leaving the path untouched, when the file is already on it.
func (r *includeResolver) enter(id, name string) bool {
	for _, a := range r.active {
		if a == id {
			return false
		}
	}
	r.active = append(r.active, id)
	r.names = append(r.names, name)
	return true
}

func (r *includeResolver) leave() {
	r.active = r.active[:len(r.active)-1]
	r.names = r.names[:len(r.names)-1]
}

// chain renders the active path ending at next, e.g. "a.asm -> b.inc -> a.asm".
func (r *includeResolver) chain(next string) string {
	parts := append(append([]string(nil), r.names...), next)
	return strings.Join(parts, " -> ")
}

// hasStructuralDirective reports whether any line of data starts with a
// directive that needs expansion here rather than by the assembler.
func hasStructuralDirective(data []byte) bool {
	for _, raw := range bytes.Split(data, []byte("\n")) {
		tokens := tokenize(string(raw))
		if len(tokens) == 0 {
			continue
		}
		if d, ok := lookupDirective(tokens[0]); ok && d.structural {
			return true
		}
	}
	return false
}

// handleInclude expands an included file in place when it carries
// structural directives, and otherwise leaves the include for the assembler.
func (fp *fileParser) handleInclude(ctx context.Context, l *line) error {
	if fp.st.conds.suppressed() {
		fp.note("skipping include directive due to condition stack")
		fp.write(l.raw)
		return nil
	}

	target := unquoteInclude(l.args()[0])
	path, err := fp.st.includes.resolve(target, fp.name)
	var data []byte
	if err == nil {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fp.note("failed to open include file: %s", target)
		fp.write(l.raw)
		fp.warn(l, KindIncludeOpenFailure, fmt.Sprintf("failed to open include file: %v", err))
		return nil
	}

	if !hasStructuralDirective(data) {
		fp.note("skipping expanding included file: %s", target)
		fp.write(l.raw)
		return nil
	}

	if !fp.st.includes.enter(canonical(path), path) {
		return fp.fail(l, KindIncludeCycle,
			fmt.Sprintf("include cycle: %s", fp.st.includes.chain(path)))
	}
	defer fp.st.includes.leave()

	fp.note("including: %s", target)
	depth := fp.st.conds.depth()
	if err := newFileParser(fp.st, path, bytes.NewReader(data)).run(ctx); err != nil {
		return err
	}
	if after := fp.st.conds.depth(); after != depth {
		fp.warn(l, KindConditionalStackImbalance,
			fmt.Sprintf("conditional stack depth changed from %d to %d after including %s", depth, after, path))
	}
	fp.write("\n")
	return nil
}
