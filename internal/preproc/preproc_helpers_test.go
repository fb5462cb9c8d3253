package preproc

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// process runs src through a fresh Preprocessor under the name "test.asm".
func process(t *testing.T, src string, opts ...Option) (string, *Result, error) {
	t.Helper()
	var out bytes.Buffer
	res, err := New(opts...).Process(context.Background(), "test.asm", strings.NewReader(src), &out)
	return out.String(), res, err
}

// codeLines returns the trimmed lines of out that are neither blank nor comments.
func codeLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, commentLeader) {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func kinds(diags []Diagnostic) []Kind {
	var out []Kind
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}
