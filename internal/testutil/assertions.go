package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/preproc"
)

// AssertFatal checks that the run stopped with a fatal condition of kind.
func AssertFatal(t *testing.T, result *HarnessResult, kind preproc.Kind) {
	t.Helper()
	require.Error(t, result.Err)
	require.True(t, preproc.IsKind(result.Err, kind),
		"expected fatal %s, got: %v", kind, result.Err)
}

// AssertDiagnostic checks that the error file reports a diagnostic of kind.
func AssertDiagnostic(t *testing.T, result *HarnessResult, kind preproc.Kind) {
	t.Helper()
	require.True(t,
		strings.Contains(result.ErrFile, ": "+kind.String()+": "),
		"expected a %s diagnostic in the error file, got:\n%s", kind, result.ErrFile,
	)
}

// CodeLines returns the lines of out that are neither blank nor comments.
func CodeLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}
