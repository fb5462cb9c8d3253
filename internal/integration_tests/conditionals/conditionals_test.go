package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/preproc"
	"github.com/vk/asmprep/internal/testutil"
)

// The worked example: every directive line survives verbatim and only the
// selected branch stays live code.
func TestConditionals_DefineSelectsBranch(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.asm": "define FOO 1\nifdef FOO\nmovlw 1\nelse\nmovlw 0\nendif\n",
	}
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "main.asm"})
	require.NoError(t, result.Err)

	for _, line := range []string{"define FOO 1\n", "ifdef FOO\n", "else\n", "endif\n"} {
		assert.Contains(t, result.Output, line)
	}
	code := testutil.CodeLines(result.Output)
	assert.Contains(t, code, "movlw 1")
	assert.NotContains(t, code, "movlw 0")
	assert.Empty(t, result.ErrFile)
}

func TestConditionals_BalancedNestingLeavesNoImbalance(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.asm": `ifdef A
 ifndef B
  if X > 1
   nop
  else
   nop
  endif
 else
  nop
 endif
endif
`,
	}
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "main.asm"})
	require.NoError(t, result.Err)
	assert.Empty(t, result.ErrFile)
	assert.NotContains(t, result.LogOutput, "ConditionalStackImbalance")
}

func TestConditionals_UnbalancedEndWarns(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.asm": "ifdef A\nnop\n"}
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "main.asm"})
	require.NoError(t, result.Err)
	testutil.AssertDiagnostic(t, result, preproc.KindConditionalStackImbalance)
}

func TestConditionals_ComplementaryFrames(t *testing.T) {
	t.Parallel()

	src := "ifdef X\nseen_ifdef\nendif\nifndef X\nseen_ifndef\nendif\n"
	testCases := []struct {
		name    string
		defines map[string]*string
		want    string
	}{
		{"undefined", nil, "seen_ifndef"},
		{"defined on command line", map[string]*string{"X": nil}, "seen_ifdef"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": src},
				app.Config{InputPath: "main.asm", Defines: tc.defines})
			require.NoError(t, result.Err)

			var live []string
			for _, l := range testutil.CodeLines(result.Output) {
				if l == "seen_ifdef" || l == "seen_ifndef" {
					live = append(live, l)
				}
			}
			assert.Equal(t, []string{tc.want}, live)
		})
	}
}

func TestConditionals_UnmatchedEndifIsFatal(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": "nop\nendif\n"}, app.Config{InputPath: "main.asm"})
	testutil.AssertFatal(t, result, preproc.KindUnmatchedConditional)
	assert.Contains(t, result.ErrFile, "main.asm:2: UnmatchedConditional")
}
