package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/preproc"
	"github.com/vk/asmprep/internal/testutil"
)

func TestGenerate_CounterPlaceholders(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		block string
		want  []string
	}{
		{
			name:  "plain counter",
			block: "\tmovwf\tbuf+{i}\t; slot\n",
			want:  []string{"\tmovwf\tbuf+1\t; slot\n", "\tmovwf\tbuf+2\t; slot\n", "\tmovwf\tbuf+3\t; slot\n"},
		},
		{
			name:  "padded counter",
			block: "lbl{iii}:\n",
			want:  []string{"lbl001:\n", "lbl002:\n", "lbl003:\n"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := "generate 1 3\n" + tc.block + "end-generate\n"
			result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": src}, app.Config{InputPath: "main.asm"})
			require.NoError(t, result.Err)
			assert.Contains(t, result.Output, strings.Join(tc.want, ""))
			assert.Len(t, testutil.CodeLines(result.Output), 3)
		})
	}
}

func TestGenerate_DefinePlaceholder(t *testing.T) {
	t.Parallel()

	src := "BUF_SIZE equ 2\ngenerate 0 1\n\tclrf {BUF_SIZE}+{i}\nendgen\n"
	result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": src}, app.Config{InputPath: "main.asm"})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"BUF_SIZE equ 2", "clrf 2+0", "clrf 2+1"}, testutil.CodeLines(result.Output))
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		kind preproc.Kind
	}{
		{"unterminated", "generate 1 3\nnop\n", preproc.KindUnterminatedBlock},
		{"malformed placeholder", "generate 1 3\n{}\nend-generate\n", preproc.KindMalformedSubstitution},
		{"non-integer bound", "generate one 3\nnop\nend-generate\n", preproc.KindInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": tc.src}, app.Config{InputPath: "main.asm"})
			testutil.AssertFatal(t, result, tc.kind)
			testutil.AssertDiagnostic(t, result, tc.kind)
		})
	}
}
