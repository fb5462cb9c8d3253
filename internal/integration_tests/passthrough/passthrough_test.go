package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/testutil"
)

func TestPassThrough_NoDirectivesIsByteIdentical(t *testing.T) {
	t.Parallel()

	src := "; blink.asm\r\n" +
		"\tlist\tp=16f84a\r\n" +
		"\t__config 0x3FF1\r\n" +
		"\r\n" +
		"\torg 0x00\r\n" +
		"start\tbsf\tSTATUS, RP0 ; bank 1 {not a placeholder}\r\n" +
		"loop:\tgoto loop\n" +
		"\tend"

	result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": src}, app.Config{InputPath: "main.asm"})
	require.NoError(t, result.Err)
	assert.Equal(t, src, result.Output)
	assert.Empty(t, result.ErrFile)
}

func TestPassThrough_ErrorFileCanBeDisabled(t *testing.T) {
	t.Parallel()

	disabled := false
	result := testutil.RunIntegrationTest(t, map[string]string{"main.asm": "section s\n"},
		app.Config{InputPath: "main.asm", ErrorFile: &disabled})
	require.NoError(t, result.Err)
	assert.Empty(t, result.ErrFile)
}
