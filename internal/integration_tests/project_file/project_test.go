package integration_tests

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/testutil"
)

func TestProject_DiscoveredBesideInput(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"src/asmprep.hcl": `
include_paths = ["../inc"]
defines = {
  BOARD = "rev2"
  DEBUG = null
}
`,
		"src/main.asm":  "include board.inc\nifdef DEBUG\n\tnop ; {BOARD}\nendif\nsection init\n",
		"inc/board.inc": "generate 1 1\n\tinsert board_{BOARD}_init init\nend-generate\ninsert debug_init init 1\n",
	}

	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "src/main.asm"})
	require.NoError(t, result.Err)
	assert.Equal(t, []string{
		"insert board_rev2_init init",
		"ifdef DEBUG",
		"nop ; {BOARD}",
		"endif",
		"debug_init",
	}, testutil.CodeLines(result.Output))
}

func TestProject_ExplicitConfigWithToolchain(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	files := map[string]string{
		"build/project.hcl": `
error_file = false

assembler {
  path = "sh"
  args = ["-c", "echo assembled $1", "asm"]
}

linker {
  path = "sh"
  args = ["-c", "echo linked"]
}
`,
		"main.asm": "\tnop\n",
	}

	result := testutil.RunIntegrationTest(t, files, app.Config{
		InputPath:   "main.asm",
		ProjectPath: filepath.Join("build", "project.hcl"),
	})
	require.NoError(t, result.Err)
	assert.Equal(t, "assembled "+filepath.Join(result.Dir, "out.asm")+"\nlinked\n", result.ToolOutput)
	assert.Empty(t, result.ErrFile)
}

func TestProject_InvalidFileFailsRun(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"asmprep.hcl": `unknown_setting = 1`,
		"main.asm":    "\tnop\n",
	}
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "main.asm"})
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed to load project file")
	assert.Empty(t, result.Output)
}
