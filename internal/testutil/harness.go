package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/hcl"
	"github.com/vk/asmprep/internal/toolchain"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir        string // temporary root holding the input files
	Output     string // contents of the preprocessed file, empty if none was written
	ErrFile    string // contents of the .pre.ERR file, empty if none was written
	LogOutput  string
	ToolOutput string
	Err        error
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files into a temporary directory and
// runs the app against them. Relative paths in cfg are resolved against that
// directory; an empty OutputPath becomes "out.asm" there.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(tmpDir, p)
	}
	cfg.InputPath = abs(cfg.InputPath)
	cfg.ProjectPath = abs(cfg.ProjectPath)
	if cfg.OutputPath == "" {
		cfg.OutputPath = "out.asm"
	}
	cfg.OutputPath = abs(cfg.OutputPath)
	cfg.IncludePaths = append([]string(nil), cfg.IncludePaths...)
	for i, p := range cfg.IncludePaths {
		cfg.IncludePaths[i] = abs(p)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	logBuffer := &SafeBuffer{}
	toolBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, &cfg, hcl.NewLoader(),
		app.WithRunner(&toolchain.Runner{Stdout: toolBuffer, Stderr: toolBuffer}),
	)

	runErr := testApp.Run(ctx)

	if os.Getenv("ASMPREP_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Dir:        tmpDir,
		Output:     readIfExists(t, cfg.OutputPath),
		ErrFile:    readIfExists(t, app.ErrorFilePath(cfg.InputPath)),
		LogOutput:  logBuffer.String(),
		ToolOutput: toolBuffer.String(),
		Err:        runErr,
	}
}

func readIfExists(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}
