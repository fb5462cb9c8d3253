package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunner_RelaysOutputInOrder(t *testing.T) {
	requireShell(t)
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	err := r.Run(context.Background(),
		Tool{Name: "assembler", Path: "sh", Args: []string{"-c", "echo asm"}},
		Tool{Name: "linker", Path: "sh", Args: []string{"-c", "echo link"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "asm\nlink\n", stdout.String())
}

func TestRunner_ExitCodeStopsChain(t *testing.T) {
	requireShell(t)
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	err := r.Run(context.Background(),
		Tool{Name: "assembler", Path: "sh", Args: []string{"-c", "exit 3"}},
		Tool{Name: "linker", Path: "sh", Args: []string{"-c", "echo link"}},
	)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "assembler", exitErr.Tool)
	assert.Empty(t, stdout.String())
}

func TestRunner_SkipsUnconfigured(t *testing.T) {
	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	require.NoError(t, r.Run(context.Background(), Tool{Name: "linker"}))
}

func TestRunner_MissingBinary(t *testing.T) {
	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), Tool{Name: "assembler", Path: "/nonexistent/asm-binary"})
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestAssemblerArgs(t *testing.T) {
	got := AssemblerArgs([]string{"/q"}, []string{"/p16F84", "/e+"}, "out.asm")
	want := []string{"/q", "/p16F84", "/e+", "out.asm"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AssemblerArgs() mismatch (-want +got):\n%s", diff)
	}
}
