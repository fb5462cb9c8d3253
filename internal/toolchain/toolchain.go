package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/vk/asmprep/internal/ctxlog"
)

// Tool is one external program invocation.
type Tool struct {
	Name string
	Path string
	Args []string
}

// ExitError reports that a tool ran but exited with a non-zero status.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// Runner executes tools sequentially, relaying their output.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner relaying to the process streams.
func NewRunner() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes each tool in order and stops at the first failure. A tool
// with an empty Path is skipped.
func (r *Runner) Run(ctx context.Context, tools ...Tool) error {
	for _, t := range tools {
		if t.Path == "" {
			continue
		}
		if err := r.run(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) run(ctx context.Context, t Tool) error {
	logger := ctxlog.FromContext(ctx).With("tool", t.Name, "path", t.Path)
	logger.Info("Running tool.", "args", t.Args)

	cmd := exec.CommandContext(ctx, t.Path, t.Args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		logger.Debug("Tool finished successfully.")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		logger.Error("Tool failed.", "exit_code", exitErr.ExitCode())
		return &ExitError{Tool: t.Name, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to run %s %q: %w", t.Name, t.Path, err)
}

// AssemblerArgs builds the assembler command line: configured args, then
// the forwarded flags, then the preprocessed file.
func AssemblerArgs(configured, forwarded []string, outputFile string) []string {
	args := make([]string, 0, len(configured)+len(forwarded)+1)
	args = append(args, configured...)
	args = append(args, forwarded...)
	return append(args, outputFile)
}
