package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vk/asmprep/internal/ctxlog"
	"github.com/vk/asmprep/internal/notify"
	"github.com/vk/asmprep/internal/preproc"
	"github.com/vk/asmprep/internal/toolchain"
)

// Run executes the main application logic: preprocess the input, write the
// error file, then chain the assembler and linker. A fatal preprocessing
// condition is returned as *preproc.Error and a failing tool as
// *toolchain.ExitError.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	project, err := a.loadProject(ctx)
	if err != nil {
		return err
	}
	s := a.resolve(project)
	ctx = ctxlog.With(ctx, "output", s.output)
	logger = ctxlog.FromContext(ctx)
	logger.Debug("Settings resolved.",
		"output", s.output,
		"error_file", s.errorFile,
		"include_paths", s.includePaths,
		"defines", len(s.defines),
	)

	res, runErr := a.preprocess(ctx, s)
	if res != nil && s.errorFile != "" {
		if err := writeErrorFile(s.errorFile, res.Diagnostics); err != nil {
			logger.Error("Failed to write error file.", "path", s.errorFile, "error", err)
		}
	}

	if runErr == nil {
		logger.Info("Preprocessing finished.", "output", s.output, "warnings", len(res.Warnings()))
		runErr = a.chain(ctx, s)
	}

	a.publish(ctx, s, res, runErr)

	logger.Debug("App.Run method finished.")
	return runErr
}

func (a *App) preprocess(ctx context.Context, s *settings) (*preproc.Result, error) {
	out, err := os.Create(s.output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	p := preproc.New(
		preproc.WithIncludePaths(s.includePaths...),
		preproc.WithDefines(s.defines),
	)
	res, runErr := p.ProcessFile(ctx, s.input, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close output file: %w", err)
	}
	return res, runErr
}

func (a *App) chain(ctx context.Context, s *settings) error {
	var tools []toolchain.Tool
	if s.assembler != nil {
		tools = append(tools, toolchain.Tool{
			Name: "assembler",
			Path: s.assembler.Path,
			Args: toolchain.AssemblerArgs(s.assembler.Args, a.config.ForwardArgs, s.output),
		})
	}
	if s.linker != nil {
		tools = append(tools, toolchain.Tool{Name: "linker", Path: s.linker.Path, Args: s.linker.Args})
	}
	if len(tools) == 0 {
		return nil
	}
	return a.runner.Run(ctx, tools...)
}

// publish sends the final status when a notify block is configured. Errors
// are logged only.
func (a *App) publish(ctx context.Context, s *settings, res *preproc.Result, runErr error) {
	if s.notify == nil {
		return
	}
	status := notify.Status{Input: s.input, Output: s.output, Success: runErr == nil}
	if res != nil {
		status.Diagnostics = len(res.Diagnostics)
		status.Warnings = len(res.Warnings())
	}
	if runErr != nil {
		status.Message = runErr.Error()
		status.ExitCode = 1
		var perr *preproc.Error
		if errors.As(runErr, &perr) {
			status.FatalKind = perr.Kind.String()
		}
		var toolErr *toolchain.ExitError
		if errors.As(runErr, &toolErr) {
			status.ExitCode = toolErr.Code
		}
	}

	if err := a.newNotifier(*s.notify).Publish(ctx, status); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to publish build status.", "error", err)
	}
}

// writeErrorFile rewrites path with one line per diagnostic.
func writeErrorFile(path string, diags []preproc.Diagnostic) error {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
