package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/cli"
	"github.com/vk/asmprep/internal/hcl"
	"github.com/vk/asmprep/internal/preproc"
	"github.com/vk/asmprep/internal/toolchain"
)

// main is the entrypoint for the asmprep application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	asmprepApp := app.NewApp(outW, appConfig, hcl.NewLoader())
	return exitCode(asmprepApp.Run(ctx))
}

// exitCode maps run failures onto process exit codes: the assembler's own
// status is relayed, preprocessing failures exit with 1.
func exitCode(err error) error {
	if err == nil {
		return nil
	}
	var toolErr *toolchain.ExitError
	if errors.As(err, &toolErr) {
		return &cli.ExitError{Code: toolErr.Code, Message: toolErr.Error()}
	}
	var perr *preproc.Error
	if errors.As(err, &perr) {
		return &cli.ExitError{Code: 1, Message: "preprocessing failed: " + perr.Error()}
	}
	return err
}
