package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/asmprep/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("asmprep", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
asmprep - A line-oriented preprocessor for assembly sources.

Usage:
  asmprep [options] INPUT [-- assembler-flags...]

Arguments:
  INPUT
    Path to the assembly source to expand.
  assembler-flags
    Passed to the assembler, before the preprocessed file.

Options:
`)
		flagSet.PrintDefaults()
	}

	var includes stringList
	defines := defineList{}

	configFlag := flagSet.String("config", "", "Path to an HCL project file. Defaults to "+app.ProjectFileName+" beside INPUT.")
	outFlag := flagSet.String("out", app.DefaultOutputPath, "Path of the preprocessed output file.")
	oFlag := flagSet.String("o", app.DefaultOutputPath, "Path of the preprocessed output file (shorthand).")
	flagSet.Var(&includes, "I", "Add an include search path. May be repeated.")
	flagSet.Var(defines, "D", "Predefine NAME or NAME=VALUE. May be repeated.")
	errFileFlag := flagSet.Bool("err-file", true, "Write diagnostics to <INPUT>.pre.ERR.")
	assemblerFlag := flagSet.String("assembler", "", "Assembler to run on the preprocessed file.")
	linkerFlag := flagSet.String("linker", "", "Linker to run after the assembler.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	rest := flagSet.Args()
	if len(rest) == 0 {
		slog.Debug("No input provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	input := unquote(rest[0])
	forward := rest[1:]
	if len(forward) > 0 && forward[0] == "--" {
		forward = forward[1:]
	}
	slog.Debug("Input determined.", "input", input, "forwarded", forward)

	if input == "" {
		return nil, false, &ExitError{Code: 2, Message: "input path cannot be empty"}
	}

	var outputPath string
	if explicit["out"] {
		outputPath = *outFlag
	} else if explicit["o"] {
		outputPath = *oFlag
	}

	var errFile *bool
	if explicit["err-file"] {
		errFile = errFileFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	var defineMap map[string]*string
	if len(defines) > 0 {
		defineMap = defines
	}

	config, err := app.NewConfig(app.Config{
		InputPath:     input,
		OutputPath:    outputPath,
		ProjectPath:   *configFlag,
		IncludePaths:  includes,
		Defines:       defineMap,
		ErrorFile:     errFile,
		AssemblerPath: *assemblerFlag,
		LinkerPath:    *linkerFlag,
		ForwardArgs:   forward,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// unquote strips one pair of surrounding double quotes, as left behind by
// some IDE build integrations.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
