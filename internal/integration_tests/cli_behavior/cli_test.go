package integration_tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/asmprep/internal/app"
	"github.com/vk/asmprep/internal/cli"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-config", "/proj/asmprep.hcl",
				"-out", "/tmp/out.asm",
				"-I", "inc", "-I", "/usr/share/inc",
				"-D", "FOO", "-D", "CLOCK=4000000", "-D", "EMPTY=",
				"-err-file=false",
				"-assembler", "mpasmx_orig",
				"-linker", "mplink",
				"--log-level=debug",
				"--log-format=json",
				"main.asm", "--", "/p16F84", "/q",
			},
			expectedConfig: &app.Config{
				InputPath:     "main.asm",
				OutputPath:    "/tmp/out.asm",
				ProjectPath:   "/proj/asmprep.hcl",
				IncludePaths:  []string{"inc", "/usr/share/inc"},
				Defines:       map[string]*string{"FOO": nil, "CLOCK": strPtr("4000000"), "EMPTY": strPtr("")},
				ErrorFile:     boolPtr(false),
				AssemblerPath: "mpasmx_orig",
				LinkerPath:    "mplink",
				ForwardArgs:   []string{"/p16F84", "/q"},
				LogLevel:      "debug",
				LogFormat:     "json",
			},
		},
		{
			name: "Shorthand output flag and defaults",
			args: []string{"-o", "x.asm", "main.asm"},
			expectedConfig: &app.Config{
				InputPath:   "main.asm",
				OutputPath:  "x.asm",
				ForwardArgs: []string{},
				LogLevel:    "info",
				LogFormat:   "text",
			},
		},
		{
			name: "Quoted input and forwarded flags without separator",
			args: []string{`"C:/proj/main.asm"`, "/e+"},
			expectedConfig: &app.Config{
				InputPath:   "C:/proj/main.asm",
				ForwardArgs: []string{"/e+"},
				LogLevel:    "info",
				LogFormat:   "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:       "No input triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "INPUT"), "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "main.asm"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "main.asm"},
			expectErr: true,
		},
		{
			name:      "Define without a name returns an error",
			args:      []string{"-D", "=1", "main.asm"},
			expectErr: true,
		},
		{
			name:      "Empty quoted input returns an error",
			args:      []string{`""`},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			appConfig, shouldExit, err := cli.Parse(tc.args, out)

			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*cli.ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, appConfig); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}
