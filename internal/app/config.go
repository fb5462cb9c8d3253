package app

import "errors"

// DefaultOutputPath is where the expanded source is written when neither
// the CLI nor the project file names an output.
const DefaultOutputPath = "_pre_processed_file.asm"

// ProjectFileName is the project file looked up beside the input when no
// explicit project path is given.
const ProjectFileName = "asmprep.hcl"

// Config holds all the necessary configuration for an App instance to run.
// Zero values mean "not set on the command line" so the project file can
// supply them.
type Config struct {
	InputPath   string
	OutputPath  string
	ProjectPath string

	IncludePaths []string
	Defines      map[string]*string
	ErrorFile    *bool

	AssemblerPath string
	LinkerPath    string
	ForwardArgs   []string // appended to the assembler command line

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
