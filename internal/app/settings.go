package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/asmprep/internal/config"
	"github.com/vk/asmprep/internal/ctxlog"
	"github.com/vk/asmprep/internal/fsutil"
)

// settings is the effective configuration of one run after the CLI values
// have been laid over the project file.
type settings struct {
	input        string
	output       string
	errorFile    string // empty when disabled
	includePaths []string
	defines      map[string]*string
	assembler    *config.Tool
	linker       *config.Tool
	notify       *config.Notify
}

// loadProject returns the project named by -config, or the one found beside
// the input. A missing implicit project is not an error.
func (a *App) loadProject(ctx context.Context) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)

	path := a.config.ProjectPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(filepath.Dir(a.config.InputPath), ProjectFileName)
		if !fsutil.IsFile(path) {
			logger.Debug("No project file found.", "looked_for", path)
			return &config.Project{}, nil
		}
	}
	if a.loader == nil {
		return nil, fmt.Errorf("no loader configured for project file %s", path)
	}

	project, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load project file: %w", err)
	}
	logger.Info("Project file loaded.", "path", path, "explicit", explicit)
	return project, nil
}

// resolve merges CLI configuration over the project.
func (a *App) resolve(project *config.Project) *settings {
	cfg := a.config
	s := &settings{input: cfg.InputPath, notify: project.Notify}

	switch {
	case cfg.OutputPath != "":
		s.output = cfg.OutputPath
	case project.Output != "":
		s.output = project.Output
	default:
		s.output = DefaultOutputPath
	}

	errFile := true
	if project.ErrorFile != nil {
		errFile = *project.ErrorFile
	}
	if cfg.ErrorFile != nil {
		errFile = *cfg.ErrorFile
	}
	if errFile {
		s.errorFile = ErrorFilePath(cfg.InputPath)
	}

	s.includePaths = append(append([]string{}, cfg.IncludePaths...), project.IncludePaths...)

	// Define names are case-insensitive, so a CLI "-D foo" replaces a
	// project "FOO".
	s.defines = make(map[string]*string, len(project.Defines)+len(cfg.Defines))
	for _, layer := range []map[string]*string{project.Defines, cfg.Defines} {
		for k, v := range layer {
			s.defines[strings.ToLower(k)] = v
		}
	}

	s.assembler = overrideTool(project.Assembler, cfg.AssemblerPath)
	s.linker = overrideTool(project.Linker, cfg.LinkerPath)
	return s
}

func overrideTool(t *config.Tool, path string) *config.Tool {
	if path == "" {
		return t
	}
	if t == nil {
		return &config.Tool{Path: path}
	}
	return &config.Tool{Path: path, Args: t.Args}
}

// ErrorFilePath returns "<input without extension>.pre.ERR".
func ErrorFilePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pre.ERR"
}
