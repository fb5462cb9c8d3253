package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/asmprep/internal/config"
	"github.com/vk/asmprep/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and decodes the project file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	project, err := l.translateProject(ctx, &root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	project.Source = path

	logger.Debug("HCL loading complete.",
		"include_paths", len(project.IncludePaths),
		"defines", len(project.Defines),
		"assembler", project.Assembler != nil,
		"linker", project.Linker != nil,
		"notify", project.Notify != nil,
	)
	return project, nil
}
