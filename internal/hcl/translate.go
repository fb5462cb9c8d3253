package hcl

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/asmprep/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateProject converts the decoded HCL schema into the agnostic model.
// Relative output and include paths are taken relative to baseDir, the
// directory of the project file.
func (l *Loader) translateProject(ctx context.Context, root *fileRoot, baseDir string) (*config.Project, error) {
	p := &config.Project{ErrorFile: root.ErrorFile}
	if root.Output != nil {
		p.Output = resolvePath(baseDir, *root.Output)
	}
	for _, inc := range root.IncludePaths {
		p.IncludePaths = append(p.IncludePaths, resolvePath(baseDir, inc))
	}

	if isExprDefined(ctx, root.Defines, "defines") {
		defines, err := decodeDefines(root.Defines)
		if err != nil {
			return nil, err
		}
		p.Defines = defines
	}

	p.Assembler = translateTool(root.Assembler)
	p.Linker = translateTool(root.Linker)

	if root.Notify != nil {
		n, err := translateNotify(root.Notify)
		if err != nil {
			return nil, err
		}
		p.Notify = n
	}
	return p, nil
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func translateTool(b *ToolBlock) *config.Tool {
	if b == nil {
		return nil
	}
	return &config.Tool{Path: b.Path, Args: b.Args}
}

func translateNotify(b *NotifyBlock) (*config.Notify, error) {
	n := &config.Notify{URL: b.URL, InsecureSkipVerify: b.InsecureSkipVerify}
	if b.Namespace != nil {
		n.Namespace = *b.Namespace
	}
	if b.Event != nil {
		n.Event = *b.Event
	}
	if b.Timeout != nil {
		d, err := time.ParseDuration(*b.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid notify timeout %q: %w", *b.Timeout, err)
		}
		n.Timeout = d
	}
	return n, nil
}

// decodeDefines evaluates the defines object. Every element is converted to
// a string; null elements define a name without a value.
func decodeDefines(expr hcl.Expression) (map[string]*string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("defines must be an object, got %s", ty.FriendlyName())
	}

	out := make(map[string]*string, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		if v.IsNull() {
			out[name] = nil
			continue
		}
		converted, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("cannot convert define %q from %s to string: %w", name, v.Type().FriendlyName(), err)
		}
		s := converted.AsString()
		out[name] = &s
	}
	return out, nil
}
