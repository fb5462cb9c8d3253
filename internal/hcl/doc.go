// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses project files, decodes them with gohcl and
// translates the result, including cty-typed define values, into the
// format-agnostic config.Project.
package hcl
