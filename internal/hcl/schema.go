package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a project file.
//
//	output        = "_pre_processed_file.asm"
//	error_file    = true
//	include_paths = ["inc"]
//	defines = {
//	  CLOCK = 4000000
//	  DEBUG = null
//	}
//	assembler { path = "mpasmx_orig" }
type fileRoot struct {
	Output       *string        `hcl:"output,optional"`
	ErrorFile    *bool          `hcl:"error_file,optional"`
	IncludePaths []string       `hcl:"include_paths,optional"`
	Defines      hcl.Expression `hcl:"defines,optional"`
	Assembler    *ToolBlock     `hcl:"assembler,block"`
	Linker       *ToolBlock     `hcl:"linker,block"`
	Notify       *NotifyBlock   `hcl:"notify,block"`
}

// ToolBlock represents an `assembler` or `linker` block.
type ToolBlock struct {
	Path string   `hcl:"path"`
	Args []string `hcl:"args,optional"`
}

// NotifyBlock represents the `notify` block.
type NotifyBlock struct {
	URL       string  `hcl:"url"`
	Namespace *string `hcl:"namespace,optional"`
	Event     *string `hcl:"event,optional"`
	Timeout   *string `hcl:"timeout,optional"`

	InsecureSkipVerify bool `hcl:"insecure_skip_verify,optional"`
}
