package config

import "time"

// Project is the format-agnostic representation of a project file.
type Project struct {
	// Source is the path the project was loaded from.
	Source string

	Output       string
	ErrorFile    *bool
	IncludePaths []string
	// Defines seeds the define table. A nil value defines the name without a value.
	Defines map[string]*string

	Assembler *Tool
	Linker    *Tool
	Notify    *Notify
}

// Tool is an external program chained after a successful preprocessing pass.
type Tool struct {
	Path string
	Args []string
}

// Notify configures the build-result notification.
type Notify struct {
	URL       string
	Namespace string
	Event     string
	Timeout   time.Duration

	InsecureSkipVerify bool
}
