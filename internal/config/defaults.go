// Package config holds the project-level configuration constants for
// prqlfmt and the helpers that locate a configuration file on disk.
// It is decoupled from the CLI so other tools can find the same files.
package config

import "time"

// Config file names, in lookup order.
const (
	ConfigFileName    = "prqlfmt.yaml"
	ConfigFileNameAlt = "prqlfmt.yml"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "PRQLFMT_"

// Default configuration values.
const (
	DefaultInputFormat   = "auto"
	DefaultOutput        = "auto" // TTY=text, otherwise markdown
	DefaultPipelineStyle = "block"
	DefaultLogLevel      = "info"
	DefaultWatchDebounce = 200 * time.Millisecond
	DefaultConcurrency   = 4
)

// Accepted values for the enumerated keys.
var (
	InputFormats   = []string{"auto", "json", "yaml"}
	OutputFormats  = []string{"auto", "text", "markdown", "json"}
	PipelineStyles = []string{"block", "inline"}
)
