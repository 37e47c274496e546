// Package config loads and validates the run configuration of the seqtree
// CLI.
//
// A run can be described entirely with flags, or partly in a configuration
// file passed with --config. The file format is chosen by extension:
//
//	.yaml, .yml   parsed with gopkg.in/yaml.v3
//	.json, .jsonc stripped with github.com/tidwall/jsonc, then encoding/json
//
// Any other extension is a configuration error. Load starts from Default,
// so keys missing from the file keep their built-in values; the cli
// package then overlays only the flags that were set explicitly, which
// gives the precedence flag > file > default.
//
// Validate is the single gate before any file is opened. It reports every
// missing required setting at once, parses the format and action enums,
// and refuses an output path that names the same file as the input. All
// failures are *model.CLIError values carrying ExitInvalidArgs, or
// ExitFileNotFound when the configuration file itself is missing.
package config
