// Package model defines the domain types and value objects for the
// seqtree CLI.
//
// This package contains pure data structures with no external dependencies:
// the Format and Action enums, LabelPair and TargetSet (the two shapes of a
// target list), and SequenceRecord. Tree nodes live in the tree package.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and the typed file-level errors MalformedInputError and MalformedListError.
package model
