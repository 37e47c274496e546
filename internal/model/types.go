// Package model defines the domain types for the seqtree CLI.
//
// All entities in this package exist only for the duration of one
// invocation: they are loaded from the input files, transformed in memory
// and serialized to the output file. Nothing is persisted between runs.
package model

import (
	"fmt"
	"strings"
)

// Format identifies the family of the input and output files.
type Format string

const (
	// FormatFASTA is a FASTA sequence file (">" header lines followed by residues).
	FormatFASTA Format = "fasta"

	// FormatTree is a Newick tree file.
	FormatTree Format = "tree"
)

// String returns the string representation of Format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks whether the Format value is one of the predefined formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatFASTA, FormatTree:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format.
// Returns an error if the string does not match any valid format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid format: %q (valid: fasta, tree)", s)
	}
	return format, nil
}

// Action is the transformation applied to the target taxa.
type Action string

const (
	// ActionKeep keeps only the taxa named in the target list.
	ActionKeep Action = "keep"

	// ActionRemove drops the taxa named in the target list.
	ActionRemove Action = "remove"

	// ActionRename replaces old names with new names from the target list.
	ActionRename Action = "rename"
)

// String returns the string representation of Action.
func (a Action) String() string {
	return string(a)
}

// IsValid checks whether the Action value is one of the predefined actions.
func (a Action) IsValid() bool {
	switch a {
	case ActionKeep, ActionRemove, ActionRename:
		return true
	default:
		return false
	}
}

// IsFilter returns true for the set-like actions (keep and remove), which
// consume a TargetSet rather than a list of LabelPairs.
func (a Action) IsFilter() bool {
	return a == ActionKeep || a == ActionRemove
}

// ParseAction converts a string to an Action.
// Returns an error if the string does not match any valid action.
func ParseAction(s string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(s)))
	if !action.IsValid() {
		return "", fmt.Errorf("invalid action: %q (valid: keep, remove, rename)", s)
	}
	return action, nil
}

// LabelPair is one entry of a rename list: sequences or clades labelled
// Old are relabelled New.
type LabelPair struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// String returns "old -> new".
func (p LabelPair) String() string {
	return p.Old + " -> " + p.New
}

// TargetSet is the plain-identifier form of a target list.
//
// Membership is tested by exact string match. The set remembers the order
// in which names were first added, so warnings can be reported in the
// order of the list file.
type TargetSet struct {
	order   []string
	members map[string]struct{}
}

// NewTargetSet creates a TargetSet holding the given names.
// Repeated names are stored once, at the position of their first occurrence.
func NewTargetSet(names ...string) *TargetSet {
	s := &TargetSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name into the set. It returns false if name was already present.
func (s *TargetSet) Add(name string) bool {
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	if _, ok := s.members[name]; ok {
		return false
	}
	s.members[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

// Contains reports whether name is a member of the set.
func (s *TargetSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[name]
	return ok
}

// Len returns the number of distinct names in the set.
func (s *TargetSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Names returns the members in list order. The returned slice is a copy.
func (s *TargetSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SequenceRecord is one labelled sequence from a FASTA file.
type SequenceRecord struct {
	// Label is the full header line without the leading ">".
	Label string `json:"label"`

	// Residues is the concatenated sequence with line breaks removed.
	Residues string `json:"residues"`
}

// ExitCode defines the process exit codes of the CLI.
//
// Per-item problems (targets not found, duplicates, prune misses) are
// warnings and never change the exit code. Only file-level failures do.
type ExitCode int

const (
	// ExitSuccess indicates the command completed, possibly with warnings.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitFileNotFound indicates the input or list file does not exist.
	ExitFileNotFound ExitCode = 2

	// ExitMalformedInput indicates the input is not valid FASTA or Newick.
	ExitMalformedInput ExitCode = 3

	// ExitMalformedList indicates the target list could not be parsed
	// (only raised with strict rename lists).
	ExitMalformedList ExitCode = 4

	// ExitWriteFailed indicates the output or report file could not be written.
	ExitWriteFailed ExitCode = 5

	// ExitInvalidArgs indicates an invalid flag or configuration value.
	ExitInvalidArgs ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// The CLI layer translates it into the process exit status.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// MalformedInputError reports an input file that is not valid FASTA or Newick.
type MalformedInputError struct {
	// Format is the format the file was parsed as.
	Format Format

	// Line is the 1-based line of the offending input, or 0 if unknown.
	Line int

	// Offset is the 0-based byte offset for formats parsed as a stream
	// (Newick), or -1 when Line is meaningful instead.
	Offset int

	// Reason describes what was wrong.
	Reason string
}

func (e *MalformedInputError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("malformed %s input at line %d: %s", e.Format, e.Line, e.Reason)
	case e.Offset >= 0:
		return fmt.Sprintf("malformed %s input at offset %d: %s", e.Format, e.Offset, e.Reason)
	default:
		return fmt.Sprintf("malformed %s input: %s", e.Format, e.Reason)
	}
}

// MalformedListError reports a target list line that cannot be used.
type MalformedListError struct {
	// Line is the 1-based line number in the list file.
	Line int

	// Text is the raw content of the line.
	Text string

	// Reason describes what was wrong.
	Reason string
}

func (e *MalformedListError) Error() string {
	return fmt.Sprintf("malformed target list at line %d (%q): %s", e.Line, e.Text, e.Reason)
}
