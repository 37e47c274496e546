package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/seqtree/internal/model"
	"github.com/shinji-kodama/seqtree/internal/seqfilter"
	"github.com/shinji-kodama/seqtree/internal/treefilter"
)

// Report is the machine-readable summary of one run. Empty lists are
// omitted from JSON and YAML output.
type Report struct {
	Format model.Format `json:"format" yaml:"format"`
	Action model.Action `json:"action" yaml:"action"`
	Input  string       `json:"input" yaml:"input"`
	Output string       `json:"output" yaml:"output"`

	// Targets is the number of entries loaded from the target list.
	Targets int `json:"targets" yaml:"targets"`

	// Records is the number of input sequences, or of named clades for trees.
	Records int `json:"records" yaml:"records"`

	// Written lists the labels emitted to the output file (sequences only).
	Written []string `json:"written,omitempty" yaml:"written,omitempty"`

	Renamed           []model.LabelPair `json:"renamed,omitempty" yaml:"renamed,omitempty"`
	Removed           []string          `json:"removed,omitempty" yaml:"removed,omitempty"`
	Pruned            []string          `json:"pruned,omitempty" yaml:"pruned,omitempty"`
	NotFound          []string          `json:"not_found,omitempty" yaml:"not_found,omitempty"`
	Duplicates        []string          `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Unmatched         []string          `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	NotInTree         []string          `json:"not_in_tree,omitempty" yaml:"not_in_tree,omitempty"`
	ClearedConfidence int               `json:"cleared_confidence,omitempty" yaml:"cleared_confidence,omitempty"`

	// Leaves is the number of terminal clades in the written tree.
	Leaves int `json:"leaves,omitempty" yaml:"leaves,omitempty"`
}

// FromSequences builds a report from a sequence filter result.
func FromSequences(res *seqfilter.Result, input, output string, targets int) *Report {
	r := &Report{
		Format:     model.FormatFASTA,
		Action:     res.Action,
		Input:      input,
		Output:     output,
		Targets:    targets,
		Records:    res.Input,
		Removed:    res.Removed,
		NotFound:   res.NotFound,
		Duplicates: res.Duplicates,
		Unmatched:  res.Unmatched,
	}
	for _, rec := range res.Records {
		r.Written = append(r.Written, rec.Label)
	}
	return r
}

// FromTree builds a report from a tree filter result.
func FromTree(res *treefilter.Result, input, output string, targets int) *Report {
	return &Report{
		Format:            model.FormatTree,
		Action:            res.Action,
		Input:             input,
		Output:            output,
		Targets:           targets,
		Records:           res.Taxa,
		Renamed:           res.Renamed,
		Pruned:            res.Pruned,
		NotFound:          res.NotFound,
		Duplicates:        res.Duplicates,
		NotInTree:         res.NotInTree,
		ClearedConfidence: res.ClearedConfidence,
		Leaves:            res.Leaves,
	}
}

// Warnings returns the total number of warning entries across all
// categories.
func (r *Report) Warnings() int {
	return len(r.NotFound) + len(r.Duplicates) + len(r.Unmatched) + len(r.NotInTree)
}

// WriteJSON writes r as indented JSON followed by a newline.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAMLFile writes r as YAML to path, replacing any existing file.
func (r *Report) WriteYAMLFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return model.WrapCLIError(model.ExitWriteFailed,
			fmt.Sprintf("failed to write report %s", path), err)
	}
	return nil
}
