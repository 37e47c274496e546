package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/shinji-kodama/seqtree/internal/model"
)

// Printer renders a Report as human-readable console text.
type Printer struct {
	w io.Writer

	heading *color.Color
	warn    *color.Color
	ok      *color.Color
}

// NewPrinter returns a Printer writing to w. Colour escapes are emitted
// only when useColor is true.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		ok:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.heading, p.warn, p.ok} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes the progress lines, the warning summaries and the closing
// line for r.
func (p *Printer) Print(r *Report) {
	switch r.Format {
	case model.FormatFASTA:
		p.printSequences(r)
	case model.FormatTree:
		p.printTree(r)
	}
}

func (p *Printer) printSequences(r *Report) {
	fmt.Fprintln(p.w, "Starting sequence file processing...")

	switch r.Action {
	case model.ActionRename:
		p.heading.Fprintln(p.w, "\n### Renaming sequences...")
		for i, name := range r.Written {
			fmt.Fprintf(p.w, "%d. Renamed - %s\n", i+1, name)
		}
		p.list(fmt.Sprintf("### Total of sequences not found = %d", len(r.NotFound)), r.NotFound)
		p.list(fmt.Sprintf("### Total of duplicates = %d", len(r.Duplicates)), r.Duplicates)
		p.ok.Fprintf(p.w, "\n### A total of %d sequences were renamed\n\n", len(r.Written))

	case model.ActionKeep, model.ActionRemove:
		verb, labels := "Filtering", r.Written
		if r.Action == model.ActionRemove {
			verb, labels = "Removing", r.Removed
		}
		for i, name := range labels {
			fmt.Fprintf(p.w, "%d/%d - %s sequence... %s\n", i+1, r.Targets, verb, name)
		}
		p.list(fmt.Sprintf("### Repeated sequence labels skipped = %d", len(r.Duplicates)), r.Duplicates)

		if len(r.Unmatched) > 0 {
			p.warn.Fprintf(p.w, "\nWARNING! %d sequence(s) not found:\n", len(r.Unmatched))
			for _, name := range r.Unmatched {
				fmt.Fprintf(p.w, "\t* %s\n", name)
			}
			p.warn.Fprintln(p.w, "\nCheck issues reported above!")
			fmt.Fprintln(p.w)
			return
		}
		p.ok.Fprintf(p.w, "\nDone! %d sequences were filtered.\n\n", r.Targets)
	}
}

func (p *Printer) printTree(r *Report) {
	fmt.Fprintln(p.w, "Starting tree file processing...")

	switch r.Action {
	case model.ActionRename:
		for _, pair := range r.Renamed {
			fmt.Fprintf(p.w, "Renaming %s as %s\n", pair.Old, pair.New)
		}
		p.list(fmt.Sprintf("### Rename entries not found in the tree = %d", len(r.NotFound)), r.NotFound)
		p.list(fmt.Sprintf("### Total of duplicates = %d", len(r.Duplicates)), r.Duplicates)
		p.ok.Fprintf(p.w, "\nTree file successfully renamed: '%s'\n", r.Output)

	case model.ActionKeep, model.ActionRemove:
		p.heading.Fprintln(p.w, "\n### Filtering taxa from tree")
		fmt.Fprintln(p.w)
		for i, name := range r.Pruned {
			fmt.Fprintf(p.w, "%d - %s was filtered\n", i+1, name)
		}
		p.list(fmt.Sprintf("### Taxa not found in the input tree = %d", len(r.NotInTree)), r.NotInTree)
		p.ok.Fprintf(p.w, "\nTree file successfully filtered: '%s'\n", r.Output)
	}
}

// list prints a numbered warning block; nothing is printed for an empty list.
func (p *Printer) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(p.w)
	p.warn.Fprintln(p.w, title)
	for i, item := range items {
		fmt.Fprintf(p.w, "\t* %d - %s\n", i+1, item)
	}
}
