// Package main is the entry point for the seqtree CLI.
//
// seqtree keeps, removes or renames taxa in FASTA files and Newick trees.
// All functionality lives in the internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process and default to "dev", "none" and "unknown".
package main

import (
	"github.com/shinji-kodama/seqtree/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
